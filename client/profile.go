package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"baseballnote/validation"
)

// ProfileUpdate carries the fields to change. Nil fields are left as they are.
type ProfileUpdate struct {
	Name           *string
	Birthday       *string
	TeamName       *string
	PlayerDominant *string
	PlayerPosition *string
	AdmiredPlayer  *string
	Introduction   *string
	Image          *File
}

func (u ProfileUpdate) input() (validation.ProfileInput, map[string]bool, *form) {
	var in validation.ProfileInput
	set := map[string]bool{}
	f := &form{}
	for _, fld := range []struct {
		name string
		src  *string
		dst  *string
	}{
		{"name", u.Name, &in.Name},
		{"team_name", u.TeamName, &in.TeamName},
		{"birthday", u.Birthday, &in.Birthday},
		{"player_dominant", u.PlayerDominant, &in.PlayerDominant},
		{"player_position", u.PlayerPosition, &in.PlayerPosition},
		{"admired_player", u.AdmiredPlayer, &in.AdmiredPlayer},
		{"introduction", u.Introduction, &in.Introduction},
	} {
		if fld.src == nil {
			continue
		}
		*fld.dst = *fld.src
		set[fld.name] = true
		f.set(fld.name, *fld.src)
	}
	f.attach("image", u.Image)
	return in, set, f
}

// CreateProfile creates the signed-in player's profile with an optional image.
func (c *Client) CreateProfile(ctx context.Context, in validation.ProfileInput, image *File) (*Profile, error) {
	errs := validation.ValidateProfile(in, time.Now())
	if msg := validation.ValidateImage(image.info()); msg != "" {
		errs["image"] = msg
	}
	if err := check(errs); err != nil {
		return nil, err
	}

	f := &form{}
	f.set("name", in.Name)
	f.set("team_name", in.TeamName)
	f.set("birthday", in.Birthday)
	f.set("player_dominant", in.PlayerDominant)
	f.set("player_position", in.PlayerPosition)
	if in.AdmiredPlayer != "" {
		f.set("admired_player", in.AdmiredPlayer)
	}
	if in.Introduction != "" {
		f.set("introduction", in.Introduction)
	}
	f.attach("image", image)

	var p Profile
	if err := c.doForm(ctx, call{op: "プロフィール作成失敗", method: http.MethodPost, path: "/profile/"}, f, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetProfile returns nil, nil when the user has no profile yet.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := c.do(ctx, call{op: "プロフィール取得失敗", method: http.MethodGet, path: "/profile/" + url.PathEscape(userID)}, &p)
	if StatusOf(err) == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateProfile(ctx context.Context, profileID string, u ProfileUpdate) (*Profile, error) {
	in, set, f := u.input()
	errs := validation.ValidateProfileUpdate(in, set, time.Now())
	if msg := validation.ValidateImage(u.Image.info()); msg != "" {
		errs["image"] = msg
	}
	if err := check(errs); err != nil {
		return nil, err
	}
	var p Profile
	if err := c.doForm(ctx, call{op: "プロフィール更新失敗", method: http.MethodPut, path: "/profile/" + url.PathEscape(profileID)}, f, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlayers pages through player profiles. Coach only.
func (c *Client) ListPlayers(ctx context.Context, opts ListOptions) (*PlayerPage, error) {
	var page PlayerPage
	err := c.do(ctx, call{op: "プロフィール一覧の取得に失敗しました", method: http.MethodGet, path: "/profile/", query: opts.values()}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}
