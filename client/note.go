package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"baseballnote/validation"
)

var ErrNotAuthenticated = errors.New("ユーザーが認証されていません")

// NoteRequest is the note form. Menus lists the ids of the training menus offered on the
// form; each of them must be reported in Trainings.
type NoteRequest struct {
	validation.NoteInput
	Menus       []string
	MyVideo     *File
	DeleteVideo bool
}

func (r *NoteRequest) form() (*form, error) {
	trainings := r.Trainings
	if trainings == nil {
		trainings = []validation.TrainingInput{}
	}
	raw, err := json.Marshal(trainings)
	if err != nil {
		return nil, err
	}
	f := &form{}
	f.set("theme", r.Theme)
	f.set("assignment", r.Assignment)
	f.set("practice_video", r.PracticeVideo)
	f.set("weight", strconv.FormatFloat(r.Weight, 'f', -1, 64))
	f.set("sleep", strconv.FormatFloat(r.Sleep, 'f', -1, 64))
	f.set("looked_day", r.LookedDay)
	f.set("practice", r.Practice)
	f.set("trainings", string(raw))
	f.attach("my_video", r.MyVideo)
	return f, nil
}

func (c *Client) CreateNote(ctx context.Context, uid string, r NoteRequest) (*Note, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	errs := validation.ValidateNote(r.NoteInput, r.Menus)
	if msg := validation.ValidateMyVideo(r.MyVideo.info()); msg != "" {
		errs["my_video"] = msg
	}
	if err := check(errs); err != nil {
		return nil, err
	}
	f, err := r.form()
	if err != nil {
		return nil, err
	}
	f.fields = append([]formField{{"firebase_uid", uid}}, f.fields...)

	var n Note
	if err := c.doForm(ctx, call{op: "ノート作成失敗", method: http.MethodPost, path: "/note/create"}, f, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ListMyNotes lists the notes of the account with firebase uid uid, newest first.
func (c *Client) ListMyNotes(ctx context.Context, uid string, opts ListOptions) (*NotePage, error) {
	var page NotePage
	err := c.do(ctx, call{op: "ノート一覧取得失敗", method: http.MethodGet, path: "/note/get/" + url.PathEscape(uid), query: opts.values()}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) ListNotesByUser(ctx context.Context, userID string, opts ListOptions) (*NotePage, error) {
	var page NotePage
	err := c.do(ctx, call{op: "ノート一覧取得失敗", method: http.MethodGet, path: "/note/user/" + url.PathEscape(userID), query: opts.values()}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetNoteDetail(ctx context.Context, noteID string) (*Note, error) {
	var n Note
	err := c.do(ctx, call{op: "ノート取得失敗", method: http.MethodGet, path: "/note/detail/" + url.PathEscape(noteID)}, &n)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) UpdateNote(ctx context.Context, noteID string, r NoteRequest) (*Note, error) {
	errs := validation.ValidateEditNote(r.NoteInput, r.Menus)
	if msg := validation.ValidateMyVideo(r.MyVideo.info()); msg != "" {
		errs["my_video"] = msg
	}
	if err := check(errs); err != nil {
		return nil, err
	}
	f, err := r.form()
	if err != nil {
		return nil, err
	}
	if r.DeleteVideo {
		f.set("delete_video", "true")
	}
	var n Note
	if err := c.doForm(ctx, call{op: "ノート更新失敗", method: http.MethodPut, path: "/note/" + url.PathEscape(noteID)}, f, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	return c.do(ctx, call{op: "ノート削除失敗", method: http.MethodDelete, path: "/note/" + url.PathEscape(noteID)}, nil)
}
