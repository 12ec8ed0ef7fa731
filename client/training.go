package client

import (
	"context"
	"net/http"
	"net/url"

	"baseballnote/validation"
)

func (c *Client) CreateMenu(ctx context.Context, in validation.MenuInput) (*Menu, error) {
	if err := check(validation.ValidateAddMenu(in)); err != nil {
		return nil, err
	}
	var m Menu
	if err := c.doJSON(ctx, call{op: "メニュー追加に失敗しました", method: http.MethodPost, path: "/training/menu"}, in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) ListMenus(ctx context.Context) (*MenuList, error) {
	var list MenuList
	if err := c.do(ctx, call{op: "メニュー一覧の取得に失敗しました", method: http.MethodGet, path: "/training/menu"}, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// MenuIDs returns the ids of the listed menus, the form of availableTrainings note validation expects.
func (l *MenuList) MenuIDs() []string {
	ids := make([]string, 0, len(l.Items))
	for _, m := range l.Items {
		ids = append(ids, m.ID)
	}
	return ids
}

func (c *Client) DeleteMenu(ctx context.Context, id string) error {
	return c.do(ctx, call{op: "トレーニングメニューの削除に失敗しました", method: http.MethodDelete, path: "/training/menu/" + url.PathEscape(id)}, nil)
}
