package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"baseballnote/validation"
)

func (c *Client) AddComment(ctx context.Context, noteID string, in validation.CommentInput) (*Comment, error) {
	if err := check(validation.ValidateComment(in)); err != nil {
		return nil, err
	}
	var cm Comment
	err := c.doJSON(ctx, call{op: "コメント投稿失敗", method: http.MethodPost, path: "/note/" + url.PathEscape(noteID) + "/comments"}, in, &cm)
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) ListComments(ctx context.Context, noteID string) ([]Comment, error) {
	var out struct {
		Items []Comment `json:"items"`
	}
	err := c.do(ctx, call{op: "コメント取得失敗", method: http.MethodGet, path: "/note/" + url.PathEscape(noteID) + "/comments"}, &out)
	return out.Items, err
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, call{op: "コメント削除失敗", method: http.MethodDelete, path: "/comment/" + url.PathEscape(commentID)}, nil)
}

// ListAlerts returns the newest alerts of the signed-in account. limit <= 0 uses the server default.
func (c *Client) ListAlerts(ctx context.Context, limit int) ([]Alert, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Items []Alert `json:"items"`
	}
	err := c.do(ctx, call{op: "通知取得失敗", method: http.MethodGet, path: "/alerts", query: q}, &out)
	return out.Items, err
}
