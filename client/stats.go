package client

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

const dateLayout = "2006-01-02"

// StatsRange selects the days a summary covers. Zero dates use the server
// default of the current month.
type StatsRange struct {
	From           time.Time
	To             time.Time
	IncludeMissing bool
}

func (r StatsRange) values() url.Values {
	q := url.Values{}
	if !r.From.IsZero() {
		q.Set("from", r.From.Format(dateLayout))
	}
	if !r.To.IsZero() {
		q.Set("to", r.To.Format(dateLayout))
	}
	if r.IncludeMissing {
		q.Set("include_missing_days", "true")
	}
	return q
}

func (c *Client) GetNoteStats(ctx context.Context, userID string, r StatsRange) (*NoteStats, error) {
	var out NoteStats
	err := c.do(ctx, call{op: "集計取得失敗", method: http.MethodGet, path: "/note/stats/" + url.PathEscape(userID), query: r.values()}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWeeklyOverview returns the week containing weekStart, or the current week when it is zero.
func (c *Client) GetWeeklyOverview(ctx context.Context, userID string, weekStart time.Time) (*WeeklyOverview, error) {
	q := url.Values{}
	if !weekStart.IsZero() {
		q.Set("week_start", weekStart.Format(dateLayout))
	}
	var out WeeklyOverview
	err := c.do(ctx, call{op: "週間集計取得失敗", method: http.MethodGet, path: "/note/weekly/" + url.PathEscape(userID), query: q}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
