// Package client is the Go SDK for the baseball notebook API. It carries one method per
// backend operation, a Session that holds the signed-in identity, a Guard that decides
// page access by role and a TokenMonitor that signs out once the token stops verifying.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"baseballnote/validation"
)

const (
	NetworkErrorMessage = "APIサーバーに接続できません。サーバーが起動しているか確認してください。"
	NetworkStatusText   = "ネットワークエラー"
)

// TokenSource supplies the bearer token for authenticated calls. Session implements it.
type TokenSource interface {
	Token() string
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
}

// New returns a client for baseURL. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		// video uploads can be slow
		HTTP:   &http.Client{Timeout: 5 * time.Minute},
		Tokens: tokens,
	}
}

// APIError is returned for transport failures (Status 0) and non-2xx responses.
type APIError struct {
	Op         string
	Status     int
	StatusText string
	Detail     string
	Errors     validation.Errors
	Err        error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return NetworkErrorMessage
	}
	msg := e.Detail
	if msg == "" {
		msg = e.StatusText
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *APIError) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or -1 when err is not an *APIError.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return -1
}

// ValidationError reports input rejected before any request was sent.
type ValidationError struct {
	Errors validation.Errors
}

func (e *ValidationError) Error() string { return e.Errors.Error() }

func check(errs validation.Errors) error {
	if errs.OK() {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// File is an attachment for multipart requests.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

func (f *File) info() *validation.FileInfo {
	if f == nil {
		return nil
	}
	return &validation.FileInfo{Name: f.Name, Size: f.Size, ContentType: f.ContentType}
}

type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   io.Reader
	ctype  string
	token  string // overrides Tokens when set
	public bool
}

func (c *Client) token() string {
	if c.Tokens == nil {
		return ""
	}
	return c.Tokens.Token()
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	u := c.BaseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, u, cl.body)
	if err != nil {
		return fmt.Errorf("%s: %w", cl.op, err)
	}
	if cl.ctype != "" {
		req.Header.Set("Content-Type", cl.ctype)
	}
	req.Header.Set("Accept", "application/json")
	if !cl.public {
		tok := cl.token
		if tok == "" {
			tok = c.token()
		}
		if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &APIError{Op: cl.op, Status: 0, StatusText: NetworkStatusText, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ae := &APIError{Op: cl.op, Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
		var body struct {
			Detail string            `json:"detail"`
			Errors validation.Errors `json:"errors"`
		}
		if json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body) == nil {
			ae.Detail = body.Detail
			ae.Errors = body.Errors
		}
		return ae
	}
	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", cl.op, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, cl call, in, out any) error {
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", cl.op, err)
		}
		cl.body = bytes.NewReader(b)
		cl.ctype = "application/json"
	}
	return c.do(ctx, cl, out)
}

type formField struct{ name, value string }

// form is an ordered multipart body with optional file parts.
type form struct {
	fields []formField
	files  map[string]*File
}

func (f *form) set(name, value string) {
	f.fields = append(f.fields, formField{name, value})
}

func (f *form) attach(name string, file *File) {
	if file == nil {
		return
	}
	if f.files == nil {
		f.files = map[string]*File{}
	}
	f.files[name] = file
}

func (f *form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", err
		}
	}
	for name, file := range f.files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, name, file.Name))
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, file.Body); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) doForm(ctx context.Context, cl call, f *form, out any) error {
	body, ctype, err := f.encode()
	if err != nil {
		return fmt.Errorf("%s: %w", cl.op, err)
	}
	cl.body = body
	cl.ctype = ctype
	return c.do(ctx, cl, out)
}

// ListOptions are the search and paging parameters of list endpoints.
type ListOptions struct {
	Query    string
	Page     int
	PageSize int
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Query != "" {
		v.Set("q", o.Query)
	}
	if o.Page > 0 {
		v.Set("page", fmt.Sprint(o.Page))
	}
	if o.PageSize > 0 {
		v.Set("page_size", fmt.Sprint(o.PageSize))
	}
	return v
}
