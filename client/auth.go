package client

import (
	"context"
	"net/http"
	"net/url"

	"baseballnote/models"
	"baseballnote/validation"
)

// CreateAccount registers a new account. The password is checked client side first.
func (c *Client) CreateAccount(ctx context.Context, in validation.AccountInput) (*User, error) {
	if err := check(validation.ValidateCreateAccount(in)); err != nil {
		return nil, err
	}
	body := map[string]any{
		"email":    in.Email,
		"password": in.Password1,
		"role":     in.AccountRole,
	}
	var u User
	err := c.doJSON(ctx, call{op: "アカウント作成失敗", method: http.MethodPost, path: "/auth/users", public: true}, body, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, in validation.LoginInput) (*LoginResult, error) {
	if err := check(validation.ValidateLogin(in)); err != nil {
		return nil, err
	}
	var res LoginResult
	err := c.doJSON(ctx, call{op: "ログイン失敗", method: http.MethodPost, path: "/auth/login", public: true}, in, &res)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) FetchUser(ctx context.Context, uid string) (*User, error) {
	var u User
	err := c.do(ctx, call{op: "ユーザー取得失敗", method: http.MethodGet, path: "/auth/users/firebase/" + url.PathEscape(uid)}, &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) FetchRole(ctx context.Context, uid string) (models.Role, error) {
	return c.fetchRole(ctx, uid, "")
}

func (c *Client) fetchRole(ctx context.Context, uid, token string) (models.Role, error) {
	var out struct {
		Role models.Role `json:"role"`
	}
	err := c.do(ctx, call{
		op:     "ユーザーロール取得に失敗しました",
		method: http.MethodGet,
		path:   "/auth/users/firebase/" + url.PathEscape(uid) + "/role",
		token:  token,
	}, &out)
	return out.Role, err
}

// Verify checks the current token with the server.
func (c *Client) Verify(ctx context.Context) (*Identity, error) {
	return c.VerifyToken(ctx, c.token())
}

func (c *Client) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	var id Identity
	err := c.do(ctx, call{op: "認証確認失敗", method: http.MethodGet, path: "/auth/verify", token: token}, &id)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.logout(ctx, "")
}

func (c *Client) logout(ctx context.Context, token string) error {
	return c.do(ctx, call{op: "ログアウト失敗", method: http.MethodPost, path: "/auth/logout", token: token}, nil)
}

// UpdateEmail changes the signed-in account's email. in must carry the email branch of the form.
func (c *Client) UpdateEmail(ctx context.Context, in validation.LoginEditInput) (*User, error) {
	in.NewPassword, in.ConfirmPassword = "", ""
	if err := check(validation.ValidateLoginEdit(in)); err != nil {
		return nil, err
	}
	body := map[string]string{"current_password": in.CurrentPassword, "new_email": in.NewEmail}
	var u User
	if err := c.doJSON(ctx, call{op: "メールアドレス更新失敗", method: http.MethodPut, path: "/auth/users/email"}, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword changes the signed-in account's password. in must carry the password branch.
func (c *Client) ChangePassword(ctx context.Context, in validation.LoginEditInput) error {
	in.NewEmail, in.ConfirmEmail = "", ""
	if err := check(validation.ValidateLoginEdit(in)); err != nil {
		return err
	}
	body := map[string]string{"current_password": in.CurrentPassword, "new_password": in.NewPassword}
	return c.doJSON(ctx, call{op: "パスワード変更失敗", method: http.MethodPut, path: "/auth/users/password"}, body, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	errs := validation.Errors{}
	if msg := validation.ValidateLogin(validation.LoginInput{Email: email})["email"]; msg != "" {
		errs["email"] = msg
	}
	if err := check(errs); err != nil {
		return err
	}
	body := map[string]string{"email": email}
	return c.doJSON(ctx, call{op: "パスワードリセット失敗", method: http.MethodPost, path: "/auth/password/forgot", public: true}, body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, code, newPassword string) error {
	if err := check(validation.ValidatePassword(newPassword)); err != nil {
		return err
	}
	body := map[string]string{"token": code, "new_password": newPassword}
	return c.doJSON(ctx, call{op: "パスワードリセット失敗", method: http.MethodPost, path: "/auth/password/reset", public: true}, body, nil)
}
