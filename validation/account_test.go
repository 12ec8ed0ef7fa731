package validation

import (
	"strings"
	"testing"

	"baseballnote/models"

	"github.com/stretchr/testify/assert"
)

func rolePtr(r models.Role) *models.Role { return &r }

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name string
		in   LoginInput
		want Errors
	}{
		{"valid", LoginInput{Email: "player@example.com", Password: "password1"}, Errors{}},
		{"missing both", LoginInput{}, Errors{
			"email":    "メールアドレスは必須です。",
			"password": "パスワードは必須です。",
		}},
		{"bad email", LoginInput{Email: "player@example", Password: "password1"}, Errors{
			"email": "有効なメールアドレスを入力してください。",
		}},
		{"short password", LoginInput{Email: "a@b.co", Password: "1234567"}, Errors{
			"password": "パスワードは8文字以上に設定してください",
		}},
		{"long password", LoginInput{Email: "a@b.co", Password: strings.Repeat("a", 500)}, Errors{
			"password": "パスワードは500字以内にしてください",
		}},
		{"whitespace password", LoginInput{Email: "a@b.co", Password: "   "}, Errors{
			"password": "パスワードは必須です。",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateLogin(tt.in))
		})
	}
}

func TestValidateCreateAccount(t *testing.T) {
	valid := AccountInput{Email: "coach@example.com", Password1: "abc12345", Password2: "abc12345", AccountRole: rolePtr(models.RoleCoach)}
	assert.True(t, ValidateCreateAccount(valid).OK())

	t.Run("password needs letters and digits", func(t *testing.T) {
		in := valid
		in.Password1, in.Password2 = "abcdefgh", "abcdefgh"
		assert.Equal(t, "パスワードは数字とアルファベットを含める必要があります", ValidateCreateAccount(in)["password1"])
	})

	t.Run("mismatched confirmation", func(t *testing.T) {
		in := valid
		in.Password2 = "abc12346"
		assert.Equal(t, Errors{"password2": "パスワードが一致していません"}, ValidateCreateAccount(in))
	})

	t.Run("missing role", func(t *testing.T) {
		in := valid
		in.AccountRole = nil
		assert.Equal(t, Errors{"account_role": "アカウントタイプを入力してください"}, ValidateCreateAccount(in))
	})

	t.Run("player role is zero but present", func(t *testing.T) {
		in := valid
		in.AccountRole = rolePtr(models.RolePlayer)
		assert.True(t, ValidateCreateAccount(in).OK())
	})

	t.Run("unknown role", func(t *testing.T) {
		in := valid
		in.AccountRole = rolePtr(models.Role(7))
		assert.Contains(t, ValidateCreateAccount(in), "account_role")
	})
}

func TestValidateLoginEdit(t *testing.T) {
	t.Run("nothing to change", func(t *testing.T) {
		errs := ValidateLoginEdit(LoginEditInput{})
		assert.Equal(t, Errors{"noEditForm": "変更箇所がありません"}, errs)
	})

	t.Run("password change", func(t *testing.T) {
		errs := ValidateLoginEdit(LoginEditInput{NewPassword: "newpass1", ConfirmPassword: "newpass2"})
		assert.Equal(t, "現在のパスワードを入力してください", errs["currentPassword"])
		assert.Equal(t, "パスワードが一致しません", errs["confirmPassword"])
		assert.NotContains(t, errs, "noEditForm")
	})

	t.Run("short new password", func(t *testing.T) {
		errs := ValidateLoginEdit(LoginEditInput{CurrentPassword: "current1", NewPassword: "short", ConfirmPassword: "short"})
		assert.Equal(t, Errors{"newPassword": "パスワードは8文字以上で入力してください"}, errs)
	})

	t.Run("email change", func(t *testing.T) {
		errs := ValidateLoginEdit(LoginEditInput{CurrentPassword: "short", NewEmail: "not-an-email", ConfirmEmail: "x@y.z"})
		assert.Equal(t, Errors{
			"currentPassword": "パスワードは8文字以上で入力してください",
			"newEmail":        "有効なメールアドレスを入力してください",
			"confirmEmail":    "メールアドレスが一致しません",
		}, errs)
	})

	t.Run("valid email change", func(t *testing.T) {
		errs := ValidateLoginEdit(LoginEditInput{CurrentPassword: "current1", NewEmail: "new@example.com", ConfirmEmail: "new@example.com"})
		assert.True(t, errs.OK())
	})
}

func TestErrors_Formatting(t *testing.T) {
	errs := Errors{"sleep": "b", "assignment": "a"}
	assert.Equal(t, "assignment: a; sleep: b", errs.Error())
	assert.Equal(t, "a", errs.First())
	assert.Equal(t, "", Errors{}.First())
}
