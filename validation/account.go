package validation

import "baseballnote/models"

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountInput struct {
	Email       string       `json:"email"`
	Password1   string       `json:"password1"`
	Password2   string       `json:"password2"`
	AccountRole *models.Role `json:"account_role"`
}

type LoginEditInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
	NewEmail        string `json:"newEmail"`
	ConfirmEmail    string `json:"confirmEmail"`
}

func validateEmail(errs Errors, field, email string) {
	if blank(email) {
		errs[field] = "メールアドレスは必須です。"
	} else if !strictEmailRe.MatchString(email) {
		errs[field] = "有効なメールアドレスを入力してください。"
	}
}

func ValidateLogin(in LoginInput) Errors {
	errs := Errors{}
	validateEmail(errs, "email", in.Email)

	switch {
	case blank(in.Password):
		errs["password"] = "パスワードは必須です。"
	case length(in.Password) >= 500:
		errs["password"] = "パスワードは500字以内にしてください"
	case length(in.Password) < 8:
		errs["password"] = "パスワードは8文字以上に設定してください"
	}
	return errs
}

func ValidateCreateAccount(in AccountInput) Errors {
	errs := Errors{}
	validateEmail(errs, "email", in.Email)
	if msg := passwordStrength(in.Password1); msg != "" {
		errs["password1"] = msg
	}

	if blank(in.Password2) {
		errs["password2"] = "確認用パスワードは必須です。"
	} else if in.Password2 != in.Password1 {
		errs["password2"] = "パスワードが一致していません"
	}

	if in.AccountRole == nil {
		errs["account_role"] = "アカウントタイプを入力してください"
	} else if !in.AccountRole.Valid() {
		errs["account_role"] = "アカウントタイプが不正です"
	}
	return errs
}

// passwordStrength is the rule for any password a user chooses.
func passwordStrength(pw string) string {
	switch {
	case blank(pw):
		return "パスワードは必須です。"
	case length(pw) >= 500:
		return "パスワードは500字以内にしてください"
	case length(pw) < 8:
		return "パスワードは8文字以上に設定してください"
	case !digitRe.MatchString(pw) || !letterRe.MatchString(pw):
		return "パスワードは数字とアルファベットを含める必要があります"
	}
	return ""
}

// ValidatePassword checks a newly chosen password (reset or change).
func ValidatePassword(pw string) Errors {
	errs := Errors{}
	if msg := passwordStrength(pw); msg != "" {
		errs["new_password"] = msg
	}
	return errs
}

func ValidateLoginEdit(in LoginEditInput) Errors {
	errs := Errors{}

	if in.NewPassword == "" && in.NewEmail == "" {
		errs["noEditForm"] = "変更箇所がありません"
	}

	requireCurrent := func() {
		if in.CurrentPassword == "" {
			errs["currentPassword"] = "現在のパスワードを入力してください"
		} else if length(in.CurrentPassword) < 8 {
			errs["currentPassword"] = "パスワードは8文字以上で入力してください"
		}
	}

	if in.NewPassword != "" || in.ConfirmPassword != "" {
		requireCurrent()
		if in.NewPassword != "" {
			if length(in.NewPassword) < 8 {
				errs["newPassword"] = "パスワードは8文字以上で入力してください"
			}
			if in.NewPassword != in.ConfirmPassword {
				errs["confirmPassword"] = "パスワードが一致しません"
			}
		}
	}

	if in.NewEmail != "" || in.ConfirmEmail != "" {
		requireCurrent()
		if in.NewEmail != "" {
			if !looseEmailRe.MatchString(in.NewEmail) {
				errs["newEmail"] = "有効なメールアドレスを入力してください"
			}
			if in.NewEmail != in.ConfirmEmail {
				errs["confirmEmail"] = "メールアドレスが一致しません"
			}
		}
	}
	return errs
}
