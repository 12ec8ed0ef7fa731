package validation

type MenuInput struct {
	Menu string `json:"menu"`
}

func ValidateAddMenu(in MenuInput) Errors {
	errs := Errors{}
	switch {
	case blank(in.Menu):
		errs["menu"] = "メニュー名を入力してください。"
	case length(in.Menu) < 2:
		errs["menu"] = "メニュー名は2文字以上入力してください。"
	case length(in.Menu) >= 100:
		errs["menu"] = "メニュー名は100文字未満にしてください。"
	}
	return errs
}
