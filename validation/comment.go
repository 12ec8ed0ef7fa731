package validation

type CommentInput struct {
	Content string `json:"content"`
}

func ValidateComment(in CommentInput) Errors {
	errs := Errors{}
	if blank(in.Content) {
		errs["content"] = "コメントを入力してください"
	} else if length(in.Content) > 1000 {
		errs["content"] = "コメントは1000文字以内で入力してください"
	}
	return errs
}
