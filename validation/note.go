package validation

import (
	"math"
	"regexp"
)

var (
	youTubeRe   = regexp.MustCompile(`^.*(youtu.be/|v/|watch\?v=|&v=)([^#&?]*).*`)
	videoFileRe = regexp.MustCompile(`(?i)\.(mp4|webm|ogg)(\?.*)?$`)
)

type TrainingInput struct {
	TrainingID string `json:"training_id"`
	Count      int    `json:"count"`
}

type NoteInput struct {
	Theme         string          `json:"theme"`
	Assignment    string          `json:"assignment"`
	PracticeVideo string          `json:"practice_video"`
	Weight        float64         `json:"weight"`
	Sleep         float64         `json:"sleep"`
	LookedDay     string          `json:"looked_day"`
	Practice      string          `json:"practice"`
	Trainings     []TrainingInput `json:"trainings"`
}

// YouTubeID extracts the 11 character video id from a YouTube URL.
func YouTubeID(url string) (string, bool) {
	m := youTubeRe.FindStringSubmatch(url)
	if m == nil || len(m[2]) != 11 {
		return "", false
	}
	return m[2], true
}

func ValidateNote(in NoteInput, availableTrainings []string) Errors {
	return validateNote(in, availableTrainings, "すべてのトレーニングメニューに対して回数を入力してください")
}

func ValidateEditNote(in NoteInput, availableTrainings []string) Errors {
	return validateNote(in, availableTrainings, "すべてのトレーニングメニューに対して必要な情報を入力してください")
}

func validateNote(in NoteInput, available []string, missingMsg string) Errors {
	errs := Errors{}

	if blank(in.Theme) {
		errs["theme"] = "1日のテーマは必須です"
	} else if length(in.Theme) > 255 {
		errs["theme"] = "1日のテーマは255文字以内で入力してください"
	}

	if blank(in.Assignment) {
		errs["assignment"] = "課題は必須です"
	} else if length(in.Assignment) > 255 {
		errs["assignment"] = "課題は255文字以内で入力してください"
	}

	if in.PracticeVideo != "" {
		_, isYouTube := YouTubeID(in.PracticeVideo)
		switch {
		case length(in.PracticeVideo) > 255:
			errs["practice_video"] = "動画URLが長すぎます"
		case !IsValidURL(in.PracticeVideo):
			errs["practice_video"] = "有効な動画URLを入力してください"
		case !isYouTube && !videoFileRe.MatchString(in.PracticeVideo):
			errs["practice_video"] = "YouTubeのURLまたは動画ファイル（.mp4/.webm/.ogg）のURLを入力してください"
		}
	}

	switch {
	case in.Weight <= 0:
		errs["weight"] = "体重は0より大きい数字を入力してください"
	case in.Weight > 999.9:
		errs["weight"] = "体重は999.9kg以下で入力してください"
	case !oneDecimal(in.Weight):
		errs["weight"] = "体重は小数点第1位までで入力してください"
	}

	switch {
	case in.Sleep <= 0:
		errs["sleep"] = "睡眠時間は0より大きい数字を入力してください"
	case in.Sleep > 99.9:
		errs["sleep"] = "睡眠時間は99.9時間以下で入力してください"
	case !oneDecimal(in.Sleep):
		errs["sleep"] = "睡眠時間は小数点第1位までで入力してください"
	}

	if length(in.Practice) > 600 {
		errs["practice"] = "1日の振り返りは600文字以内で入力してください"
	}

	if blank(in.LookedDay) {
		errs["looked_day"] = "1日の振り返りは必須です"
	} else if length(in.LookedDay) > 600 {
		errs["looked_day"] = "1日の振り返りは600文字以内で入力してください"
	}

	if len(available) > 0 {
		entered := make(map[string]bool, len(in.Trainings))
		for _, t := range in.Trainings {
			entered[t.TrainingID] = true
		}
		for _, id := range available {
			if !entered[id] {
				errs["trainings"] = missingMsg
				return errs
			}
		}
		for _, t := range in.Trainings {
			if t.Count <= 0 {
				errs["trainings"] = "トレーニングに対して1回以上の回数を入力してください"
				break
			}
		}
	}
	return errs
}

// oneDecimal reports whether v has at most one digit after the decimal point.
func oneDecimal(v float64) bool {
	scaled := v * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}
