package validation

import (
	"time"

	"baseballnote/models"
)

const DateLayout = "2006-01-02"

var minBirthday = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

type ProfileInput struct {
	Name           string `json:"name"`
	Birthday       string `json:"birthday"` // YYYY-MM-DD
	TeamName       string `json:"team_name"`
	PlayerDominant string `json:"player_dominant"`
	PlayerPosition string `json:"player_position"`
	AdmiredPlayer  string `json:"admired_player"`
	Introduction   string `json:"introduction"`
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func ValidateProfile(in ProfileInput, now time.Time) Errors {
	errs := Errors{}

	if blank(in.Name) {
		errs["name"] = "名前は必須です"
	} else if length(in.Name) >= 50 {
		errs["name"] = "名前は50字以内で入力してください"
	}

	if in.Birthday == "" {
		errs["birthday"] = "生年月日は必須です"
	} else if birth, err := ParseDate(in.Birthday); err != nil {
		errs["birthday"] = "有効な日付を入力してください"
	} else if birth.After(now) {
		errs["birthday"] = "生年月日は今日よりも前の日付を入力してください"
	} else if birth.Before(minBirthday) {
		errs["birthday"] = "生年月日は1900年代以降の日付を入力してください"
	}

	if blank(in.TeamName) {
		errs["team_name"] = "チーム名は必須です"
	} else if length(in.TeamName) > 50 {
		errs["team_name"] = "チーム名は50字以内で入力してください"
	}

	if in.PlayerDominant == "" {
		errs["player_dominant"] = "利き手を入力してください"
	} else if _, ok := models.ParseDominantHand(in.PlayerDominant); !ok {
		errs["player_dominant"] = "利き手の値が不正です"
	}

	if in.PlayerPosition == "" {
		errs["player_position"] = "ポジションを入力してください"
	} else if _, ok := models.ParsePosition(in.PlayerPosition); !ok {
		errs["player_position"] = "ポジションの値が不正です"
	}

	if length(in.AdmiredPlayer) > 50 {
		errs["admired_player"] = "憧れの選手は50字以内で入力してください"
	}
	if length(in.Introduction) > 500 {
		errs["introduction"] = "自己紹介は500字以内で入力してください"
	}
	return errs
}

// ValidateProfileUpdate applies ValidateProfile only to the fields present in a partial
// update. Absent fields are reported by set == false.
func ValidateProfileUpdate(in ProfileInput, set map[string]bool, now time.Time) Errors {
	full := ValidateProfile(in, now)
	errs := Errors{}
	for field, msg := range full {
		if set[field] {
			errs[field] = msg
		}
	}
	return errs
}
