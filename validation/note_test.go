package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validNote() NoteInput {
	return NoteInput{
		Theme:      "バッティングの確認",
		Assignment: "インコースの対応",
		Weight:     65.5,
		Sleep:      7.5,
		LookedDay:  "よく振れた",
		Trainings: []TrainingInput{
			{TrainingID: "t1", Count: 30},
			{TrainingID: "t2", Count: 10},
		},
	}
}

func TestValidateNote_Valid(t *testing.T) {
	assert.True(t, ValidateNote(validNote(), []string{"t1", "t2"}).OK())
	assert.True(t, ValidateNote(validNote(), nil).OK())
}

func TestValidateNote_Fields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*NoteInput)
		field string
		want  string
	}{
		{"theme required", func(n *NoteInput) { n.Theme = " " }, "theme", "1日のテーマは必須です"},
		{"theme too long", func(n *NoteInput) { n.Theme = strings.Repeat("あ", 256) }, "theme", "1日のテーマは255文字以内で入力してください"},
		{"assignment required", func(n *NoteInput) { n.Assignment = "" }, "assignment", "課題は必須です"},
		{"weight zero", func(n *NoteInput) { n.Weight = 0 }, "weight", "体重は0より大きい数字を入力してください"},
		{"weight too big", func(n *NoteInput) { n.Weight = 1000 }, "weight", "体重は999.9kg以下で入力してください"},
		{"weight two decimals", func(n *NoteInput) { n.Weight = 65.55 }, "weight", "体重は小数点第1位までで入力してください"},
		{"sleep negative", func(n *NoteInput) { n.Sleep = -1 }, "sleep", "睡眠時間は0より大きい数字を入力してください"},
		{"sleep too big", func(n *NoteInput) { n.Sleep = 100 }, "sleep", "睡眠時間は99.9時間以下で入力してください"},
		{"sleep two decimals", func(n *NoteInput) { n.Sleep = 7.25 }, "sleep", "睡眠時間は小数点第1位までで入力してください"},
		{"practice too long", func(n *NoteInput) { n.Practice = strings.Repeat("a", 601) }, "practice", "1日の振り返りは600文字以内で入力してください"},
		{"looked day required", func(n *NoteInput) { n.LookedDay = "" }, "looked_day", "1日の振り返りは必須です"},
		{"video not a url", func(n *NoteInput) { n.PracticeVideo = "youtube" }, "practice_video", "有効な動画URLを入力してください"},
		{"video wrong host type", func(n *NoteInput) { n.PracticeVideo = "https://example.com/page.html" }, "practice_video", "YouTubeのURLまたは動画ファイル（.mp4/.webm/.ogg）のURLを入力してください"},
		{"video too long", func(n *NoteInput) { n.PracticeVideo = "https://example.com/" + strings.Repeat("a", 250) + ".mp4" }, "practice_video", "動画URLが長すぎます"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validNote()
			tt.edit(&in)
			errs := ValidateNote(in, nil)
			assert.Equal(t, tt.want, errs[tt.field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestValidateNote_OneDecimalAcceptsCommonValues(t *testing.T) {
	for _, v := range []float64{1.1, 0.3, 60.3, 99.9, 7} {
		in := validNote()
		in.Sleep = v
		assert.NotContains(t, ValidateNote(in, nil), "sleep", "%v", v)
	}
}

func TestValidateNote_PracticeVideo(t *testing.T) {
	for _, u := range []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://cdn.example.com/clip.MP4",
		"http://cdn.example.com/clip.webm?sig=abc",
	} {
		in := validNote()
		in.PracticeVideo = u
		assert.True(t, ValidateNote(in, nil).OK(), u)
	}
}

func TestValidateNote_Trainings(t *testing.T) {
	t.Run("missing menu stops further checks", func(t *testing.T) {
		in := validNote()
		in.Trainings = []TrainingInput{{TrainingID: "t1", Count: 0}}
		errs := ValidateNote(in, []string{"t1", "t2"})
		assert.Equal(t, "すべてのトレーニングメニューに対して回数を入力してください", errs["trainings"])
	})

	t.Run("edit variant message", func(t *testing.T) {
		in := validNote()
		in.Trainings = nil
		errs := ValidateEditNote(in, []string{"t1"})
		assert.Equal(t, "すべてのトレーニングメニューに対して必要な情報を入力してください", errs["trainings"])
	})

	t.Run("zero count", func(t *testing.T) {
		in := validNote()
		in.Trainings[1].Count = 0
		errs := ValidateNote(in, []string{"t1", "t2"})
		assert.Equal(t, "トレーニングに対して1回以上の回数を入力してください", errs["trainings"])
	})
}

func TestYouTubeID(t *testing.T) {
	id, ok := YouTubeID("https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10")
	assert.True(t, ok)
	assert.Equal(t, "dQw4w9WgXcQ", id)

	_, ok = YouTubeID("https://www.youtube.com/watch?v=short")
	assert.False(t, ok)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com/a"))
	assert.False(t, IsValidURL("ftp://example.com/a"))
	assert.False(t, IsValidURL("/relative/path"))
	assert.False(t, IsValidURL("https://"))
}
