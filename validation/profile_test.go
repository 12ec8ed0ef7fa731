package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func validProfile() ProfileInput {
	return ProfileInput{
		Name:           "山田太郎",
		Birthday:       "2008-04-02",
		TeamName:       "港北リトル",
		PlayerDominant: "右投げ右打ち",
		PlayerPosition: "投手",
	}
}

func TestValidateProfile(t *testing.T) {
	assert.True(t, ValidateProfile(validProfile(), today).OK())

	tests := []struct {
		name  string
		edit  func(*ProfileInput)
		field string
		want  string
	}{
		{"name required", func(p *ProfileInput) { p.Name = "" }, "name", "名前は必須です"},
		{"name too long", func(p *ProfileInput) { p.Name = strings.Repeat("名", 50) }, "name", "名前は50字以内で入力してください"},
		{"birthday required", func(p *ProfileInput) { p.Birthday = "" }, "birthday", "生年月日は必須です"},
		{"birthday invalid", func(p *ProfileInput) { p.Birthday = "2008-13-40" }, "birthday", "有効な日付を入力してください"},
		{"birthday future", func(p *ProfileInput) { p.Birthday = "2025-03-02" }, "birthday", "生年月日は今日よりも前の日付を入力してください"},
		{"birthday too old", func(p *ProfileInput) { p.Birthday = "1899-12-31" }, "birthday", "生年月日は1900年代以降の日付を入力してください"},
		{"team required", func(p *ProfileInput) { p.TeamName = " " }, "team_name", "チーム名は必須です"},
		{"team too long", func(p *ProfileInput) { p.TeamName = strings.Repeat("a", 51) }, "team_name", "チーム名は50字以内で入力してください"},
		{"dominant required", func(p *ProfileInput) { p.PlayerDominant = "" }, "player_dominant", "利き手を入力してください"},
		{"dominant unknown", func(p *ProfileInput) { p.PlayerDominant = "右" }, "player_dominant", "利き手の値が不正です"},
		{"position required", func(p *ProfileInput) { p.PlayerPosition = "" }, "player_position", "ポジションを入力してください"},
		{"position unknown", func(p *ProfileInput) { p.PlayerPosition = "DH" }, "player_position", "ポジションの値が不正です"},
		{"admired too long", func(p *ProfileInput) { p.AdmiredPlayer = strings.Repeat("a", 51) }, "admired_player", "憧れの選手は50字以内で入力してください"},
		{"introduction too long", func(p *ProfileInput) { p.Introduction = strings.Repeat("a", 501) }, "introduction", "自己紹介は500字以内で入力してください"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProfile()
			tt.edit(&in)
			errs := ValidateProfile(in, today)
			assert.Equal(t, Errors{tt.field: tt.want}, errs)
		})
	}
}

func TestValidateProfileUpdate_OnlyPresentFields(t *testing.T) {
	errs := ValidateProfileUpdate(ProfileInput{TeamName: strings.Repeat("a", 51)}, map[string]bool{"team_name": true}, today)
	assert.Equal(t, Errors{"team_name": "チーム名は50字以内で入力してください"}, errs)
}

func TestValidateAddMenu(t *testing.T) {
	assert.True(t, ValidateAddMenu(MenuInput{Menu: "素振り"}).OK())
	assert.Equal(t, "メニュー名を入力してください。", ValidateAddMenu(MenuInput{Menu: "  "})["menu"])
	assert.Equal(t, "メニュー名は2文字以上入力してください。", ValidateAddMenu(MenuInput{Menu: "a"})["menu"])
	assert.Equal(t, "メニュー名は100文字未満にしてください。", ValidateAddMenu(MenuInput{Menu: strings.Repeat("a", 100)})["menu"])
}

func TestMediaValidators(t *testing.T) {
	assert.Equal(t, "", ValidateImage(nil))
	assert.Equal(t, "", ValidateImage(&FileInfo{Name: "a.png", Size: 1024, ContentType: "image/png"}))
	assert.Equal(t, "画像のサイズは5MB以下にしてください", ValidateImage(&FileInfo{Size: MaxImageSize + 1, ContentType: "image/png"}))
	assert.Equal(t, "画像ファイルを選択してください", ValidateImage(&FileInfo{Size: 10, ContentType: "text/plain"}))

	assert.Equal(t, "", ValidateMyVideo(&FileInfo{Size: 10, ContentType: "video/mp4"}))
	assert.Equal(t, "動画ファイルを選択してください", ValidateMyVideo(&FileInfo{Size: 10, ContentType: "image/png"}))

	assert.Equal(t, "", ValidateVideoUpload(&FileInfo{Name: "swing.MOV", Size: 10}))
	assert.Contains(t, ValidateVideoUpload(&FileInfo{Name: "swing.webm", Size: 10}), "サポートされていない動画形式です")
	assert.Equal(t, "ファイルサイズが大きすぎます。上限: 50MB", ValidateVideoUpload(&FileInfo{Name: "swing.mp4", Size: MaxVideoSize + 1}))

	assert.Equal(t, "video/quicktime", VideoContentType("a.mov"))
	assert.Equal(t, "video/mp4", VideoContentType("a.mp4"))
}

func TestValidateComment(t *testing.T) {
	assert.True(t, ValidateComment(CommentInput{Content: "ナイススイング"}).OK())
	assert.Equal(t, "コメントを入力してください", ValidateComment(CommentInput{Content: "\n"})["content"])
	assert.Equal(t, "コメントは1000文字以内で入力してください", ValidateComment(CommentInput{Content: strings.Repeat("あ", 1001)})["content"])
}
