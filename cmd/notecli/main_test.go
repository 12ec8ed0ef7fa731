package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFileRoundTrip(t *testing.T) {
	old := tokenFile
	t.Cleanup(func() { tokenFile = old })
	tokenFile = filepath.Join(t.TempDir(), "nested", "token")

	assert.Empty(t, loadToken())
	require.NoError(t, saveToken("abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", loadToken())
}

func TestPrintResult(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	asJSON = true
	t.Cleanup(func() { asJSON = false })
	require.NoError(t, printResult(cmd, map[string]int{"total": 2}, func() { t.Fatal("pretty printer used with --json") }))
	assert.JSONEq(t, `{"total":2}`, buf.String())

	buf.Reset()
	asJSON = false
	called := false
	require.NoError(t, printResult(cmd, nil, func() { called = true }))
	assert.True(t, called)
}

func TestPasswordFlag(t *testing.T) {
	t.Setenv("NOTECLI_PASSWORD", "fromenv1")
	assert.Equal(t, "flag1234", passwordFlag("flag1234"))
	assert.Equal(t, "fromenv1", passwordFlag(""))
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"login"}, {"logout"}, {"whoami"}, {"signup"},
		{"notes", "list"}, {"notes", "show"}, {"notes", "create"}, {"notes", "delete"},
		{"menu", "add"}, {"menu", "delete"}, {"comments", "add"}, {"alerts"}, {"profile"},
		{"stats"}, {"stats", "week"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestWhoami_NotSignedIn(t *testing.T) {
	old := tokenFile
	t.Cleanup(func() { tokenFile = old })
	tokenFile = filepath.Join(t.TempDir(), "token")

	rootCmd.SetArgs([]string{"whoami", "--api", "http://127.0.0.1:0", "--token-file", tokenFile})
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestParseDay(t *testing.T) {
	d, err := parseDay("from", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseDay("from", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	_, err = parseDay("to", "03/02")
	assert.EqualError(t, err, `--to: want YYYY-MM-DD, got "03/02"`)
}
