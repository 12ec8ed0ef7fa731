// Package validation holds the form rules shared by the API server and the client SDK.
// Each validator maps an input record to field name -> user-facing message; an empty
// result means the input is acceptable.
package validation

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

type Errors map[string]string

func (e Errors) OK() bool { return len(e) == 0 }

// Error joins the messages in field order so the output is stable.
func (e Errors) Error() string {
	keys := e.fields()
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e[k])
	}
	return strings.Join(msgs, "; ")
}

// First returns the message of the alphabetically first field, or "".
func (e Errors) First() string {
	keys := e.fields()
	if len(keys) == 0 {
		return ""
	}
	return e[keys[0]]
}

func (e Errors) fields() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var (
	strictEmailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	looseEmailRe  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitRe       = regexp.MustCompile(`\d`)
	letterRe      = regexp.MustCompile(`[a-zA-Z]`)
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func length(s string) int { return utf8.RuneCountInString(s) }

// IsValidURL accepts absolute http and https URLs only.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
