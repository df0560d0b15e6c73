package webclient

import (
	"net/http"
	"regexp"
)

const (
	csrfHeader      = "X-CSRFToken"
	csrfCookieName  = "csrftoken"
	metaTokenName   = "csrf-token"
	hiddenFieldName = "csrfmiddlewaretoken"
)

var (
	metaTokenRe = regexp.MustCompile(
		`<meta[^>]*\bname=["']` + metaTokenName + `["'][^>]*\bcontent=["']([^"']+)["']`)
	metaTokenReverseRe = regexp.MustCompile(
		`<meta[^>]*\bcontent=["']([^"']+)["'][^>]*\bname=["']` + metaTokenName + `["']`)
	hiddenFieldRe = regexp.MustCompile(
		`<input[^>]*\bname=["']` + hiddenFieldName + `["'][^>]*\bvalue=["']([^"']+)["']`)
)

// ResolveToken finds the page's anti-forgery token. The fallback order is
// load-bearing and must not be reordered: a csrf-token meta tag, then the
// csrftoken cookie, then a hidden csrfmiddlewaretoken form field. An empty
// result means requests proceed without the header and the server decides.
func ResolveToken(pageHTML string, cookies []*http.Cookie) string {
	if m := metaTokenRe.FindStringSubmatch(pageHTML); m != nil {
		return m[1]
	}
	if m := metaTokenReverseRe.FindStringSubmatch(pageHTML); m != nil {
		return m[1]
	}
	for _, ck := range cookies {
		if ck.Name == csrfCookieName && ck.Value != "" {
			return ck.Value
		}
	}
	if m := hiddenFieldRe.FindStringSubmatch(pageHTML); m != nil {
		return m[1]
	}
	return ""
}
