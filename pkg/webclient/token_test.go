package webclient

import (
	"net/http"
	"testing"
)

const pageWithAll = `<html><head>
<meta name="csrf-token" content="from-meta">
</head><body>
<form><input type="hidden" name="csrfmiddlewaretoken" value="from-field"></form>
</body></html>`

const pageWithField = `<html><body>
<form><input type="hidden" name="csrfmiddlewaretoken" value="from-field"></form>
</body></html>`

func TestResolveTokenPrefersMetaTag(t *testing.T) {
	cookies := []*http.Cookie{{Name: "csrftoken", Value: "from-cookie"}}
	if got := ResolveToken(pageWithAll, cookies); got != "from-meta" {
		t.Errorf("expected meta tag to win, got %q", got)
	}
}

func TestResolveTokenFallsBackToCookie(t *testing.T) {
	cookies := []*http.Cookie{
		{Name: "sessionid", Value: "irrelevant"},
		{Name: "csrftoken", Value: "from-cookie"},
	}
	if got := ResolveToken(pageWithField, cookies); got != "from-cookie" {
		t.Errorf("expected cookie before hidden field, got %q", got)
	}
}

func TestResolveTokenFallsBackToHiddenField(t *testing.T) {
	if got := ResolveToken(pageWithField, nil); got != "from-field" {
		t.Errorf("expected hidden field as last resort, got %q", got)
	}
}

func TestResolveTokenAbsentEverywhere(t *testing.T) {
	if got := ResolveToken("<html></html>", nil); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}

func TestResolveTokenMetaAttributeOrder(t *testing.T) {
	page := `<meta content="swapped" name="csrf-token">`
	if got := ResolveToken(page, nil); got != "swapped" {
		t.Errorf("attribute order should not matter, got %q", got)
	}
}
