package service

import (
	"fmt"
	"testing"

	"github.com/wearly/stylist-service/internal/domain"
)

func TestCategorizeError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{domain.ErrUserNotFound, "user_not_found"},
		{domain.ErrItemNotFound, "item_not_found"},
		{domain.ErrEmailTaken, "email_taken"},
		{domain.ErrAccountLocked, "account_locked"},
		{domain.ErrWardrobeTooSmall, "wardrobe_too_small"},
		{domain.ErrStylistUnavailable, "stylist_unavailable"},
		{fmt.Errorf("wrapped: %w", domain.ErrInvalidToken), "invalid_token"},
		{fmt.Errorf("something else"), "internal_error"},
	}

	for _, tc := range cases {
		code, msg := CategorizeError(tc.err)
		if code != tc.code {
			t.Errorf("CategorizeError(%v) code = %q, want %q", tc.err, code, tc.code)
		}
		if msg == "" {
			t.Errorf("CategorizeError(%v) returned empty message", tc.err)
		}
	}
}

func TestAppendCapped(t *testing.T) {
	list := []string{"blue", "black"}

	list = appendCapped(list, "blue", 3)
	if len(list) != 2 {
		t.Errorf("duplicate appended: %v", list)
	}

	list = appendCapped(list, "white", 3)
	if len(list) != 3 || list[2] != "white" {
		t.Errorf("new value not appended: %v", list)
	}

	list = appendCapped(list, "green", 3)
	if len(list) != 3 {
		t.Errorf("cap not enforced: %v", list)
	}
	if list[0] != "black" || list[2] != "green" {
		t.Errorf("oldest entry not evicted: %v", list)
	}

	if got := appendCapped(list, "", 3); len(got) != 3 {
		t.Errorf("empty value changed list: %v", got)
	}
}
