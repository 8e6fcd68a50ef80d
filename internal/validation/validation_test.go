package validation

import (
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	got, err := Title("  Write report  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Write report" {
		t.Errorf("expected trimmed title, got %q", got)
	}

	if _, err := Title("   "); err == nil {
		t.Errorf("blank title should be rejected")
	}

	if _, err := Title(strings.Repeat("x", MaxTitleLen)); err != nil {
		t.Errorf("title at the limit should pass: %v", err)
	}
	if _, err := Title(strings.Repeat("x", MaxTitleLen+1)); err == nil {
		t.Errorf("over-long title should be rejected")
	}
}

func TestDay(t *testing.T) {
	if _, err := Day("2025-06-15"); err != nil {
		t.Errorf("valid day rejected: %v", err)
	}
	for _, bad := range []string{"2025-13-01", "15-06-2025", "2025-6-5", "yesterday", ""} {
		if _, err := Day(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
