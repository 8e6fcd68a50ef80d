package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/secondwind/internal/constants"
)

// MaxTitleLen caps task and habit titles. Long titles are a symptom of paste
// accidents, not real entries.
const MaxTitleLen = 200

// Title validates a user-entered task or habit title. The core packages
// assume pre-validated non-empty titles, so every CLI and TUI entry point
// must pass input through here first.
func Title(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", fmt.Errorf("title must not be empty")
	}
	if len(title) > MaxTitleLen {
		return "", fmt.Errorf("title must be at most %d characters", MaxTitleLen)
	}
	return title, nil
}

// Day validates a calendar-day string (YYYY-MM-DD).
func Day(raw string) (string, error) {
	if _, err := time.Parse(constants.DayFormat, raw); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", raw, err)
	}
	return raw, nil
}
