package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"warbler/internal/models"
)

// ValidateMessageText checks that a message body is non-blank and within the
// character limit. Length is counted in runes, not bytes.
func ValidateMessageText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("message text is required")
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return fmt.Errorf("message text must be at most %d characters", models.MaxMessageLength)
	}
	return nil
}
