package game

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/categoryarena/arena-backend/internal/entity"
)

// Answers shorter than this are rejected regardless of configured bounds.
const absoluteMinAnswerLength = 2

var (
	ErrEmptyAnswer       = errors.New("answer cannot be empty")
	ErrAnswerTooShort    = errors.New("answer is too short")
	ErrAnswerTooLong     = errors.New("answer is too long")
	ErrBannedLetter      = errors.New("answer contains a banned letter")
	ErrAnswerAlreadyUsed = errors.New("answer has already been used")
	ErrInvalidCharacters = errors.New("answer contains invalid characters")
)

var answerCharset = regexp.MustCompile(`^[a-zA-Z0-9\s\-'.]+$`)

// NormalizeAnswer is the canonical form answers are deduplicated under:
// lowercased and trimmed.
func NormalizeAnswer(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateAnswer runs the ordered acceptance pipeline and returns nil when
// the answer is acceptable, or the reason for the first failing step. It
// never mutates the used set; committing an accepted answer is the caller's
// decision.
//
// The category is accepted for future per-category validators; no semantic
// dictionary check is performed today.
func ValidateAnswer(raw string, _ entity.Category, constraints entity.Constraints, used map[string]bool) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrEmptyAnswer
	}

	if constraints.MinAnswerLength > 0 && len(trimmed) < constraints.MinAnswerLength {
		return fmt.Errorf("%w: minimum is %d characters", ErrAnswerTooShort, constraints.MinAnswerLength)
	}

	if constraints.MaxAnswerLength > 0 && len(trimmed) > constraints.MaxAnswerLength {
		return fmt.Errorf("%w: maximum is %d characters", ErrAnswerTooLong, constraints.MaxAnswerLength)
	}

	lower := strings.ToLower(trimmed)
	for _, letter := range constraints.BannedLetters {
		if strings.Contains(lower, strings.ToLower(letter)) {
			return fmt.Errorf("%w: %s", ErrBannedLetter, strings.ToUpper(letter))
		}
	}

	if used[NormalizeAnswer(trimmed)] {
		return ErrAnswerAlreadyUsed
	}

	if !answerCharset.MatchString(trimmed) {
		return ErrInvalidCharacters
	}

	if len(trimmed) < absoluteMinAnswerLength {
		return ErrAnswerTooShort
	}

	return nil
}
