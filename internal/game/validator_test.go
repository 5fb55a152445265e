package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/categoryarena/arena-backend/internal/entity"
)

func TestValidateAnswer(t *testing.T) {
	category := entity.Category{ID: "animals", Name: "Animals"}

	t.Run("Accepts a clean answer", func(t *testing.T) {
		// When: validating a plain answer with no constraints
		err := ValidateAnswer("capybara", category, entity.Constraints{}, map[string]bool{})

		// Then: it passes
		require.NoError(t, err)
	})

	t.Run("Rejects empty and whitespace-only answers", func(t *testing.T) {
		err := ValidateAnswer("   ", category, entity.Constraints{}, map[string]bool{})

		require.ErrorIs(t, err, ErrEmptyAnswer)
	})

	t.Run("Enforces the configured minimum length", func(t *testing.T) {
		constraints := entity.Constraints{MinAnswerLength: 5}

		err := ValidateAnswer("cat", category, constraints, map[string]bool{})

		require.ErrorIs(t, err, ErrAnswerTooShort)
	})

	t.Run("Enforces the configured maximum length", func(t *testing.T) {
		constraints := entity.Constraints{MaxAnswerLength: 4}

		err := ValidateAnswer("elephant", category, constraints, map[string]bool{})

		require.ErrorIs(t, err, ErrAnswerTooLong)
	})

	t.Run("Rejects banned letters case-insensitively", func(t *testing.T) {
		constraints := entity.Constraints{BannedLetters: []string{"E"}}

		// When: the answer contains the banned letter in lowercase
		err := ValidateAnswer("elephant", category, constraints, map[string]bool{})

		// Then: the banned-letter step fires
		require.ErrorIs(t, err, ErrBannedLetter)
	})

	t.Run("Rejects duplicates under normalization", func(t *testing.T) {
		// Given: "capybara" was already accepted this match
		used := map[string]bool{"capybara": true}

		// When: the same answer comes back with different casing and padding
		err := ValidateAnswer("  CapyBara  ", category, entity.Constraints{}, used)

		// Then: the duplicate step fires
		require.ErrorIs(t, err, ErrAnswerAlreadyUsed)
	})

	t.Run("Rejects characters outside the allowed set", func(t *testing.T) {
		err := ValidateAnswer("cat!", category, entity.Constraints{}, map[string]bool{})

		require.ErrorIs(t, err, ErrInvalidCharacters)
	})

	t.Run("Allows digits, spaces, hyphen, apostrophe and period", func(t *testing.T) {
		err := ValidateAnswer("mr. o'brien-2", category, entity.Constraints{}, map[string]bool{})

		require.NoError(t, err)
	})

	t.Run("Rejects answers below the absolute minimum", func(t *testing.T) {
		// When: a one-character answer arrives with no configured minimum
		err := ValidateAnswer("a", category, entity.Constraints{}, map[string]bool{})

		// Then: the absolute floor still applies
		require.ErrorIs(t, err, ErrAnswerTooShort)
	})

	t.Run("Does not mutate the used set", func(t *testing.T) {
		used := map[string]bool{}

		require.NoError(t, ValidateAnswer("lynx", category, entity.Constraints{}, used))

		// Then: committing is the caller's job
		require.Empty(t, used)
	})

	t.Run("Banned letter beats duplicate in pipeline order", func(t *testing.T) {
		// Given: an answer that is both a duplicate and contains a banned letter
		constraints := entity.Constraints{BannedLetters: []string{"a"}}
		used := map[string]bool{"capybara": true}

		err := ValidateAnswer("capybara", category, constraints, used)

		// Then: the earlier step's reason is reported
		require.ErrorIs(t, err, ErrBannedLetter)
	})
}

func TestNormalizeAnswer(t *testing.T) {
	require.Equal(t, "capybara", NormalizeAnswer("  CapyBara  "))
	require.Equal(t, "two words", NormalizeAnswer("Two Words"))
}
