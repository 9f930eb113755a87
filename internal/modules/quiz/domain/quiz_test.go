package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upmind/internal/modules/quiz/domain"
	apperrors "upmind/internal/platform/errors"
)

func TestValidAPIKey(t *testing.T) {
	t.Parallel()
	assert.True(t, domain.ValidAPIKey("abcDEF_123-xyz"))
	assert.False(t, domain.ValidAPIKey("short_key1"), "ten characters is not enough")
	assert.True(t, domain.ValidAPIKey("short_key12"))
	assert.False(t, domain.ValidAPIKey("has spaces in it"))
	assert.False(t, domain.ValidAPIKey("sk.live.123456789"))
	assert.False(t, domain.ValidAPIKey(""))
}

func TestRequestNormalizeAndValidate(t *testing.T) {
	t.Parallel()
	r := domain.Request{Title: "  Go channels  ", TechStack: []string{" go ", ""}, Category: " Coding "}.Normalize()
	require.NoError(t, r.Validate())
	assert.Equal(t, "Go channels", r.Title)
	assert.Equal(t, domain.DifficultyBeginner, r.Difficulty)
	assert.Equal(t, "coding", r.Category)
	assert.Equal(t, []string{"go"}, r.TechStack)

	assert.Equal(t, "general", domain.Request{Title: "x"}.Normalize().Category)
	require.ErrorIs(t, domain.Request{}.Normalize().Validate(), apperrors.ErrInvalidInput)
	require.ErrorIs(t, domain.Request{Title: "x", Difficulty: "expert"}.Normalize().Validate(), apperrors.ErrInvalidInput)
}

func TestValidateQuestions(t *testing.T) {
	t.Parallel()
	good := domain.Question{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2}
	require.NoError(t, domain.ValidateQuestions([]domain.Question{good}))
	require.Error(t, domain.ValidateQuestions(nil))

	threeOptions := good
	threeOptions.Options = []string{"a", "b", "c"}
	require.Error(t, domain.ValidateQuestions([]domain.Question{good, threeOptions}))

	outOfRange := good
	outOfRange.CorrectAnswer = 4
	require.Error(t, outOfRange.Validate())

	blankOption := good
	blankOption.Options = []string{"a", " ", "c", "d"}
	require.Error(t, blankOption.Validate())
}

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()
	raw, err := domain.ExtractJSONObject("Sure! Here you go:\n```json\n{\"questions\": [{\"a\": {}}]}\n```\nEnjoy.")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(raw)))

	_, err = domain.ExtractJSONObject("no braces here")
	require.Error(t, err)
	_, err = domain.ExtractJSONObject("} backwards {")
	require.Error(t, err)
}

func TestFallbackAlwaysYieldsValidQuestions(t *testing.T) {
	t.Parallel()
	for _, category := range []string{"coding", "career", "startup", "general", "cooking"} {
		r := domain.Request{Title: "Intro", Category: category, TechStack: []string{"React Native"}}.Normalize()
		qs := domain.Fallback(r)
		require.NoError(t, domain.ValidateQuestions(qs), category)
	}
	coding := domain.Fallback(domain.Request{Title: "x", Category: "coding", TechStack: []string{"Go"}})
	assert.Contains(t, coding[0].Question, "Go")
	noStack := domain.Fallback(domain.Request{Title: "x", Category: "coding"})
	assert.NotContains(t, noStack[0].Question, "%!")
}

func TestBuildPromptMentionsRequest(t *testing.T) {
	t.Parallel()
	p := domain.BuildPrompt(domain.Request{Title: "Hooks", TechStack: []string{"React", "TS"}, Difficulty: domain.DifficultyAdvanced, Category: "coding"})
	assert.Contains(t, p, `"Hooks"`)
	assert.Contains(t, p, "React, TS")
	assert.Contains(t, p, "expert-level")
	assert.True(t, strings.HasSuffix(p, "}"))
}
