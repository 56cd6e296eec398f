package services_test

import (
	"strings"
	"testing"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"
	"learnai_go_backend/internal/services"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptBuilderChat(t *testing.T) {
	builder := services.NewPromptBuilder(100)

	t.Run("Orders system, history, then the new message", func(t *testing.T) {
		// Setup
		history := []models.ChatMessage{
			{Role: models.RoleUser, Content: "What is an atom?"},
			{Role: models.RoleAssistant, Content: "The smallest unit of matter."},
		}

		// Execute
		messages, err := builder.Build(services.BuildInput{
			Feature:  services.FeatureChat,
			Input:    "And a molecule?",
			Language: "English",
			History:  history,
		})

		// Assert
		require.NoError(t, err)
		require.Len(t, messages, 4)
		assert.Equal(t, openai.ChatMessageRoleSystem, messages[0].Role)
		assert.Equal(t, "What is an atom?", messages[1].Content)
		assert.Equal(t, "The smallest unit of matter.", messages[2].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, messages[3].Role)
		assert.Equal(t, "And a molecule?", messages[3].Content)
	})

	t.Run("Names the response language explicitly", func(t *testing.T) {
		// Execute
		messages, err := builder.Build(services.BuildInput{
			Feature:  services.FeatureChat,
			Input:    "Explica la fotosintesis",
			Language: "Spanish",
		})

		// Assert
		require.NoError(t, err)
		assert.Contains(t, messages[0].Content, "must be written in Spanish")
	})

	t.Run("Adds a script directive for non-Latin languages", func(t *testing.T) {
		// Execute
		messages, err := builder.Build(services.BuildInput{
			Feature:  services.FeatureChat,
			Input:    "Explain gravity",
			Language: "Hindi",
		})

		// Assert
		require.NoError(t, err)
		assert.Contains(t, messages[0].Content, "Devanagari")
	})

	t.Run("Mentions the subject when one is set", func(t *testing.T) {
		// Execute
		messages, err := builder.Build(services.BuildInput{
			Feature:  services.FeatureChat,
			Input:    "What is a derivative?",
			Language: "English",
			Subject:  "Mathematics",
		})

		// Assert
		require.NoError(t, err)
		assert.Contains(t, messages[0].Content, "Mathematics")
	})

	t.Run("Rejects an empty message", func(t *testing.T) {
		// Execute
		_, err := builder.Build(services.BuildInput{
			Feature: services.FeatureChat,
			Input:   "  \n ",
		})

		// Assert
		require.Error(t, err)
		var customErr *apperrors.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, customErr.Type)
		assert.Equal(t, "Please provide a message", customErr.Message)
	})
}

func TestPromptBuilderSummarize(t *testing.T) {
	builder := services.NewPromptBuilder(100)
	longText := strings.Repeat("Cells divide through mitosis. ", 20)

	t.Run("Every style and length combination gets a distinct directive", func(t *testing.T) {
		// Execute
		seen := map[string]string{}
		for _, style := range []string{"bullet", "paragraph", "outline"} {
			for _, length := range []string{"short", "medium", "long"} {
				messages, err := builder.Build(services.BuildInput{
					Feature: services.FeatureSummarize,
					Input:   longText,
					Summary: services.SummaryOptions{Style: style, Length: length},
				})
				require.NoError(t, err)
				seen[style+"/"+length] = messages[0].Content
			}
		}

		// Assert: 9 cells, all different
		assert.Len(t, seen, 9)
		distinct := map[string]bool{}
		for _, prompt := range seen {
			distinct[prompt] = true
		}
		assert.Len(t, distinct, 9)
	})

	t.Run("Defaults to a medium bullet summary", func(t *testing.T) {
		// Execute
		defaulted, err := builder.Build(services.BuildInput{
			Feature: services.FeatureSummarize,
			Input:   longText,
		})
		require.NoError(t, err)

		explicit, err := builder.Build(services.BuildInput{
			Feature: services.FeatureSummarize,
			Input:   longText,
			Summary: services.SummaryOptions{Style: "bullet", Length: "medium"},
		})
		require.NoError(t, err)

		// Assert
		assert.Equal(t, explicit[0].Content, defaulted[0].Content)
	})

	t.Run("Rejects input below the minimum length", func(t *testing.T) {
		// Execute
		_, err := builder.Build(services.BuildInput{
			Feature: services.FeatureSummarize,
			Input:   "too short",
		})

		// Assert
		require.Error(t, err)
		var customErr *apperrors.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, "Please provide at least 100 characters of text", customErr.Message)
	})

	t.Run("Rejects an unknown style", func(t *testing.T) {
		// Execute
		_, err := builder.Build(services.BuildInput{
			Feature: services.FeatureSummarize,
			Input:   longText,
			Summary: services.SummaryOptions{Style: "haiku"},
		})

		// Assert
		require.Error(t, err)
		var customErr *apperrors.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, apperrors.ErrorTypeValidation, customErr.Type)
	})
}
