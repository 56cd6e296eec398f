package services_test

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"learnai_go_backend/internal/models"
	"learnai_go_backend/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreGetOrCreate(t *testing.T) {
	// Setup
	repo := newMemoryChatRepository()
	store := services.NewSessionStore(repo, 10, 20)
	userID := uuid.New()

	t.Run("Mints a session id when none is given", func(t *testing.T) {
		// Execute
		session, err := store.GetOrCreate(userID, "", "What is photosynthesis?", "English", "Biology")

		// Assert
		assert.NoError(t, err)
		assert.NotEmpty(t, session.SessionID)
		assert.Equal(t, "What is photosynthesis?", session.Title)
		assert.Equal(t, "Biology", session.Subject)
	})

	t.Run("Returns the existing session for a known id", func(t *testing.T) {
		// Setup
		first, err := store.GetOrCreate(userID, "session-1", "First question", "English", "")
		require.NoError(t, err)

		// Execute
		second, err := store.GetOrCreate(userID, "session-1", "A different question", "English", "")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "First question", second.Title)
	})

	t.Run("Truncates long first messages into the title", func(t *testing.T) {
		// Setup
		longMessage := strings.Repeat("a", 80)

		// Execute
		session, err := store.GetOrCreate(userID, "session-long", longMessage, "English", "")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, strings.Repeat("a", 50)+"...", session.Title)
	})
}

func TestSessionStoreAppendExchange(t *testing.T) {
	// Setup
	repo := newMemoryChatRepository()
	store := services.NewSessionStore(repo, 10, 20)
	userID := uuid.New()

	_, err := store.GetOrCreate(userID, "session-1", "hello", "English", "")
	require.NoError(t, err)

	// Execute: 15 exchanges, 30 turns total
	for i := 0; i < 15; i++ {
		_, err := store.AppendExchange(userID, "session-1",
			models.ChatMessage{Role: models.RoleUser, Content: fmt.Sprintf("question %d", i), Timestamp: time.Now()},
			models.ChatMessage{Role: models.RoleAssistant, Content: fmt.Sprintf("answer %d", i), Timestamp: time.Now()},
		)
		require.NoError(t, err)
	}

	// Assert: only the 20 most recent turns survive, oldest discarded first
	session, err := store.Get(userID, "session-1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 20)
	assert.Equal(t, "question 5", session.Messages[0].Content)
	assert.Equal(t, "answer 14", session.Messages[19].Content)

	// The prompt window is the last 10 of those, in original order
	window := store.Window(session)
	assert.Len(t, window, 10)
	assert.Equal(t, "question 10", window[0].Content)
	assert.Equal(t, "answer 14", window[9].Content)
}

func TestSessionStoreConcurrentAppends(t *testing.T) {
	// Setup
	repo := newMemoryChatRepository()
	store := services.NewSessionStore(repo, 10, 20)
	userID := uuid.New()

	_, err := store.GetOrCreate(userID, "session-1", "", "English", "")
	require.NoError(t, err)

	// Execute: 10 concurrent exchanges against the same session
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AppendExchange(userID, "session-1",
				models.ChatMessage{Role: models.RoleUser, Content: fmt.Sprintf("question %d", i)},
				models.ChatMessage{Role: models.RoleAssistant, Content: fmt.Sprintf("answer %d", i)},
			)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Assert: every pair landed, none lost or duplicated
	session, err := store.Get(userID, "session-1")
	require.NoError(t, err)
	assert.Len(t, session.Messages, 20)

	questions := map[string]int{}
	for _, msg := range session.Messages {
		if msg.Role == models.RoleUser {
			questions[msg.Content]++
		}
	}
	assert.Len(t, questions, 10)
	for content, count := range questions {
		assert.Equal(t, 1, count, "duplicate turn %q", content)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	// Setup
	repo := newMemoryChatRepository()
	store := services.NewSessionStore(repo, 10, 20)
	userID := uuid.New()

	_, err := store.GetOrCreate(userID, "session-1", "hello", "English", "")
	require.NoError(t, err)

	// Execute
	err = store.Delete(userID, "session-1")

	// Assert
	assert.NoError(t, err)
	_, err = store.Get(userID, "session-1")
	assert.Error(t, err)
}
