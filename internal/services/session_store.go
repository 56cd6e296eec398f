package services

import (
	"sync"

	"learnai_go_backend/internal/models"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// SessionStore manages bounded-history conversation state. Appends to the same
// session id serialize through a per-id mutex so concurrent requests cannot
// lose or duplicate turns; a read-through cache avoids a database read per turn.
type SessionStore struct {
	repo         ChatRepository
	cache        *gocache.Cache
	locks        sync.Map // sessionID -> *sync.Mutex
	windowTurns  int      // history handed to the prompt builder
	historyTurns int      // history retained after append
}

func NewSessionStore(repo ChatRepository, windowTurns, historyTurns int) *SessionStore {
	return &SessionStore{
		repo:         repo,
		cache:        gocache.New(gocache.NoExpiration, 0),
		windowTurns:  windowTurns,
		historyTurns: historyTurns,
	}
}

func (s *SessionStore) sessionLock(sessionID string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// GetOrCreate returns the caller's session for the given id, creating it when
// absent. An empty id mints a fresh opaque one. The title of a new session is
// derived from the first message.
func (s *SessionStore) GetOrCreate(userID uuid.UUID, sessionID, firstMessage, language, subject string) (*models.ChatSession, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if cached, ok := s.cache.Get(cacheKey(userID, sessionID)); ok {
		return cached.(*models.ChatSession), nil
	}

	session, err := s.repo.GetOrCreate(userID, sessionID, deriveTitle(firstMessage), language, subject)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey(userID, sessionID), session, gocache.NoExpiration)
	return session, nil
}

// Get returns the stored session without creating one.
func (s *SessionStore) Get(userID uuid.UUID, sessionID string) (*models.ChatSession, error) {
	if cached, ok := s.cache.Get(cacheKey(userID, sessionID)); ok {
		return cached.(*models.ChatSession), nil
	}
	session, err := s.repo.GetBySessionID(userID, sessionID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(cacheKey(userID, sessionID), session, gocache.NoExpiration)
	return session, nil
}

// Window returns the most recent turns to hand to the prompt builder, in
// original order.
func (s *SessionStore) Window(session *models.ChatSession) []models.ChatMessage {
	return lastN(session.Messages, s.windowTurns)
}

// AppendExchange appends a user+assistant turn pair and prunes the stored
// history to the retention limit, oldest turns discarded first. The session is
// re-read under the per-id lock so interleaved appends both land.
func (s *SessionStore) AppendExchange(userID uuid.UUID, sessionID string, userMsg, assistantMsg models.ChatMessage) (*models.ChatSession, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.repo.GetBySessionID(userID, sessionID)
	if err != nil {
		return nil, err
	}

	title := session.Title
	if len(session.Messages) == 0 {
		title = deriveTitle(userMsg.Content)
	}

	messages := append([]models.ChatMessage(session.Messages), userMsg, assistantMsg)
	messages = lastN(messages, s.historyTurns)

	if err := s.repo.SaveMessages(userID, sessionID, messages, title); err != nil {
		return nil, err
	}

	session.Messages = messages
	session.Title = title
	s.cache.Set(cacheKey(userID, sessionID), session, gocache.NoExpiration)
	return session, nil
}

// Delete removes a session immediately; there is no tombstoning.
func (s *SessionStore) Delete(userID uuid.UUID, sessionID string) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.repo.Delete(userID, sessionID); err != nil {
		return err
	}
	s.cache.Delete(cacheKey(userID, sessionID))
	s.locks.Delete(sessionID)
	return nil
}

// DeleteAll clears every session the caller owns.
func (s *SessionStore) DeleteAll(userID uuid.UUID) error {
	if err := s.repo.DeleteAll(userID); err != nil {
		return err
	}
	s.cache.Flush()
	return nil
}

func cacheKey(userID uuid.UUID, sessionID string) string {
	return userID.String() + ":" + sessionID
}

func lastN(messages []models.ChatMessage, n int) []models.ChatMessage {
	if len(messages) <= n {
		return messages
	}
	return messages[len(messages)-n:]
}

func deriveTitle(message string) string {
	if message == "" {
		return "New Conversation"
	}
	runes := []rune(message)
	if len(runes) <= 50 {
		return message
	}
	return string(runes[:50]) + "..."
}
