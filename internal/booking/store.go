package booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

// cleanupInterval период удаления истекших сессий
const cleanupInterval = 1 * time.Minute

// Store потокобезопасное in-memory хранилище сессий записи
// Сессии короткоживущие и не переживают рестарт сервиса - это приемлемо,
// клиент просто начнет сценарий заново
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewStore создает хранилище сессий с заданным TTL
// и запускает фоновую очистку истекших сессий
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

// Create создает новую сессию на первом шаге сценария
func (s *Store) Create(now time.Time) (*Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate session id: %v", ErrInternal, err)
	}

	session := &Session{
		ID:        id,
		Step:      StepService,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session.clone(), nil
}

// Get возвращает сессию по ID
// Истекшая сессия неотличима от отсутствующей
func (s *Store) Get(id string, now time.Time) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || session.IsExpired(now) {
		return nil, ErrSessionNotFound
	}

	return session.clone(), nil
}

// Update сохраняет измененную сессию и продлевает её TTL
// Каждый шаг сценария продлевает жизнь сессии
func (s *Store) Update(session *Session, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.ID]
	if !ok || existing.IsExpired(now) {
		return ErrSessionNotFound
	}

	session.UpdatedAt = now
	session.ExpiresAt = now.Add(s.ttl)
	s.sessions[session.ID] = session.clone()

	return nil
}

// Delete удаляет сессию
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len возвращает количество сессий в хранилище
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close останавливает фоновую очистку
func (s *Store) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// cleanupLoop периодически удаляет истекшие сессии
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired(time.Now())
		case <-s.stopCh:
			return
		}
	}
}

// removeExpired удаляет все сессии с истекшим TTL
func (s *Store) removeExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
		}
	}
}

// newSessionID генерирует криптослучайный идентификатор сессии
func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
