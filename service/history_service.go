package service

import (
	"sync"
	"time"

	"github.com/tieubaoca/roskai-be/types"
)

// ChatHistoryService keeps per-session conversation history in memory.
// Sessions are bounded by a maximum retained turn count and evicted after
// sitting idle longer than the TTL. Nothing survives a process restart.
type ChatHistoryService struct {
	mu       sync.Mutex
	sessions map[string]*sessionHistory
	maxTurns int
	ttl      time.Duration
	now      func() time.Time
}

type sessionHistory struct {
	turns      []types.Message
	lastActive time.Time
}

func NewChatHistoryService(maxTurns int, ttl time.Duration) *ChatHistoryService {
	if maxTurns <= 0 {
		maxTurns = 100
	}
	return &ChatHistoryService{
		sessions: make(map[string]*sessionHistory),
		maxTurns: maxTurns,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Append adds turns to a session, oldest first. Passing the user and bot
// turns of one exchange in a single call keeps them adjacent even when
// requests from other sessions interleave.
func (s *ChatHistoryService) Append(sessionID string, turns ...types.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	h := s.sessions[sessionID]
	if h == nil {
		h = &sessionHistory{}
		s.sessions[sessionID] = h
	}
	h.turns = append(h.turns, turns...)
	if len(h.turns) > s.maxTurns {
		kept := make([]types.Message, s.maxTurns)
		copy(kept, h.turns[len(h.turns)-s.maxTurns:])
		h.turns = kept
	}
	h.lastActive = s.now()
}

// RecentWindow returns up to n most recent turns of a session, oldest first.
// The returned slice is a copy.
func (s *ChatHistoryService) RecentWindow(sessionID string, n int) []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.sessions[sessionID]
	if h == nil || n <= 0 {
		return nil
	}
	turns := h.turns
	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	out := make([]types.Message, len(turns))
	copy(out, turns)
	return out
}

// Len reports the number of retained turns for a session.
func (s *ChatHistoryService) Len(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.sessions[sessionID]
	if h == nil {
		return 0
	}
	return len(h.turns)
}

func (s *ChatHistoryService) evictExpiredLocked() {
	if s.ttl <= 0 {
		return
	}
	cutoff := s.now().Add(-s.ttl)
	for id, h := range s.sessions {
		if h.lastActive.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
