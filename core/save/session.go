// ABOUTME: Session holds the per-process state shared between save calls
// ABOUTME: Tracks metadata staged per browser tab and notification links

package save

import (
	"strings"
	"sync"
	"time"

	"postsheet-api/core/domain"
)

const defaultSessionEntries = 200

// PendingCapture is metadata staged for a tab before its save arrives
type PendingCapture struct {
	Author    domain.Author `json:"author"`
	Highlight string        `json:"highlight,omitempty"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Session owns tab-keyed pending metadata and the notification id to
// sheet link map. Both maps are bounded; the oldest entry is evicted first.
type Session struct {
	mu         sync.Mutex
	maxEntries int

	pending      map[string]PendingCapture
	pendingOrder []string

	links     map[string]string
	linkOrder []string
}

// NewSession creates an empty session
func NewSession() *Session {
	return &Session{
		maxEntries: defaultSessionEntries,
		pending:    make(map[string]PendingCapture),
		links:      make(map[string]string),
	}
}

// SetPending stages metadata for a tab, replacing anything staged earlier
func (s *Session) SetPending(tabID string, p PendingCapture) {
	tabID = strings.TrimSpace(tabID)
	if tabID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[tabID]; !ok {
		s.pendingOrder = append(s.pendingOrder, tabID)
	}
	s.pending[tabID] = p
	s.pendingOrder = evict(s.pendingOrder, s.maxEntries, func(k string) { delete(s.pending, k) })
}

// Pending returns the metadata staged for a tab
func (s *Session) Pending(tabID string) (PendingCapture, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[strings.TrimSpace(tabID)]
	return p, ok
}

// ClearPending drops the metadata staged for a tab
func (s *Session) ClearPending(tabID string) {
	tabID = strings.TrimSpace(tabID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[tabID]; !ok {
		return
	}
	delete(s.pending, tabID)
	s.pendingOrder = remove(s.pendingOrder, tabID)
}

// RememberLink records where a notification should lead when opened
func (s *Session) RememberLink(notificationID, link string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[notificationID]; !ok {
		s.linkOrder = append(s.linkOrder, notificationID)
	}
	s.links[notificationID] = link
	s.linkOrder = evict(s.linkOrder, s.maxEntries, func(k string) { delete(s.links, k) })
}

// Link resolves a notification id to its sheet link
func (s *Session) Link(notificationID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[notificationID]
	return link, ok
}

func evict(order []string, max int, drop func(string)) []string {
	for len(order) > max {
		drop(order[0])
		order = order[1:]
	}
	return order
}

func remove(order []string, key string) []string {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
