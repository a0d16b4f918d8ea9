package services

import (
	"context"
	"log"
	"sync"
	"time"

	"sticker_factory_go/models"

	"github.com/google/uuid"
)

// StickerSession is the working state of one browser: the current record set
// and layout. Both are replaced wholesale, never edited.
type StickerSession struct {
	ID         string
	FileName   string
	Records    []models.StickerRecord
	Layout     models.StickerLayout
	Generation uint64
	UpdatedAt  time.Time
}

// SessionStore keeps sticker sessions in memory only. Entries idle for longer
// than the TTL are dropped by the cleanup loop.
type SessionStore struct {
	mu            sync.Mutex
	sessions      map[string]*StickerSession
	ttl           time.Duration
	defaultLayout models.StickerLayout
	now           func() time.Time
}

// Sessions is the global session store
var Sessions *SessionStore

// NewSessionStore creates an empty store
func NewSessionStore(ttl time.Duration, defaultLayout models.StickerLayout) *SessionStore {
	return &SessionStore{
		sessions:      make(map[string]*StickerSession),
		ttl:           ttl,
		defaultLayout: defaultLayout,
		now:           time.Now,
	}
}

// NewSessionID returns a fresh random session id
func NewSessionID() string {
	return uuid.New().String()
}

// getOrCreate must be called with mu held
func (s *SessionStore) getOrCreate(id string) *StickerSession {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &StickerSession{ID: id, Layout: s.defaultLayout, UpdatedAt: s.now()}
		s.sessions[id] = sess
	}
	return sess
}

// Get returns a copy of the session. An unknown id yields an empty session
// with the default layout; it is only stored once something is written to it.
func (s *SessionStore) Get(id string) StickerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return StickerSession{ID: id, Layout: s.defaultLayout}
	}
	return sess.snapshot()
}

func (sess *StickerSession) snapshot() StickerSession {
	cp := *sess
	cp.Records = append([]models.StickerRecord(nil), sess.Records...)
	return cp
}

// BeginExtraction starts a new upload for the session and returns its
// generation. Any extraction begun earlier becomes stale.
func (s *SessionStore) BeginExtraction(id string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreate(id)
	sess.Generation++
	sess.UpdatedAt = s.now()
	return sess.Generation
}

// CommitExtraction replaces the record set if generation is still current
func (s *SessionStore) CommitExtraction(id string, generation uint64, fileName string, records []models.StickerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.Generation != generation {
		return ErrStaleExtraction
	}

	sess.FileName = fileName
	sess.Records = append([]models.StickerRecord(nil), records...)
	sess.UpdatedAt = s.now()
	return nil
}

// FailExtraction clears the record set after a rejected upload, unless a
// newer upload has started in the meantime
func (s *SessionStore) FailExtraction(id string, generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Generation != generation {
		return
	}
	sess.FileName = ""
	sess.Records = nil
	sess.UpdatedAt = s.now()
}

// SetLayout replaces the session layout. The layout must already be valid.
func (s *SessionStore) SetLayout(id string, layout models.StickerLayout) StickerSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreate(id)
	sess.Layout = layout
	sess.UpdatedAt = s.now()
	return sess.snapshot()
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Cleanup removes sessions idle for longer than the TTL and returns how many
// were removed
func (s *SessionStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done
func (s *SessionStore) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Cleanup(); n > 0 {
					log.Printf("[INFO] Removed %d expired sticker sessions", n)
				}
			}
		}
	}()
}
