// Package formlog persists accepted form submissions.
package formlog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one logged submission.
type Entry struct {
	ID        string
	FormName  string
	CreatedAt time.Time
	Data      map[string]string
}

// Store appends and lists submissions. List returns the newest entries first;
// limit <= 0 means no limit.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, formName string, limit int) ([]Entry, error)
}

// prepare fills in the ID and timestamp when missing.
func prepare(entry Entry, now func() time.Time) Entry {
	if strings.TrimSpace(entry.ID) == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()
	return entry
}

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Append stores a copy of entry.
func (s *MemoryStore) Append(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry = prepare(entry, s.now)
	entry.Data = copyData(entry.Data)

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return nil
}

// List returns entries for formName, newest first.
func (s *MemoryStore) List(ctx context.Context, formName string, limit int) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].FormName != formName {
			continue
		}
		entry := s.entries[i]
		entry.Data = copyData(entry.Data)
		out = append(out, entry)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func copyData(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
