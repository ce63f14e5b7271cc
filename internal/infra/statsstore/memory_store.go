package statsstore

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/cafebui-chatbot/internal/domain/chat"
)

// MemoryStore keeps outcome counters in process memory. Counts reset on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	counters map[string]int64
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]int64)}
}

// Record implements chat.StatsRecorder.
func (s *MemoryStore) Record(_ context.Context, outcome string) error {
	if outcome == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[outcome]++
	return nil
}

// Top returns outcomes ordered by count, then name. limit <= 0 returns all.
func (s *MemoryStore) Top(_ context.Context, limit int) ([]chat.OutcomeCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.counters)
	}
	items := make([]chat.OutcomeCount, 0, len(s.counters))
	for outcome, count := range s.counters {
		items = append(items, chat.OutcomeCount{Outcome: outcome, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Outcome < items[j].Outcome
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

var _ chat.StatsRecorder = (*MemoryStore)(nil)
