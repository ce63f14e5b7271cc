package statsstore

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/cafebui-chatbot/internal/domain/chat"
)

// ValkeyStore keeps outcome counters in a Valkey sorted set so they survive
// restarts and are shared between replicas.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "chat"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Record implements chat.StatsRecorder.
func (s *ValkeyStore) Record(ctx context.Context, outcome string) error {
	if outcome == "" {
		return nil
	}
	cmd := s.client.B().Zincrby().Key(s.outcomesKey()).Increment(1).Member(outcome).Build()
	return s.client.Do(ctx, cmd).Error()
}

// Top returns outcomes ordered by count. limit <= 0 returns all.
func (s *ValkeyStore) Top(ctx context.Context, limit int) ([]chat.OutcomeCount, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	cmd := s.client.B().Zrevrange().Key(s.outcomesKey()).Start(0).Stop(stop).Withscores().Build()
	arr, err := s.client.Do(ctx, cmd).ToArray()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return []chat.OutcomeCount{}, nil
		}
		return nil, err
	}
	return decodeScores(arr)
}

// Close releases the underlying client.
func (s *ValkeyStore) Close() {
	s.client.Close()
}

func (s *ValkeyStore) outcomesKey() string {
	return fmt.Sprintf("%s:outcomes", s.prefix)
}

// decodeScores accepts both reply shapes of ZREVRANGE WITHSCORES: RESP3 nests
// [member, score] pairs, RESP2 returns a flat alternating array.
func decodeScores(arr []valkey.ValkeyMessage) ([]chat.OutcomeCount, error) {
	out := make([]chat.OutcomeCount, 0, len(arr))
	for i := 0; i < len(arr); {
		var (
			member string
			score  float64
			err    error
		)
		if tuple, tupleErr := arr[i].ToArray(); tupleErr == nil && len(tuple) == 2 {
			if member, err = tuple[0].ToString(); err != nil {
				return nil, err
			}
			if score, err = tuple[1].AsFloat64(); err != nil {
				return nil, err
			}
			i++
		} else {
			if i+1 >= len(arr) {
				return nil, fmt.Errorf("zrevrange reply: member %d has no score", i)
			}
			if member, err = arr[i].ToString(); err != nil {
				return nil, err
			}
			if score, err = arr[i+1].AsFloat64(); err != nil {
				return nil, err
			}
			i += 2
		}
		out = append(out, chat.OutcomeCount{Outcome: member, Count: int64(score)})
	}
	return out, nil
}

var _ chat.StatsRecorder = (*ValkeyStore)(nil)
