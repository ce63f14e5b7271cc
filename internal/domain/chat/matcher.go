package chat

import (
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
)

// RandSource picks the default reply; *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Match is the result of keyword matching.
type Match struct {
	Answer  string
	Keyword string
}

// Matched reports whether a keyword (rather than a default reply) answered.
func (m Match) Matched() bool {
	return m.Keyword != ""
}

// Matcher answers questions from the knowledge table alone.
type Matcher struct {
	entries  []knowledge.Entry
	defaults []string

	mu  sync.Mutex
	rng RandSource
}

// NewMatcher snapshots the knowledge table. A nil rng uses the process wide
// generator, which makes the default reply non-deterministic.
func NewMatcher(kb *knowledge.Base, rng RandSource) *Matcher {
	if rng == nil {
		rng = globalRand{}
	}
	return &Matcher{
		entries:  kb.Entries(),
		defaults: kb.Defaults(),
		rng:      rng,
	}
}

// Match returns the answer for question.
func (m *Matcher) Match(question string) string {
	return m.MatchDetail(question).Answer
}

// MatchDetail lowercases question and returns the answer of the first entry,
// in declared order, whose keyword is a substring of it. Without a hit one of
// the default replies is picked uniformly at random.
func (m *Matcher) MatchDetail(question string) Match {
	lowered := strings.ToLower(question)
	for _, entry := range m.entries {
		if strings.Contains(lowered, entry.Keyword) {
			return Match{Answer: entry.Answer, Keyword: entry.Keyword}
		}
	}
	return Match{Answer: m.pickDefault()}
}

// Defaults exposes the default reply set.
func (m *Matcher) Defaults() []string {
	out := make([]string, len(m.defaults))
	copy(out, m.defaults)
	return out
}

func (m *Matcher) pickDefault() string {
	if len(m.defaults) == 1 {
		return m.defaults[0]
	}
	m.mu.Lock()
	i := m.rng.IntN(len(m.defaults))
	m.mu.Unlock()
	return m.defaults[i]
}
