package chat

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
)

func TestMatcherKeywordScenarios(t *testing.T) {
	matcher := NewMatcher(newTestBase(t), &sequenceRand{values: []int{0}})

	cases := []struct {
		name     string
		question string
		answer   string
		keyword  string
	}{
		{name: "opening hours", question: "Quán mấy giờ mở cửa?", answer: hoursAnswer, keyword: "giờ"},
		{name: "wifi", question: "wifi password là gì", answer: wifiAnswer, keyword: "wifi"},
		{name: "case insensitive", question: "Cho xem MENU với", answer: menuAnswer, keyword: "menu"},
		{name: "uppercase vietnamese", question: "MẤY GIỜ ĐÓNG?", answer: hoursAnswer, keyword: "giờ"},
		{name: "second keyword only", question: "quán có mở cửa không", answer: openAnswer, keyword: "mở cửa"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := matcher.MatchDetail(tc.question)
			require.Equal(t, tc.answer, got.Answer)
			require.Equal(t, tc.keyword, got.Keyword)
			require.True(t, got.Matched())
			require.Equal(t, tc.answer, matcher.Match(tc.question))
		})
	}
}

func TestMatcherFirstDeclaredKeywordWins(t *testing.T) {
	matcher := NewMatcher(newTestBase(t), nil)

	// "menu" appears first in the question but "wifi" is declared first.
	got := matcher.MatchDetail("menu và wifi")
	require.Equal(t, "wifi", got.Keyword)
	require.Equal(t, wifiAnswer, got.Answer)
}

func TestMatcherDefaultsWhenNothingMatches(t *testing.T) {
	rng := &sequenceRand{values: []int{2, 0, 1}}
	matcher := NewMatcher(newTestBase(t), rng)

	require.Equal(t, "default three", matcher.Match("asdkjaslkdj"))
	require.Equal(t, "default one", matcher.Match(""))
	require.Equal(t, "default two", matcher.Match("   "))

	got := matcher.MatchDetail("xyz")
	require.False(t, got.Matched())
	require.Empty(t, got.Keyword)
}

func TestMatcherDefaultIsAlwaysFromDeclaredSet(t *testing.T) {
	// Uses the process wide generator, so only membership can be asserted.
	matcher := NewMatcher(newTestBase(t), nil)
	for i := 0; i < 200; i++ {
		require.Contains(t, testDefaults, matcher.Match("asdkjaslkdj"))
	}
	require.Equal(t, testDefaults, matcher.Defaults())
}

func TestMatcherSingleDefaultIsFixed(t *testing.T) {
	base, err := knowledge.NewBase(knowledge.Document{
		Entries:  []knowledge.Entry{{Keyword: "wifi", Answer: wifiAnswer}},
		Prompt:   "p",
		Defaults: []string{"only reply"},
	})
	require.NoError(t, err)

	matcher := NewMatcher(base, nil)
	require.Equal(t, "only reply", matcher.Match("\x00\xff"))
	require.Equal(t, "only reply", matcher.Match("hello"))
}
