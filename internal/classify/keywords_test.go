package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKeywords_RanksByFrequency(t *testing.T) {
	got := TopKeywords("交通保安施設 設置状況 交通保安施設", 2)
	assert.Equal(t, []string{"交通保安施設", "設置状況"}, got)
}

func TestTopKeywords_TiesKeepFirstOccurrenceOrder(t *testing.T) {
	got := TopKeywords("b a c a b c", 3)
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestTopKeywords_SplitsOnPunctuation(t *testing.T) {
	got := TopKeywords("舗装工、舗装工。転圧", 2)
	assert.Equal(t, []string{"舗装工", "転圧"}, got)
}

func TestTopKeywords_FewerDistinctTokensThanK(t *testing.T) {
	got := TopKeywords("測量 測量", 5)
	assert.Equal(t, []string{"測量"}, got)
}

func TestTopKeywords_EmptyInput(t *testing.T) {
	assert.Empty(t, TopKeywords("", 3))
	assert.Empty(t, TopKeywords("   \t\n", 3))
}
