package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityName_JoinsTopTwo(t *testing.T) {
	got := ActivityName([]string{"交通保安施設", "設置状況"})
	assert.Equal(t, "交通保安施設_設置状況", got)
}

func TestActivityName_SingleKeyword(t *testing.T) {
	assert.Equal(t, "舗装工", ActivityName([]string{"舗装工"}))
}

func TestActivityName_EmptyIsUnclassified(t *testing.T) {
	assert.Equal(t, Unclassified, ActivityName(nil))
}

func TestClassifyActivity_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Pattern: "舗装", Label: "first"},
		{Pattern: "舗装工", Label: "second"},
	}
	label, ok := ClassifyActivity("本日は舗装工を実施", rules)
	assert.True(t, ok)
	assert.Equal(t, "first", label)
}

func TestClassifyActivity_NoMatch(t *testing.T) {
	label, ok := ClassifyActivity("昼休み", DefaultRules)
	assert.False(t, ok)
	assert.Empty(t, label)
}

func TestClassifyActivity_DefaultRules(t *testing.T) {
	label, ok := ClassifyActivity("交通保安施設 設置状況", DefaultRules)
	assert.True(t, ok)
	assert.Equal(t, "交通保安施設設置", label)
}
