package classify

import "strings"

// Rule maps a keyword appearing in OCR text to an activity label. Rules are
// matched in order and the first hit wins, so the table order encodes
// priority.
type Rule struct {
	Pattern string
	Label   string
}

// DefaultRules covers the activities that show up on construction site
// blackboards. More specific patterns come before generic ones.
var DefaultRules = []Rule{
	{Pattern: "交通保安", Label: "交通保安施設設置"},
	{Pattern: "アスファルト", Label: "舗装工"},
	{Pattern: "舗装", Label: "舗装工"},
	{Pattern: "路盤", Label: "路盤工"},
	{Pattern: "転圧", Label: "路盤工"},
	{Pattern: "掘削", Label: "掘削工"},
	{Pattern: "床掘", Label: "掘削工"},
	{Pattern: "埋戻", Label: "埋戻工"},
	{Pattern: "型枠", Label: "型枠工"},
	{Pattern: "鉄筋", Label: "鉄筋工"},
	{Pattern: "コンクリート", Label: "コンクリート打設"},
	{Pattern: "打設", Label: "コンクリート打設"},
	{Pattern: "養生", Label: "養生"},
	{Pattern: "測量", Label: "測量"},
	{Pattern: "丁張", Label: "測量"},
	{Pattern: "安全訓練", Label: "安全管理"},
	{Pattern: "KY", Label: "安全管理"},
	{Pattern: "完成", Label: "完成写真"},
	{Pattern: "着手前", Label: "着手前写真"},
}

// ClassifyActivity matches text against the rule table. The boolean is false
// when no rule matched.
func ClassifyActivity(text string, rules []Rule) (string, bool) {
	for _, r := range rules {
		if strings.Contains(text, r.Pattern) {
			return r.Label, true
		}
	}
	return "", false
}
