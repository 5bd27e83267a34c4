package classify

// Unclassified is the sentinel activity for photos where no textual evidence
// and no continuity is available.
const Unclassified = "未分類"

const nameSeparator = "_"

// ActivityName builds an activity label from extracted keywords, joining the
// top two. An empty keyword list yields the unclassified sentinel.
func ActivityName(keywords []string) string {
	switch len(keywords) {
	case 0:
		return Unclassified
	case 1:
		return keywords[0]
	default:
		return keywords[0] + nameSeparator + keywords[1]
	}
}
