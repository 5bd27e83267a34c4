package record

import (
	"regexp"
	"strings"
)

// The analyzer is asked for JSON only, but replies routinely arrive wrapped
// in prose or markdown fences, with trailing commas or // comments. These
// helpers dig the first structured payload out before decoding.
var (
	fencedObjectPattern = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(\\{.*\\})\\s*```")
	bareObjectPattern   = regexp.MustCompile(`(?s)\{[\s\S]*\}`)
	trailingComma       = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractObject returns the first JSON object found in an analyzer reply,
// cleaned of comment and trailing-comma artifacts. Empty string when the
// reply holds no object at all.
func ExtractObject(content string) string {
	var raw string
	if m := fencedObjectPattern.FindStringSubmatch(content); len(m) > 1 {
		raw = m[1]
	} else {
		raw = bareObjectPattern.FindString(content)
	}
	if raw == "" {
		return ""
	}
	return cleanJSON(raw)
}

func cleanJSON(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		lines[i] = stripLineComment(line)
	}
	out := strings.Join(lines, "\n")
	return trailingComma.ReplaceAllString(out, "$1")
}

// stripLineComment drops a // comment from a line unless the slashes sit
// inside a string value.
func stripLineComment(line string) string {
	if !strings.Contains(line, "//") {
		return line
	}
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case escaped:
			escaped = false
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/':
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}
