// Package view renders corpus items and progress as terminal text.
package view

import (
	"regexp"
	"strings"
)

var (
	lineSplit   = regexp.MustCompile(`\n+`)
	bulletMark  = regexp.MustCompile(`^[-*]\s+`)
	emptyNotice = "暂无内容。"
)

// Content is knowledge text split for display: either a bullet list or
// plain lines.
type Content struct {
	Bullets bool
	Lines   []string
}

// ParseContent splits raw into trimmed non-empty lines. When at least half
// of the lines are bullets ("- " or "* "), only the bullet lines are kept,
// without their markers.
func ParseContent(raw string) Content {
	var lines []string
	for _, l := range lineSplit.Split(raw, -1) {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return Content{}
	}

	var bullets []string
	for _, l := range lines {
		if bulletMark.MatchString(l) {
			bullets = append(bullets, strings.TrimSpace(bulletMark.ReplaceAllString(l, "")))
		}
	}
	if len(bullets) >= (len(lines)+1)/2 {
		return Content{Bullets: true, Lines: bullets}
	}
	return Content{Lines: lines}
}

// String renders the content, one line per entry.
func (c Content) String() string {
	if len(c.Lines) == 0 {
		return emptyNotice
	}
	if !c.Bullets {
		return strings.Join(c.Lines, "\n")
	}
	var b strings.Builder
	for i, l := range c.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("• ")
		b.WriteString(l)
	}
	return b.String()
}
