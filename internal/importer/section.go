package importer

import (
	"regexp"
	"strings"
)

// whitespaceRun also covers non-breaking spaces, which PDF text extraction
// emits between columns.
var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// Collapse replaces every whitespace run with a single space and trims.
func Collapse(text string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// SectionBetween returns the collapsed text from the first match of start up
// to the first later match of end. When start never matches the whole
// collapsed text is returned; when end never matches the section runs to the
// end of the text.
func SectionBetween(text string, start, end *regexp.Regexp) string {
	section, _ := LocateSection(text, start, end)
	return section
}

// LocateSection is SectionBetween that also reports whether start matched.
func LocateSection(text string, start, end *regexp.Regexp) (string, bool) {
	t := Collapse(text)
	loc := start.FindStringIndex(t)
	if loc == nil {
		return t, false
	}
	after := t[loc[0]:]
	if e := end.FindStringIndex(after); e != nil {
		return after[:e[0]], true
	}
	return after, true
}
