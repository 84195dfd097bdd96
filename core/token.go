package core

import "strings"

// CommentMarker starts a comment that runs to the end of the line.
const CommentMarker = "#"

// Line is the token list of one source line.
type Line struct {
	Number int
	Text   string
	Tokens []string
}

// Tokenize cuts a line at the first comment marker, drops commas and
// splits the rest on whitespace.
func Tokenize(line string) []string {
	if idx := strings.Index(line, CommentMarker); idx >= 0 {
		line = line[:idx]
	}
	line = strings.ReplaceAll(line, ",", "")
	return strings.Fields(line)
}

// SplitLines splits source text into lines, tolerating CRLF endings.
// An empty source is a single empty line.
func SplitLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// TokenizeSource tokenizes every line of src, keeping empty lines so
// callers can map back to line numbers.
func TokenizeSource(src string) []Line {
	raw := SplitLines(src)
	lines := make([]Line, len(raw))
	for i, text := range raw {
		lines[i] = Line{
			Number: i + 1,
			Text:   text,
			Tokens: Tokenize(text),
		}
	}
	return lines
}

func (l Line) String() string {
	return strings.Join(l.Tokens, " ")
}
