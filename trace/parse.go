package trace

import (
	"bufio"
	"io"
	"strings"

	errs "github.com/howsoai/amalgam-go/errors"
)

const (
	resultMarker = "# RESULT >"
	noteMarker   = "# NOTE >"
	timeMarker   = "# TIME "
)

// Execute payloads can run to megabytes on one line.
const maxLineBytes = 16 * 1024 * 1024

// Kind classifies one transcript line.
type Kind int

const (
	// KindCommand is a replayable command line, EXIT included.
	KindCommand Kind = iota
	// KindResult is a raw engine result marker.
	KindResult
	// KindNote is a free-form comment marker.
	KindNote
	// KindTime is a labelled timestamp marker.
	KindTime
)

// Entry is one parsed transcript line.
type Entry struct {
	Kind Kind

	// Label is the command verb for commands and the annotation for
	// timestamps.
	Label string

	// Text is the full command line, the result value, the note body, or
	// the timestamp.
	Text string
}

// ParseLine classifies one transcript line. The second return is false for
// blank lines.
func ParseLine(line string) (Entry, bool) {
	switch {
	case strings.HasPrefix(line, resultMarker):
		return Entry{Kind: KindResult, Text: line[len(resultMarker):]}, true
	case strings.HasPrefix(line, noteMarker):
		return Entry{Kind: KindNote, Text: line[len(noteMarker):]}, true
	case strings.HasPrefix(line, timeMarker):
		return parseTime(line[len(timeMarker):]), true
	case strings.TrimSpace(line) == "":
		return Entry{}, false
	case strings.HasPrefix(line, "#"):
		return Entry{Kind: KindNote, Text: strings.TrimLeft(line, "# ")}, true
	default:
		verb, _, _ := strings.Cut(line, " ")
		return Entry{Kind: KindCommand, Label: verb, Text: line}, true
	}
}

// parseTime splits "<label> <date> <time>" where the label itself may
// contain spaces: the timestamp is always the trailing two fields.
func parseTime(rest string) Entry {
	if i := strings.LastIndex(rest, " "); i >= 0 {
		if j := strings.LastIndex(rest[:i], " "); j >= 0 {
			return Entry{Kind: KindTime, Label: rest[:j], Text: rest[j+1:]}
		}
	}
	return Entry{Kind: KindTime, Label: rest}
}

// Entries parses a transcript into its classified lines, blank lines
// dropped.
func Entries(r io.Reader) ([]Entry, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []Entry
	for sc.Scan() {
		if e, ok := ParseLine(sc.Text()); ok {
			out = append(out, e)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errs.TraceIO("", err)
	}
	return out, nil
}

// Commands filters a transcript down to its replayable command lines, in
// order, dropping every marker line.
func Commands(r io.Reader) ([]string, error) {
	entries, err := Entries(r)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Kind == KindCommand {
			out = append(out, e.Text)
		}
	}
	return out, nil
}
