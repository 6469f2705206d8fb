package record

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Header is the legend line at the top of a pipe-delimited record file.
const Header = "# Format: id|date_unixtime|from|from_id|text"

// headerPrefix marks a legend line regardless of the exact field list.
const headerPrefix = "# Format:"

// Message is the one record shape shared by every pipeline stage. All fields
// are opaque strings; numeric interpretation happens only where a stage
// needs it (range restriction, chunk time spans).
type Message struct {
	ID       string
	Unixtime string
	From     string
	FromID   string
	Text     string
}

// Line serializes the message as a single pipe-delimited line. Literal pipes
// in the text are escaped and newlines become spaces so the record always
// occupies exactly one line.
func (m Message) Line() string {
	text := strings.ReplaceAll(m.Text, "|", `\|`)
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", " ")
	return fmt.Sprintf("%s|%s|%s|%s|%s", m.ID, m.Unixtime, m.From, m.FromID, text)
}

// Parse splits a serialized line back into a message. ok is false when the
// line does not have the five-field shape (header lines, stray content);
// such lines pass through stages untouched.
func Parse(line string) (Message, bool) {
	parts := strings.SplitN(line, "|", 5)
	if len(parts) < 5 {
		return Message{}, false
	}
	return Message{
		ID:       parts[0],
		Unixtime: parts[1],
		From:     parts[2],
		FromID:   parts[3],
		Text:     strings.ReplaceAll(parts[4], `\|`, "|"),
	}, true
}

// IsHeader reports whether the line is a format legend.
func IsHeader(line string) bool {
	return strings.HasPrefix(line, headerPrefix)
}

// ParseUnixtime parses a serialized timestamp field. ok is false when the
// field is absent or not numeric.
func ParseUnixtime(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// HumanDate renders a unixtime field as a local calendar timestamp, or
// "Unknown" when the field does not parse.
func HumanDate(unixtime string) string {
	n, ok := ParseUnixtime(unixtime)
	if !ok {
		return "Unknown"
	}
	return time.Unix(n, 0).Format("2006-01-02 15:04:05")
}

// ReadLines loads a record file, detaching the optional legend line. The
// returned lines have no trailing newline artifacts.
func ReadLines(path string) (header string, lines []string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines = strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > 0 && IsHeader(lines[0]) {
		header = lines[0]
		lines = lines[1:]
	}
	return header, lines, nil
}
