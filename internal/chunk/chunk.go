package chunk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
)

// ErrNoContent is returned when the input has no lines left after removing
// the legend.
var ErrNoContent = errors.New("no content to split")

// Chunk describes one emitted file and the time span its lines cover.
type Chunk struct {
	File      string
	Lines     int
	Chars     int
	StartUnix string // raw timestamp field of the first line, "" if unknown
	EndUnix   string // raw timestamp field of the last line, "" if unknown
}

// StartDate and EndDate render the span bounds, "Unknown" when the field did
// not parse.
func (c Chunk) StartDate() string { return record.HumanDate(c.StartUnix) }
func (c Chunk) EndDate() string   { return record.HumanDate(c.EndUnix) }

// Splitter packs whole lines into files under a character budget.
type Splitter struct {
	Prefix   string
	MaxChars int
	rep      *report.Reporter
}

func NewSplitter(prefix string, maxChars int, rep *report.Reporter) *Splitter {
	if rep == nil {
		rep = report.Discard()
	}
	return &Splitter{Prefix: prefix, MaxChars: maxChars, rep: rep}
}

// Split greedily packs lines into numbered chunk files. A chunk closes when
// the next line would push it past the budget; a single line larger than the
// budget still becomes its own chunk since lines are never split. The legend
// goes into the first chunk only.
func (s *Splitter) Split(header string, lines []string) ([]Chunk, error) {
	if len(lines) == 0 {
		return nil, ErrNoContent
	}

	var chunks []Chunk
	var buf []string
	chars := 0

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		n := len(chunks) + 1
		file := fmt.Sprintf("%s%03d.txt", s.Prefix, n)

		content := strings.Join(buf, "\n") + "\n"
		if n == 1 && header != "" {
			content = header + "\n" + content
		}
		if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write chunk %s: %w", file, err)
		}

		c := Chunk{
			File:      file,
			Lines:     len(buf),
			Chars:     chars,
			StartUnix: timestampField(buf[0]),
			EndUnix:   timestampField(buf[len(buf)-1]),
		}
		chunks = append(chunks, c)

		s.rep.Printf("Created %s (%d chars, %d lines)", c.File, c.Chars, c.Lines)
		s.rep.Printf("  - Time range: %s to %s", c.StartDate(), c.EndDate())

		buf = nil
		chars = 0
		return nil
	}

	for _, line := range lines {
		cost := utf8.RuneCountInString(line) + 1
		if len(buf) > 0 && chars+cost > s.MaxChars {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		buf = append(buf, line)
		chars += cost
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return chunks, nil
}

// timestampField extracts the raw timestamp field of a line, "" when the
// field is missing or not numeric. Only the first two fields need to be
// present, so a truncated record still contributes its span.
func timestampField(line string) string {
	parts := strings.SplitN(line, "|", 3)
	if len(parts) < 2 {
		return ""
	}
	ts := strings.TrimSpace(parts[1])
	if _, ok := record.ParseUnixtime(ts); !ok {
		return ""
	}
	return ts
}

// WriteManifest writes the per-chunk summary CSV: filename plus the span in
// human-readable and raw form.
func WriteManifest(path string, chunks []Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Chunk", "Start Date", "End Date", "Start Unixtime", "End Unixtime"}); err != nil {
		return err
	}
	for _, c := range chunks {
		row := []string{c.File, c.StartDate(), c.EndDate(), c.StartUnix, c.EndUnix}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
