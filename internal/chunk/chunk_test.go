package chunk

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
)

func recordLine(id, ts, text string) string {
	return record.Message{ID: id, Unixtime: ts, From: "a", FromID: "u1", Text: text}.Line()
}

func readChunk(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return lines
}

func TestSplitRoundTrip(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "chunk_")

	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, recordLine(fmt.Sprintf("%d", i+1), fmt.Sprintf("%d", 1000+i*60), strings.Repeat("x", 30)))
	}

	const budget = 200
	sp := NewSplitter(prefix, budget, report.Discard())
	chunks, err := sp.Split(record.Header, lines)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Concatenating every chunk's lines (minus the legend in the first)
	// must reproduce the input exactly, and no multi-line chunk may exceed
	// the budget.
	var rebuilt []string
	for i, c := range chunks {
		got := readChunk(t, c.File)
		if i == 0 {
			if !record.IsHeader(got[0]) {
				t.Fatalf("first chunk missing legend")
			}
			got = got[1:]
		} else if record.IsHeader(got[0]) {
			t.Errorf("chunk %d repeats the legend", i+1)
		}
		rebuilt = append(rebuilt, got...)

		if len(got) > 1 && c.Chars > budget {
			t.Errorf("chunk %s: %d chars exceeds budget %d", c.File, c.Chars, budget)
		}
	}

	if strings.Join(rebuilt, "\n") != strings.Join(lines, "\n") {
		t.Error("round trip does not reproduce the input")
	}
}

func TestSplitOversizedLineStandsAlone(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "c_")

	big := recordLine("2", "2000", strings.Repeat("y", 500))
	lines := []string{
		recordLine("1", "1000", "small"),
		big,
		recordLine("3", "3000", "small again"),
	}

	sp := NewSplitter(prefix, 100, report.Discard())
	chunks, err := sp.Split("", lines)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}

	middle := readChunk(t, chunks[1].File)
	if len(middle) != 1 || middle[0] != big {
		t.Errorf("oversized line not emitted alone: %v", middle)
	}
	if chunks[1].Chars != utf8.RuneCountInString(big)+1 {
		t.Errorf("oversized chunk chars = %d", chunks[1].Chars)
	}
}

func TestSplitTimeSpans(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "c_")

	lines := []string{
		recordLine("1", "1000", "a"),
		recordLine("2", "2000", "b"),
		recordLine("3", "3000", "c"),
	}

	sp := NewSplitter(prefix, 100000, report.Discard())
	chunks, err := sp.Split("", lines)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	c := chunks[0]
	if c.StartUnix != "1000" || c.EndUnix != "3000" {
		t.Errorf("span = %s..%s, want 1000..3000", c.StartUnix, c.EndUnix)
	}
	if c.StartDate() == "Unknown" || c.EndDate() == "Unknown" {
		t.Error("parseable timestamps reported as Unknown")
	}
}

func TestSplitTruncatedLineSpans(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "c_")

	// Lines with only id and timestamp fields still contribute their span.
	lines := []string{"1|1000|a", "2|2000"}
	sp := NewSplitter(prefix, 100000, report.Discard())
	chunks, err := sp.Split("", lines)
	if err != nil {
		t.Fatal(err)
	}
	c := chunks[0]
	if c.StartUnix != "1000" || c.EndUnix != "2000" {
		t.Errorf("span = %q..%q, want 1000..2000", c.StartUnix, c.EndUnix)
	}
}

func TestSplitUnknownTimestamps(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "c_")

	lines := []string{"garbage first line", recordLine("2", "oops", "text")}
	sp := NewSplitter(prefix, 100000, report.Discard())
	chunks, err := sp.Split("", lines)
	if err != nil {
		t.Fatal(err)
	}
	c := chunks[0]
	if c.StartUnix != "" || c.EndUnix != "" {
		t.Errorf("unparseable spans should be empty, got %q..%q", c.StartUnix, c.EndUnix)
	}
	if c.StartDate() != "Unknown" || c.EndDate() != "Unknown" {
		t.Errorf("dates = %s..%s, want Unknown", c.StartDate(), c.EndDate())
	}
}

func TestSplitEmptyInput(t *testing.T) {
	sp := NewSplitter(filepath.Join(t.TempDir(), "c_"), 100, report.Discard())
	if _, err := sp.Split(record.Header, nil); !errors.Is(err, ErrNoContent) {
		t.Errorf("err = %v, want ErrNoContent", err)
	}
}

func TestSplitSequentialNaming(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "part_")

	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, recordLine(fmt.Sprintf("%d", i), "1000", strings.Repeat("z", 50)))
	}
	sp := NewSplitter(prefix, 120, report.Discard())
	chunks, err := sp.Split("", lines)
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range chunks {
		want := fmt.Sprintf("%s%03d.txt", prefix, i+1)
		if c.File != want {
			t.Errorf("chunk %d file = %s, want %s", i, c.File, want)
		}
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.csv")

	chunks := []Chunk{
		{File: "chunk_001.txt", StartUnix: "1000", EndUnix: "2000"},
		{File: "chunk_002.txt", StartUnix: "", EndUnix: ""},
	}
	if err := WriteManifest(path, chunks); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	wantHeader := []string{"Chunk", "Start Date", "End Date", "Start Unixtime", "End Unixtime"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "chunk_001.txt" || rows[1][3] != "1000" || rows[1][4] != "2000" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "Unknown" || rows[2][3] != "" {
		t.Errorf("row 2 = %v", rows[2])
	}
}
