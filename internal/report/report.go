package report

import (
	"fmt"
	"io"
)

// Reporter writes operator-facing progress messages. Transforms take one so
// tests can capture or discard output instead of scraping the console.
type Reporter struct {
	w io.Writer
}

func New(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w}
}

// Discard returns a reporter that drops everything.
func Discard() *Reporter {
	return &Reporter{w: io.Discard}
}

func (r *Reporter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Pct formats part/total as a percentage, guarding against a zero total.
func Pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
