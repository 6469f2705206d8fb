package noise

import (
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
)

// Stats is the breakdown of one filter pass.
type Stats struct {
	Input         int
	RangeExcluded int
	Removed       int
	Kept          int
	ByCategory    map[Category]int
}

// Filter applies the optional range restriction and the noise classifier to
// a sequence of serialized record lines. Lines that do not parse as records
// (legends, stray content) always pass through.
type Filter struct {
	cls *Classifier
	rng *RangeFilter
}

func NewFilter(cls *Classifier, rng *RangeFilter) *Filter {
	if rng == nil {
		rng = NewRangeFilter()
	}
	return &Filter{cls: cls, rng: rng}
}

// Run returns the surviving lines in original order, plus the breakdown.
func (f *Filter) Run(lines []string) ([]string, Stats) {
	stats := Stats{
		Input:      len(lines),
		ByCategory: make(map[Category]int),
	}

	if f.rng.Active() {
		kept := lines[:0:0]
		for _, line := range lines {
			m, ok := record.Parse(line)
			if ok && f.rng.Excludes(m.ID, m.Unixtime) {
				stats.RangeExcluded++
				continue
			}
			kept = append(kept, line)
		}
		lines = kept
	}

	var out []string
	for _, line := range lines {
		m, ok := record.Parse(line)
		if !ok {
			out = append(out, line)
			continue
		}
		cat := f.cls.Classify(m.Text)
		if cat == None {
			out = append(out, line)
			continue
		}
		stats.ByCategory[cat]++
		stats.Removed++
	}

	stats.Kept = len(out)
	return out, stats
}

// Report prints the pass breakdown through the reporter.
func (s Stats) Report(rep *report.Reporter) {
	afterRange := s.Input - s.RangeExcluded
	if s.RangeExcluded > 0 {
		rep.Printf("Excluded %d messages before the range start", s.RangeExcluded)
	}
	rep.Printf("Noise filtering statistics:")
	rep.Printf("- Total noise messages removed: %d (%.1f%% of input)",
		s.Removed, report.Pct(s.Removed, afterRange))
	rep.Printf("  - Low-value phrases: %d", s.ByCategory[LowValue])
	rep.Printf("  - Off-topic/moderation: %d", s.ByCategory[OffTopic])
	rep.Printf("  - Emoji-only: %d", s.ByCategory[EmojiOnly])
	rep.Printf("  - URL-only: %d", s.ByCategory[URLOnly])
	rep.Printf("  - Empty: %d", s.ByCategory[Empty])
	rep.Printf("- Messages kept: %d", s.Kept)
}
