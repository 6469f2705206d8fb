package noise

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/thoughtfan/telegram-analysis-tools/internal/config"
)

// Category is the noise class a text falls into. None means the text is kept.
type Category string

const (
	None      Category = ""
	Empty     Category = "empty"
	LowValue  Category = "low_value"
	OffTopic  Category = "off_topic"
	EmojiOnly Category = "emoji_only"
	URLOnly   Category = "url_only"
)

// Categories in reporting order.
var Categories = []Category{LowValue, OffTopic, EmojiOnly, URLOnly, Empty}

// Classifier maps a message text to at most one noise category under a fixed
// priority order. All pattern data comes from configuration so the decision
// rules can be tested and retuned without touching code.
type Classifier struct {
	tokens     map[string]bool
	lowValueRe []*regexp.Regexp
	offTopicRe []*regexp.Regexp
	emojiRe    *regexp.Regexp
	urlOnlyRe  *regexp.Regexp
	minLength  int
}

// NewClassifier compiles the configured pattern lists. minLength 0 disables
// the length rule and its bypass.
func NewClassifier(cfg *config.Config, minLength int) (*Classifier, error) {
	c := &Classifier{
		tokens:    make(map[string]bool, len(cfg.LowValueTokens)),
		minLength: minLength,
	}
	for _, t := range cfg.LowValueTokens {
		c.tokens[strings.ToLower(t)] = true
	}

	for _, p := range cfg.LowValuePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("low-value pattern %q: %w", p, err)
		}
		c.lowValueRe = append(c.lowValueRe, re)
	}
	for _, p := range cfg.OffTopicPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("off-topic pattern %q: %w", p, err)
		}
		c.offTopicRe = append(c.offTopicRe, re)
	}

	emojiRe, err := compileEmojiPattern(cfg.EmojiRanges)
	if err != nil {
		return nil, err
	}
	c.emojiRe = emojiRe
	c.urlOnlyRe = regexp.MustCompile(`^\s*\[[\w.]+\]\s*$`)

	return c, nil
}

// compileEmojiPattern builds the emoji-only matcher from configured
// codepoint ranges ("1F300-1F6FF"): any amount of non-word/space padding
// around at least one character from the ranges.
func compileEmojiPattern(ranges []string) (*regexp.Regexp, error) {
	var class strings.Builder
	for _, r := range ranges {
		lo, hi, ok := strings.Cut(r, "-")
		if !ok {
			return nil, fmt.Errorf("emoji range %q: want LO-HI", r)
		}
		if _, err := strconv.ParseUint(lo, 16, 32); err != nil {
			return nil, fmt.Errorf("emoji range %q: %w", r, err)
		}
		if _, err := strconv.ParseUint(hi, 16, 32); err != nil {
			return nil, fmt.Errorf("emoji range %q: %w", r, err)
		}
		fmt.Fprintf(&class, `\x{%s}-\x{%s}`, lo, hi)
	}
	return regexp.Compile(`^[\W\s]*[` + class.String() + `]+[\W\s]*$`)
}

// Classify returns the noise category for a text, or None to keep it.
// The decision is total and deterministic: bypass first (a text longer than
// the threshold that is not itself a multi-message merge skips all checks),
// then the categories in fixed priority order.
func (c *Classifier) Classify(text string) Category {
	trimmed := strings.TrimSpace(text)
	// A double newline only ever appears as the separator inside a merged
	// burst, so its absence marks a single message.
	consolidated := strings.Contains(text, "\n\n")

	if c.minLength > 0 && utf8.RuneCountInString(trimmed) > c.minLength && !consolidated {
		return None
	}

	norm := strings.ToLower(trimmed)
	if norm == "" {
		return Empty
	}
	if c.tokens[norm] {
		return LowValue
	}
	for _, re := range c.lowValueRe {
		if re.MatchString(norm) {
			return LowValue
		}
	}
	for _, re := range c.offTopicRe {
		if re.MatchString(norm) {
			return OffTopic
		}
	}
	if c.emojiRe.MatchString(norm) {
		return EmojiOnly
	}
	if c.urlOnlyRe.MatchString(norm) {
		return URLOnly
	}
	if c.minLength > 0 && !consolidated {
		return LowValue // short single message under the threshold
	}
	return None
}

// RangeFilter drops records earlier than a starting id and/or date. Records
// whose id or timestamp field is absent or non-numeric are never dropped.
type RangeFilter struct {
	startID int64
	hasID   bool
	startTS int64
	hasTS   bool
}

func NewRangeFilter() *RangeFilter { return &RangeFilter{} }

func (f *RangeFilter) SetStartID(id int64) { f.startID, f.hasID = id, true }

func (f *RangeFilter) SetStartUnixtime(ts int64) { f.startTS, f.hasTS = ts, true }

// Active reports whether any restriction is set.
func (f *RangeFilter) Active() bool { return f.hasID || f.hasTS }

// Excludes reports whether a record with the given id and timestamp fields
// falls before the configured range start.
func (f *RangeFilter) Excludes(id, unixtime string) bool {
	if f.hasID {
		if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil && n < f.startID {
			return true
		}
	}
	if f.hasTS {
		if n, err := strconv.ParseInt(strings.TrimSpace(unixtime), 10, 64); err == nil && n < f.startTS {
			return true
		}
	}
	return false
}

// ResolveStartDate turns a --start-date value into an epoch threshold. It
// accepts a raw epoch integer or a calendar date (YYYY-MM-DD, local time).
func ResolveStartDate(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: want YYYY-MM-DD or unixtime", s)
	}
	return t.Unix(), nil
}
