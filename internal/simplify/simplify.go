package simplify

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/thoughtfan/telegram-analysis-tools/internal/export"
	"github.com/thoughtfan/telegram-analysis-tools/internal/record"
	"github.com/thoughtfan/telegram-analysis-tools/internal/report"
)

// URL handling modes.
const (
	URLPreserve = "preserve"
	URLReplace  = "replace"
	URLDomain   = "domain"
)

const urlPlaceholder = "[URL]"

var urlRe = regexp.MustCompile(`https?://\S+`)

// ValidURLMode reports whether mode is one of the supported URL modes.
func ValidURLMode(mode string) bool {
	return mode == URLPreserve || mode == URLReplace || mode == URLDomain
}

// Options controls one simplify pass.
type Options struct {
	FilterBots  bool
	Consolidate bool
	TimeWindow  int // max seconds between merged messages
	MaxLength   int // max chars for a message to take part in a merge
	URLMode     string
}

// BotFilter decides whether an export entry is machine noise: a service
// record, a message from a known bot account, or a message whose text
// matches a known bot phrase.
type BotFilter struct {
	senders map[string]bool
	phrases []string // lowercased substrings
}

func NewBotFilter(knownBots, botPhrases []string) *BotFilter {
	senders := make(map[string]bool, len(knownBots))
	for _, b := range knownBots {
		senders[b] = true
	}
	phrases := make([]string, 0, len(botPhrases))
	for _, p := range botPhrases {
		phrases = append(phrases, strings.ToLower(p))
	}
	return &BotFilter{senders: senders, phrases: phrases}
}

// Matches reports whether the entry should be excluded as bot/service noise.
func (f *BotFilter) Matches(m *export.RawMessage) bool {
	if m.IsService() {
		return true
	}
	if f.senders[m.From] || f.senders[m.FromID] {
		return true
	}
	text := strings.ToLower(export.FlattenText(m.Text))
	for _, p := range f.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// TransformURLs rewrites every http(s) token in text according to mode.
// Domain mode keeps only the bracketed host, falling back to the placeholder
// when the URL does not parse.
func TransformURLs(text, mode string) string {
	switch mode {
	case URLReplace:
		return urlRe.ReplaceAllString(text, urlPlaceholder)
	case URLDomain:
		return urlRe.ReplaceAllStringFunc(text, func(raw string) string {
			u, err := url.Parse(raw)
			if err != nil || u.Host == "" {
				return urlPlaceholder
			}
			return "[" + u.Host + "]"
		})
	default:
		return text
	}
}

// Simplifier converts a raw export document into normalized records.
type Simplifier struct {
	bots *BotFilter
	opts Options
	rep  *report.Reporter
}

func New(bots *BotFilter, opts Options, rep *report.Reporter) *Simplifier {
	if rep == nil {
		rep = report.Discard()
	}
	return &Simplifier{bots: bots, opts: opts, rep: rep}
}

// Simplify runs the full pass: bot/service exclusion, text flattening,
// empty-text exclusion, URL transform, consolidation.
func (s *Simplifier) Simplify(doc *export.Document) []record.Message {
	total := len(doc.Messages)

	entries := doc.Messages
	if s.opts.FilterBots {
		kept := make([]export.RawMessage, 0, len(entries))
		botCount := 0
		for i := range entries {
			if s.bots.Matches(&entries[i]) {
				botCount++
				continue
			}
			kept = append(kept, entries[i])
		}
		s.rep.Printf("Removed %d bot/machine messages (%.1f%% of total)",
			botCount, report.Pct(botCount, total))
		entries = kept
	}

	msgs := make([]record.Message, 0, len(entries))
	urlCount := 0
	for i := range entries {
		m := &entries[i]
		if m.IsService() {
			continue
		}
		text := export.FlattenText(m.Text)
		if text == "" {
			continue
		}
		if s.opts.URLMode != URLPreserve {
			transformed := TransformURLs(text, s.opts.URLMode)
			if transformed != text {
				urlCount++
			}
			text = transformed
		}
		msgs = append(msgs, record.Message{
			ID:       export.ScalarString(m.ID),
			Unixtime: export.ScalarString(m.DateUnixtime),
			From:     m.From,
			FromID:   m.FromID,
			Text:     text,
		})
	}

	s.rep.Printf("Extracted %d messages with text content", len(msgs))
	if s.opts.URLMode != URLPreserve && urlCount > 0 {
		s.rep.Printf("Transformed URLs in %d messages", urlCount)
	}

	if s.opts.Consolidate {
		before := len(msgs)
		msgs = Consolidate(msgs, s.opts.TimeWindow, s.opts.MaxLength)
		s.rep.Printf("Consolidation: %d -> %d messages (%.1f%% reduction)",
			before, len(msgs), report.Pct(before-len(msgs), before))
	}

	return msgs
}

// Consolidate merges bursts of sequential same-sender messages. A message
// extends the current run iff it has the same sender id, arrives within
// window seconds of the run's last message (boundary inclusive), and both it
// and the run's last message are at most maxLength chars. A merged record
// keeps the id and sender of the first message, the timestamp of the last
// (the id anchors where the burst started, the timestamp when it ended),
// and joins the texts with a blank line.
func Consolidate(msgs []record.Message, window, maxLength int) []record.Message {
	if len(msgs) == 0 {
		return msgs
	}

	out := make([]record.Message, 0, len(msgs))
	run := []record.Message{msgs[0]}

	flush := func() {
		if len(run) == 1 {
			out = append(out, run[0])
			return
		}
		texts := make([]string, len(run))
		for i, m := range run {
			texts[i] = m.Text
		}
		out = append(out, record.Message{
			ID:       run[0].ID,
			Unixtime: run[len(run)-1].Unixtime,
			From:     run[0].From,
			FromID:   run[0].FromID,
			Text:     strings.Join(texts, "\n\n"),
		})
	}

	for _, m := range msgs[1:] {
		if extendsRun(run[len(run)-1], m, window, maxLength) {
			run = append(run, m)
			continue
		}
		flush()
		run = []record.Message{m}
	}
	flush()

	return out
}

func extendsRun(last, next record.Message, window, maxLength int) bool {
	if next.FromID != last.FromID {
		return false
	}
	lastTS, ok1 := record.ParseUnixtime(last.Unixtime)
	nextTS, ok2 := record.ParseUnixtime(next.Unixtime)
	if !ok1 || !ok2 {
		return false
	}
	if nextTS-lastTS > int64(window) {
		return false
	}
	return utf8.RuneCountInString(next.Text) <= maxLength &&
		utf8.RuneCountInString(last.Text) <= maxLength
}

// Render serializes the records as the pipe-delimited file content: one
// legend line, then one line per record.
func Render(msgs []record.Message) string {
	var b strings.Builder
	b.WriteString(record.Header)
	b.WriteString("\n")
	for _, m := range msgs {
		b.WriteString(m.Line())
		b.WriteString("\n")
	}
	return b.String()
}

// Overall formats the end-of-run summary line.
func Overall(inputMsgs, outputMsgs int) string {
	return fmt.Sprintf("Processed %d input messages -> %d output messages (%.1f%% fewer)",
		inputMsgs, outputMsgs, report.Pct(inputMsgs-outputMsgs, inputMsgs))
}
