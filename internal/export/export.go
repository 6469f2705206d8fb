package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Document is the top level of a Telegram group-chat JSON export.
type Document struct {
	Name     string       `json:"name"`
	Messages []RawMessage `json:"messages"`
}

// RawMessage is one entry of the export's messages array. Field types vary
// between export versions (numeric vs string ids, plain vs rich text), so the
// volatile ones stay raw until normalized.
type RawMessage struct {
	Type         string          `json:"type"`
	ID           json.RawMessage `json:"id"`
	DateUnixtime json.RawMessage `json:"date_unixtime"`
	From         string          `json:"from"`
	FromID       string          `json:"from_id"`
	Text         json.RawMessage `json:"text"`
}

// Load reads and decodes an export file. A missing or malformed file is a
// fatal error for the stage; per-message oddities are handled downstream.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse export %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = "Telegram Group"
	}
	return &doc, nil
}

// ScalarString normalizes a raw JSON scalar (number or string) to its text
// form. Anything else degrades to "".
func ScalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

type textSpan struct {
	Text string `json:"text"`
}

// FlattenText collapses an export text field to a single string. The field is
// either a plain string or an array mixing plain strings with structured
// spans (links, mentions, formatting); spans contribute their captured text
// in order, and spans with no text contribute nothing.
func FlattenText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return ""
	}

	var b strings.Builder
	for _, item := range items {
		var plain string
		if err := json.Unmarshal(item, &plain); err == nil {
			b.WriteString(plain)
			continue
		}
		var span textSpan
		if err := json.Unmarshal(item, &span); err == nil {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

// IsService reports whether the entry is not a genuine user message (joins,
// leaves, pins and other service records carry a non-"message" type).
func (m *RawMessage) IsService() bool {
	return m.Type != "message"
}
