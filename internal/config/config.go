package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config carries the tunable defaults and the classification word lists.
// The lists ship with built-in values matching the groups this tool was
// written for; a config file can swap them out wholesale for other chats.
type Config struct {
	// Consolidation defaults for the simplify command.
	TimeWindow int `toml:"time_window"`
	MaxLength  int `toml:"max_length"`

	// Chunk splitting default for the split command.
	ChunkChars int `toml:"chunk_chars"`

	// Bot/service detection (simplify).
	KnownBots  []string `toml:"known_bots"`  // exact sender name/id matches
	BotPhrases []string `toml:"bot_phrases"` // case-insensitive substrings

	// Noise classification (filter).
	LowValueTokens   []string `toml:"low_value_tokens"`   // exact folded matches
	LowValuePatterns []string `toml:"low_value_patterns"` // anchored regexps
	OffTopicPatterns []string `toml:"off_topic_patterns"` // unanchored regexps
	EmojiRanges      []string `toml:"emoji_ranges"`       // hex codepoint ranges "LO-HI"
}

func Default() *Config {
	return &Config{
		TimeWindow: 180,
		MaxLength:  300,
		ChunkChars: 50000,

		KnownBots: []string{"Rose", "user609517172"},
		BotPhrases: []string{
			"and welcome to",
			"please remember to follow the rules",
			"this group has rules that you agreed to",
			"has joined the group",
			"has left the group",
			"has been banned",
			"has been removed",
		},

		LowValueTokens: []string{
			"agreed", "agree", "this", "that", "yes", "no", "yep", "nope",
			"maybe", "ok", "okay", "lol", "haha", "hmm", "cool", "nice",
			"great", "+1", "-1", "same", "^", "indeed", "true", "false",
			"correct", "wrong", "right", "exactly", "precisely", "ofc",
			"of course", "def", "definitely", "absolutely",
			"thanks", "thank you", "ty", "thx", "tnx", "thanks!", "ty!",
		},
		LowValuePatterns: []string{
			`^[hm]+$`, // hmm, mm
			`^[ha]+$`, // haha, ahh
			`^[lo]+$`, // lol, looool
			`^[eh]+$`, // ehh, heh
			`^[kw]{1,3}$`,
			`^[.!?…,:;]+$`,
		},
		OffTopicPatterns: []string{
			`^(/off|/price)\b`,
			`please (take|move|continue) this (discussion|conversation|topic) to`,
			`this (discussion|conversation|topic) belongs in`,
			`there('s| is) a (channel|group|chat) for (this|that|price)`,
			`let's (keep|stay) on topic`,
			`this is (off|getting off) topic`,
		},
		EmojiRanges: []string{
			"1F300-1F6FF",
			"1F700-1F77F",
			"1F780-1F7FF",
			"1F800-1F8FF",
			"1F900-1F9FF",
			"1FA00-1FA6F",
			"1FA70-1FAFF",
			"2702-27B0",
			"24C2-1F251",
		},
	}
}

// Load returns the defaults overlaid with ~/.config/tgprep/config.toml when
// that file exists.
func Load() (*Config, error) {
	cfg := Default()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	cfgPath := filepath.Join(home, ".config", "tgprep", "config.toml")
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	return cfg, nil
}
