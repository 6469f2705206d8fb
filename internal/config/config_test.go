package config

import (
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.TimeWindow != 180 {
		t.Errorf("TimeWindow = %d, want 180", cfg.TimeWindow)
	}
	if cfg.MaxLength != 300 {
		t.Errorf("MaxLength = %d, want 300", cfg.MaxLength)
	}
	if cfg.ChunkChars != 50000 {
		t.Errorf("ChunkChars = %d, want 50000", cfg.ChunkChars)
	}
	if len(cfg.KnownBots) == 0 || len(cfg.LowValueTokens) == 0 {
		t.Error("built-in lists should not be empty")
	}
	if len(cfg.EmojiRanges) == 0 {
		t.Error("built-in emoji ranges should not be empty")
	}
}

func TestDecodeOverlay(t *testing.T) {
	cfg := Default()

	doc := `
time_window = 60
known_bots = ["OtherBot"]
`
	if _, err := toml.Decode(doc, cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.TimeWindow != 60 {
		t.Errorf("TimeWindow = %d, want 60", cfg.TimeWindow)
	}
	if len(cfg.KnownBots) != 1 || cfg.KnownBots[0] != "OtherBot" {
		t.Errorf("KnownBots = %v, want [OtherBot]", cfg.KnownBots)
	}
	// Keys absent from the file keep their defaults.
	if cfg.MaxLength != 300 {
		t.Errorf("MaxLength = %d, want 300", cfg.MaxLength)
	}
}
