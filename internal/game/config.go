package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultLaunchStacksToWin is the launch-stack win threshold when the config
// leaves it unset.
const DefaultLaunchStacksToWin = 3

// CardConfig is one entry of the declarative deck composition table.
type CardConfig struct {
	TypeID              string `yaml:"typeId"`
	Value               int    `yaml:"value"`
	IsSpecial           bool   `yaml:"isSpecial"`
	SpecialType         string `yaml:"specialType,omitempty"`
	TriggersAnotherPlay bool   `yaml:"triggersAnotherPlay,omitempty"`
	Count               int    `yaml:"count"`
}

// Config is the full deck composition plus game parameters. This is the only
// configuration surface of the engine.
type Config struct {
	Cards             []CardConfig `yaml:"cards"`
	CardsPerPlayer    int          `yaml:"cardsPerPlayer"`
	LaunchStacksToWin int          `yaml:"launchStacksToWin"`
}

// TotalCards returns the sum of all configured counts.
func (c *Config) TotalCards() int {
	total := 0
	for _, e := range c.Cards {
		total += e.Count
	}
	return total
}

// Validate checks the composition invariants the rest of the engine depends
// on. Composition errors are programmer/configuration errors and fail fast:
// a count mismatch would silently corrupt the card-conservation guarantee.
func (c *Config) Validate() error {
	if c.CardsPerPlayer <= 0 {
		return fmt.Errorf("config: cardsPerPlayer must be positive, got %d", c.CardsPerPlayer)
	}
	if total := c.TotalCards(); total != 2*c.CardsPerPlayer {
		return fmt.Errorf("config: composition has %d cards, need exactly %d (2 x %d per player)",
			total, 2*c.CardsPerPlayer, c.CardsPerPlayer)
	}
	for _, e := range c.Cards {
		if e.Count <= 0 {
			return fmt.Errorf("config: card %q has non-positive count %d", e.TypeID, e.Count)
		}
		if e.Value < 0 || e.Value > 6 {
			return fmt.Errorf("config: card %q value %d out of range 0-6", e.TypeID, e.Value)
		}
		st, err := ParseSpecialType(e.SpecialType)
		if err != nil {
			return fmt.Errorf("config: card %q: %w", e.TypeID, err)
		}
		if e.IsSpecial != (st != SpecialNone) {
			return fmt.Errorf("config: card %q: isSpecial=%v does not match specialType %q",
				e.TypeID, e.IsSpecial, e.SpecialType)
		}
		if e.TriggersAnotherPlay != st.RequiresAnotherPlay() {
			return fmt.Errorf("config: card %q: triggersAnotherPlay must be %v for special type %q",
				e.TypeID, st.RequiresAnotherPlay(), st)
		}
		if st == SpecialBlocker {
			if _, ok := blockerStrengths[e.TypeID]; !ok {
				return fmt.Errorf("config: unknown blocker typeId %q (no strength entry)", e.TypeID)
			}
		}
	}
	return nil
}

func (c *Config) launchStacksToWin() int {
	if c.LaunchStacksToWin <= 0 {
		return DefaultLaunchStacksToWin
	}
	return c.LaunchStacksToWin
}

// LoadConfig parses a YAML composition file and validates it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse composition YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the stock 64-card composition: 32 cards per side,
// 40 commons, 5 launch stacks, 6 trackers, 4 blockers, and one copy of each
// remaining special.
func DefaultConfig() *Config {
	return &Config{
		CardsPerPlayer:    32,
		LaunchStacksToWin: DefaultLaunchStacksToWin,
		Cards: []CardConfig{
			{TypeID: "common-1", Value: 1, Count: 7},
			{TypeID: "common-2", Value: 2, Count: 7},
			{TypeID: "common-3", Value: 3, Count: 7},
			{TypeID: "common-4", Value: 4, Count: 7},
			{TypeID: "common-5", Value: 5, Count: 6},
			{TypeID: "common-6", Value: 6, Count: 6},
			{TypeID: "launch-stack", Value: 0, IsSpecial: true, SpecialType: "launch_stack", TriggersAnotherPlay: true, Count: 5},
			{TypeID: "tracker-1", Value: 1, IsSpecial: true, SpecialType: "tracker", TriggersAnotherPlay: true, Count: 2},
			{TypeID: "tracker-2", Value: 2, IsSpecial: true, SpecialType: "tracker", TriggersAnotherPlay: true, Count: 2},
			{TypeID: "tracker-3", Value: 3, IsSpecial: true, SpecialType: "tracker", TriggersAnotherPlay: true, Count: 2},
			{TypeID: "blocker-1", Value: 0, IsSpecial: true, SpecialType: "blocker", TriggersAnotherPlay: true, Count: 2},
			{TypeID: "blocker-2", Value: 0, IsSpecial: true, SpecialType: "blocker", TriggersAnotherPlay: true, Count: 2},
			{TypeID: "forced-empathy", Value: 0, IsSpecial: true, SpecialType: "forced_empathy", Count: 1},
			{TypeID: "open-what-you-want", Value: 0, IsSpecial: true, SpecialType: "open_what_you_want", Count: 1},
			{TypeID: "tracker-smacker", Value: 0, IsSpecial: true, SpecialType: "tracker_smacker", Count: 1},
			{TypeID: "mandatory-recall", Value: 0, IsSpecial: true, SpecialType: "mandatory_recall", Count: 1},
			{TypeID: "hostile-takeover", Value: 0, IsSpecial: true, SpecialType: "hostile_takeover", Count: 1},
			{TypeID: "patent-theft", Value: 0, IsSpecial: true, SpecialType: "patent_theft", Count: 1},
			{TypeID: "leveraged-buyout", Value: 0, IsSpecial: true, SpecialType: "leveraged_buyout", Count: 1},
			{TypeID: "temper-tantrum", Value: 0, IsSpecial: true, SpecialType: "temper_tantrum", Count: 1},
			{TypeID: "data-grab", Value: 0, IsSpecial: true, SpecialType: "data_grab", Count: 1},
		},
	}
}
