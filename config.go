package gesture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Default debounce settings for subscription reconciliation.
const (
	DefaultDebounceWait    = 500 * time.Millisecond
	DefaultDebounceMaxWait = 5000 * time.Millisecond
)

var (
	// ErrUnknownReference is returned when a recognizer relationship names an
	// event no earlier recognizer emits.
	ErrUnknownReference = errors.New("gesture: unknown recognizer reference")
	// ErrInvalidDirection is returned for an unparseable direction name.
	ErrInvalidDirection = errors.New("gesture: invalid direction")
)

// RecognizerConfig describes one recognizer to install. RecognizeWith and
// RequireFailure name recognizers by event name; they must refer to entries
// installed earlier in the list.
type RecognizerConfig struct {
	Kind           Kind     `json:"kind" yaml:"kind" toml:"kind"`
	Event          string   `json:"event,omitempty" yaml:"event,omitempty" toml:"event,omitempty"`
	Disabled       bool     `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
	Pointers       int      `json:"pointers,omitempty" yaml:"pointers,omitempty" toml:"pointers,omitempty"`
	Taps           int      `json:"taps,omitempty" yaml:"taps,omitempty" toml:"taps,omitempty"`
	IntervalMS     int      `json:"interval_ms,omitempty" yaml:"interval_ms,omitempty" toml:"interval_ms,omitempty"`
	TimeMS         int      `json:"time_ms,omitempty" yaml:"time_ms,omitempty" toml:"time_ms,omitempty"`
	Threshold      float64  `json:"threshold,omitempty" yaml:"threshold,omitempty" toml:"threshold,omitempty"`
	PosThreshold   float64  `json:"pos_threshold,omitempty" yaml:"pos_threshold,omitempty" toml:"pos_threshold,omitempty"`
	Direction      string   `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
	RecognizeWith  []string `json:"recognize_with,omitempty" yaml:"recognize_with,omitempty" toml:"recognize_with,omitempty"`
	RequireFailure []string `json:"require_failure,omitempty" yaml:"require_failure,omitempty" toml:"require_failure,omitempty"`
}

// Options converts the entry into RecognizerOptions.
func (c RecognizerConfig) Options() (RecognizerOptions, error) {
	dir, err := ParseDirection(c.Direction)
	if err != nil {
		return RecognizerOptions{}, err
	}
	return RecognizerOptions{
		Event:        c.Event,
		Disabled:     c.Disabled,
		Pointers:     c.Pointers,
		Taps:         c.Taps,
		Interval:     time.Duration(c.IntervalMS) * time.Millisecond,
		Time:         time.Duration(c.TimeMS) * time.Millisecond,
		Threshold:    c.Threshold,
		PosThreshold: c.PosThreshold,
		Direction:    dir,
	}, nil
}

// Recognizer builds the recognizer described by the entry. Relationships are
// not wired here; the Manager resolves them against installed recognizers.
func (c RecognizerConfig) Recognizer() (*Recognizer, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, fmt.Errorf("recognizer %q: %w", c.Kind, err)
	}
	return NewRecognizer(c.Kind, opts), nil
}

// EventName returns the event name the entry emits under.
func (c RecognizerConfig) EventName() string {
	if c.Event != "" {
		return c.Event
	}
	return string(c.Kind)
}

// ParseDirection parses "left", "right", "up", "down", "horizontal",
// "vertical", "all", or "" (no restriction). Names may be combined with "|".
func ParseDirection(s string) (Direction, error) {
	var d Direction
	for _, part := range strings.Split(s, "|") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "":
		case "left":
			d |= DirectionLeft
		case "right":
			d |= DirectionRight
		case "up":
			d |= DirectionUp
		case "down":
			d |= DirectionDown
		case "horizontal":
			d |= DirectionHorizontal
		case "vertical":
			d |= DirectionVertical
		case "all":
			d |= DirectionAll
		default:
			return DirectionNone, fmt.Errorf("%w: %q", ErrInvalidDirection, part)
		}
	}
	return d, nil
}

// DefaultPreset is the recognizer set installed when a Config lists none:
// rotate and pinch (disabled), horizontal swipe, horizontal pan recognized
// together with swipe, tap, double tap recognized together with tap, and
// press.
func DefaultPreset() []RecognizerConfig {
	return []RecognizerConfig{
		{Kind: KindRotate, Disabled: true},
		{Kind: KindPinch, Disabled: true, RecognizeWith: []string{"rotate"}},
		{Kind: KindSwipe, Direction: "horizontal"},
		{Kind: KindPan, Direction: "horizontal", RecognizeWith: []string{"swipe"}},
		{Kind: KindTap},
		{Kind: KindTap, Event: "doubletap", Taps: 2, RecognizeWith: []string{"tap"}},
		{Kind: KindPress},
	}
}

// Config configures a Manager.
type Config struct {
	// Recognizers are installed in order. Empty means DefaultPreset.
	Recognizers []RecognizerConfig `json:"recognizers,omitempty" yaml:"recognizers,omitempty" toml:"recognizers,omitempty"`
	// DebounceWaitMS is the settle delay for subscription reconciliation.
	DebounceWaitMS int `json:"debounce_wait_ms,omitempty" yaml:"debounce_wait_ms,omitempty" toml:"debounce_wait_ms,omitempty"`
	// DebounceMaxWaitMS caps how long a burst of recognizer changes can
	// postpone reconciliation.
	DebounceMaxWaitMS int `json:"debounce_max_wait_ms,omitempty" yaml:"debounce_max_wait_ms,omitempty" toml:"debounce_max_wait_ms,omitempty"`

	// Clock drives the debouncers. Nil uses SystemClock.
	Clock Clock `json:"-" yaml:"-" toml:"-"`
	// Logger receives reconciliation diagnostics. Nil disables logging.
	Logger *zerolog.Logger `json:"-" yaml:"-" toml:"-"`
}

func (c Config) debounceWait() time.Duration {
	if c.DebounceWaitMS > 0 {
		return time.Duration(c.DebounceWaitMS) * time.Millisecond
	}
	return DefaultDebounceWait
}

func (c Config) debounceMaxWait() time.Duration {
	if c.DebounceMaxWaitMS > 0 {
		return time.Duration(c.DebounceMaxWaitMS) * time.Millisecond
	}
	return DefaultDebounceMaxWait
}

func (c Config) recognizers() []RecognizerConfig {
	if len(c.Recognizers) == 0 {
		return DefaultPreset()
	}
	return c.Recognizers
}

// Validate checks directions and relationship references without building a
// Manager.
func (c Config) Validate() error {
	seen := make(map[string]bool)
	for i, rc := range c.recognizers() {
		if _, err := rc.Options(); err != nil {
			return fmt.Errorf("recognizers[%d] (%s): %w", i, rc.EventName(), err)
		}
		for _, ref := range rc.RecognizeWith {
			if !seen[ref] {
				return fmt.Errorf("recognizers[%d] (%s): recognize_with %q: %w", i, rc.EventName(), ref, ErrUnknownReference)
			}
		}
		for _, ref := range rc.RequireFailure {
			if !seen[ref] {
				return fmt.Errorf("recognizers[%d] (%s): require_failure %q: %w", i, rc.EventName(), ref, ErrUnknownReference)
			}
		}
		seen[rc.EventName()] = true
	}
	return nil
}

// LoadConfig reads a configuration file, choosing the decoder by extension:
// .yaml/.yml, .toml or .json.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("gesture: empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(b, filepath.Ext(path))
}

// ParseConfig decodes data in the given format ("yaml", "yml", "toml" or
// "json", with or without a leading dot). The document is checked against
// the embedded JSON schema before it is decoded into a Config.
func ParseConfig(data []byte, format string) (Config, error) {
	var (
		unmarshal func([]byte, any) error
		name      string
	)
	switch f := strings.ToLower(strings.TrimPrefix(format, ".")); f {
	case "yaml", "yml":
		unmarshal, name = yaml.Unmarshal, "yaml"
	case "toml":
		unmarshal, name = toml.Unmarshal, "toml"
	case "json":
		unmarshal, name = json.Unmarshal, "json"
	default:
		return Config{}, fmt.Errorf("gesture: unsupported config format %q", format)
	}

	var doc any
	if err := unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("parse %s config: %w", name, err)
	}
	if err := validateSchema(doc); err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s config: %w", name, err)
	}
	return cfg, nil
}

// envOverrides are the environment variables ApplyEnv reads.
type envOverrides struct {
	DebounceWaitMS    int `env:"GESTURE_DEBOUNCE_WAIT_MS"`
	DebounceMaxWaitMS int `env:"GESTURE_DEBOUNCE_MAX_WAIT_MS"`
}

// ApplyEnv overrides the debounce settings from GESTURE_DEBOUNCE_WAIT_MS and
// GESTURE_DEBOUNCE_MAX_WAIT_MS. Unset or non-positive values leave c as is.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.DebounceWaitMS > 0 {
		c.DebounceWaitMS = o.DebounceWaitMS
	}
	if o.DebounceMaxWaitMS > 0 {
		c.DebounceMaxWaitMS = o.DebounceMaxWaitMS
	}
	return nil
}
