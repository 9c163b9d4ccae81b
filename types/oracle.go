package types

import (
	fmt "fmt"
	"time"

	sdkmath "cosmossdk.io/math"
)

// StrategyKind selects how a price feed answers reads.
type StrategyKind string

const (
	// StrategySpot returns the last recorded price. One write fully controls the next read.
	StrategySpot StrategyKind = "spot"
	// StrategyTWAP returns the time-weighted average over a bounded window.
	StrategyTWAP StrategyKind = "twap"
	// StrategyAttested returns the last attested price and fails once it exceeds its staleness bound.
	StrategyAttested StrategyKind = "attested"
)

// Validate returns an error if the strategy kind is unknown.
func (s StrategyKind) Validate() error {
	switch s {
	case StrategySpot, StrategyTWAP, StrategyAttested:
		return nil
	default:
		return fmt.Errorf("unknown oracle strategy %q", string(s))
	}
}

// PricePoint is a single price observation.
type PricePoint struct {
	Price     sdkmath.LegacyDec `json:"price"`
	Timestamp time.Time         `json:"timestamp"`
	Attested  bool              `json:"attested,omitempty"`
}

// NewPricePoint creates a new PricePoint.
func NewPricePoint(price sdkmath.LegacyDec, timestamp time.Time, attested bool) PricePoint {
	return PricePoint{Price: price, Timestamp: timestamp.UTC(), Attested: attested}
}

// Validate performs basic validation on the observation.
func (p PricePoint) Validate() error {
	if p.Price.IsNil() || !p.Price.IsPositive() {
		return ErrInvalidPrice.Wrapf("price must be positive, got %v", p.Price)
	}
	if p.Timestamp.IsZero() {
		return ErrInvalidObservation.Wrap("timestamp is required")
	}
	return nil
}

// Feed is the persisted configuration and latest slot of a price feed.
type Feed struct {
	ID              string        `json:"id"`
	Strategy        StrategyKind  `json:"strategy"`
	Window          time.Duration `json:"window,omitempty"`
	MinObservations uint32        `json:"min_observations,omitempty"`
	MinDuration     time.Duration `json:"min_duration,omitempty"`
	MaxObservations uint32        `json:"max_observations,omitempty"`
	MaxStaleness    time.Duration `json:"max_staleness,omitempty"`
	Latest          *PricePoint   `json:"latest,omitempty"`
}

// Validate performs basic validation on the feed.
func (f Feed) Validate() error {
	if err := ValidateFeedID(f.ID); err != nil {
		return err
	}
	if err := f.Strategy.Validate(); err != nil {
		return err
	}

	switch f.Strategy {
	case StrategyTWAP:
		if f.Window <= 0 {
			return fmt.Errorf("twap window must be positive")
		}
		if f.MinObservations == 0 {
			return fmt.Errorf("twap min observations must be positive")
		}
		if f.MinDuration < 0 || f.MinDuration > f.Window {
			return fmt.Errorf("twap min duration must be within [0, %s]", f.Window)
		}
		if f.MaxObservations < f.MinObservations {
			return fmt.Errorf("twap max observations %d is below min observations %d", f.MaxObservations, f.MinObservations)
		}
	case StrategyAttested:
		if f.MaxStaleness <= 0 {
			return fmt.Errorf("attested max staleness must be positive")
		}
	}

	if f.Latest != nil {
		if err := f.Latest.Validate(); err != nil {
			return fmt.Errorf("invalid latest observation: %w", err)
		}
	}
	return nil
}

// FeedConfig holds the attributes for creating a new price feed. A zero
// MaxObservations falls back to the module params.
type FeedConfig struct {
	ID              string
	Strategy        StrategyKind
	Window          time.Duration
	MinObservations uint32
	MinDuration     time.Duration
	MaxObservations uint32
	MaxStaleness    time.Duration
}

// NewFeed builds an empty feed from the config.
func NewFeed(cfg FeedConfig, params Params) Feed {
	f := Feed{
		ID:              cfg.ID,
		Strategy:        cfg.Strategy,
		Window:          cfg.Window,
		MinObservations: cfg.MinObservations,
		MinDuration:     cfg.MinDuration,
		MaxObservations: cfg.MaxObservations,
		MaxStaleness:    cfg.MaxStaleness,
	}
	if f.Strategy == StrategyTWAP && f.MaxObservations == 0 {
		f.MaxObservations = params.MaxObservationsPerFeed
	}
	return f
}

// FeedObservation is a single windowed observation, used in genesis.
type FeedObservation struct {
	FeedID string     `json:"feed_id"`
	Point  PricePoint `json:"point"`
}
