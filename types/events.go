package types

import (
	"strconv"
	"time"

	"cosmossdk.io/core/event"
	sdkmath "cosmossdk.io/math"
)

const (
	EventTypeVaultCreated        = "vault_created"
	EventTypeDeposit             = "deposit"
	EventTypeWithdraw            = "withdraw"
	EventTypeDonationAbsorbed    = "donation_absorbed"
	EventTypeDonationVested      = "donation_vested"
	EventTypeFeedCreated         = "feed_created"
	EventTypeObservationRecorded = "observation_recorded"

	AttributeKeyVaultID   = "vault_id"
	AttributeKeyFeedID    = "feed_id"
	AttributeKeyPolicy    = "policy"
	AttributeKeyStrategy  = "strategy"
	AttributeKeyDenom     = "denom"
	AttributeKeyAccount   = "account"
	AttributeKeyAssets    = "assets"
	AttributeKeyShares    = "shares"
	AttributeKeyAmount    = "amount"
	AttributeKeyVestEnd   = "vest_end"
	AttributeKeyPrice     = "price"
	AttributeKeyTimestamp = "timestamp"
	AttributeKeyAttested  = "attested"
)

// Event is a typed key/value event emitted through the core event service.
type Event struct {
	Type       string
	Attributes []event.Attribute
}

// NewEventVaultCreated creates a new vault_created event.
func NewEventVaultCreated(v Vault) Event {
	return Event{
		Type: EventTypeVaultCreated,
		Attributes: []event.Attribute{
			{Key: AttributeKeyVaultID, Value: v.ID},
			{Key: AttributeKeyDenom, Value: v.Denom},
			{Key: AttributeKeyPolicy, Value: string(v.Policy)},
		},
	}
}

// NewEventDeposit creates a new deposit event.
func NewEventDeposit(vaultID, depositor string, assets, shares sdkmath.Int) Event {
	return Event{
		Type: EventTypeDeposit,
		Attributes: []event.Attribute{
			{Key: AttributeKeyVaultID, Value: vaultID},
			{Key: AttributeKeyAccount, Value: depositor},
			{Key: AttributeKeyAssets, Value: assets.String()},
			{Key: AttributeKeyShares, Value: shares.String()},
		},
	}
}

// NewEventWithdraw creates a new withdraw event.
func NewEventWithdraw(vaultID, holder string, assets, shares sdkmath.Int) Event {
	return Event{
		Type: EventTypeWithdraw,
		Attributes: []event.Attribute{
			{Key: AttributeKeyVaultID, Value: vaultID},
			{Key: AttributeKeyAccount, Value: holder},
			{Key: AttributeKeyAssets, Value: assets.String()},
			{Key: AttributeKeyShares, Value: shares.String()},
		},
	}
}

// NewEventDonationAbsorbed creates a new donation_absorbed event.
func NewEventDonationAbsorbed(vaultID string, amount sdkmath.Int, vestEnd time.Time) Event {
	return Event{
		Type: EventTypeDonationAbsorbed,
		Attributes: []event.Attribute{
			{Key: AttributeKeyVaultID, Value: vaultID},
			{Key: AttributeKeyAmount, Value: amount.String()},
			{Key: AttributeKeyVestEnd, Value: vestEnd.UTC().Format(time.RFC3339Nano)},
		},
	}
}

// NewEventDonationVested creates a new donation_vested event.
func NewEventDonationVested(vaultID string, amount sdkmath.Int) Event {
	return Event{
		Type: EventTypeDonationVested,
		Attributes: []event.Attribute{
			{Key: AttributeKeyVaultID, Value: vaultID},
			{Key: AttributeKeyAmount, Value: amount.String()},
		},
	}
}

// NewEventFeedCreated creates a new feed_created event.
func NewEventFeedCreated(f Feed) Event {
	return Event{
		Type: EventTypeFeedCreated,
		Attributes: []event.Attribute{
			{Key: AttributeKeyFeedID, Value: f.ID},
			{Key: AttributeKeyStrategy, Value: string(f.Strategy)},
		},
	}
}

// NewEventObservationRecorded creates a new observation_recorded event.
func NewEventObservationRecorded(feedID string, p PricePoint) Event {
	return Event{
		Type: EventTypeObservationRecorded,
		Attributes: []event.Attribute{
			{Key: AttributeKeyFeedID, Value: feedID},
			{Key: AttributeKeyPrice, Value: p.Price.String()},
			{Key: AttributeKeyTimestamp, Value: p.Timestamp.UTC().Format(time.RFC3339Nano)},
			{Key: AttributeKeyAttested, Value: strconv.FormatBool(p.Attested)},
		},
	}
}
