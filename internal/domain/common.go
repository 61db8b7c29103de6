package domain

// TradeSide represents the direction of a trade (long or short).
type TradeSide string

const (
	SideLong  TradeSide = "long"
	SideShort TradeSide = "short"
)

// IsValid reports whether the side is one of the known values.
func (s TradeSide) IsValid() bool {
	return s == SideLong || s == SideShort
}

// TradeStatus represents the lifecycle state of a trade.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "open"
	StatusClosed TradeStatus = "closed"
)

// IsValid reports whether the status is one of the known values.
func (s TradeStatus) IsValid() bool {
	return s == StatusOpen || s == StatusClosed
}

// ViewMode is the reporting granularity used when filtering trades
// for a selected date.
type ViewMode string

const (
	ViewDaily   ViewMode = "daily"
	ViewWeekly  ViewMode = "weekly"
	ViewMonthly ViewMode = "monthly"
	ViewAll     ViewMode = "all"
)

// SubscriptionTier represents a user's subscription level.
type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// IsValid reports whether the tier is one of the known values.
func (t SubscriptionTier) IsValid() bool {
	return t == TierFree || t == TierPremium
}
