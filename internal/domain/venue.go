package domain

// BadgeColor selects the badge color scheme for a venue.
type BadgeColor string

const (
	BadgeRed      BadgeColor = "red"
	BadgeGold     BadgeColor = "gold"
	BadgePlatinum BadgeColor = "platinum"
)

// String returns the string representation of BadgeColor.
func (c BadgeColor) String() string {
	return string(c)
}

// VenueDescriptor describes a known trading venue and its exit
// classification metadata. Descriptors are immutable and defined once
// at process start.
type VenueDescriptor struct {
	ProgramID   string     // on-chain program ID, unique across venues
	ExitType    string     // e.g. "Curve Jeet"
	ExitVenue   string     // e.g. "Pump.fun Bonding Curve"
	Description string     // flavor text shown on the badge
	BadgeColor  BadgeColor // badge color scheme
	BadgeTitle  string     // e.g. "PRE-MIGRATION EXIT"
}

// VenueScore is the weighted evidence total for one venue within a
// single transaction. Each evidence category contributes at most once
// per venue.
type VenueScore struct {
	ProgramID string   `json:"programId"`
	Score     int      `json:"score"`
	Sources   []string `json:"sources"` // evidence tags, in discovery order
}
