package domain

// Confidence is the tier derived from the winning venue score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// String returns the string representation of Confidence.
func (c Confidence) String() string {
	return string(c)
}

// ClassificationResult is the finalized verdict for one (wallet, token)
// pair. Built once, then immutable; the sell it describes is a
// historical fact.
type ClassificationResult struct {
	Wallet        string     `json:"wallet"`
	Token         string     `json:"token"`
	TokenSymbol   string     `json:"token_symbol"`
	ExitType      string     `json:"exit_type"`
	ExitVenue     string     `json:"exit_venue"`
	Description   string     `json:"description"`
	Confidence    Confidence `json:"confidence"`
	SellSignature string     `json:"sell_signature"`
	SellTimestamp int64      `json:"sell_timestamp"` // Unix seconds
	BadgeColor    BadgeColor `json:"badge_color"`
	BadgeTitle    string     `json:"badge_title"`
}

// CacheEntry is the unit stored in the result cache: the verdict plus
// its rendered badge. No TTL, no eviction.
type CacheEntry struct {
	Result      ClassificationResult `json:"result"`
	BadgeBase64 string               `json:"badge_base64"` // data URI
	CachedAt    int64                `json:"cached_at"`    // Unix seconds
}

// CacheStats reports result cache usage.
type CacheStats struct {
	Keys   int64 `json:"keys"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}
