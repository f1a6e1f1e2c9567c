package domain

// TokenMetadata is display metadata for a token mint, fetched from an
// external metadata provider.
type TokenMetadata struct {
	Symbol   string // e.g. "PEPE"; may be empty or "UNKNOWN"
	Name     string
	Decimals int
}
