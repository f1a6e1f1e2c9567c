package domain

// SellDetection is a qualifying sell found in a wallet's history.
// Created only when a transaction passes every detector gate.
type SellDetection struct {
	Signature    string       // transaction signature
	Timestamp    int64        // Unix seconds
	Slot         int64        // Solana slot number
	TokenDelta   int64        // raw units, always negative
	SolDelta     int64        // lamports, signed
	VenueScores  []VenueScore // all scored venues, sorted descending
	WinningVenue VenueScore   // maximum-score entry; ties go to the first-registered venue
}
