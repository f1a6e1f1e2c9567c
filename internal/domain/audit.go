package domain

// AuditRecord is one computed classification, captured for offline
// analysis. Cache hits are not recorded; only fresh computations.
type AuditRecord struct {
	Wallet           string
	Token            string
	ExitType         string
	Confidence       Confidence
	WinningProgramID string
	WinningScore     int
	PagesScanned     int
	DurationMs       int64
	ComputedAt       int64 // Unix seconds
}
