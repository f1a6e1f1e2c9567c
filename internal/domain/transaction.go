package domain

// TransactionRecord is a single transaction as reported by the Helius
// enhanced transactions API. Only the fields consumed by sell detection
// and venue attribution are modeled; the provider sends many more.
type TransactionRecord struct {
	Signature         string                `json:"signature"`
	Timestamp         int64                 `json:"timestamp"` // Unix seconds
	Slot              int64                 `json:"slot"`
	Type              string                `json:"type"`
	Source            string                `json:"source"` // provider's venue guess, e.g. "PUMP_FUN"
	TransactionError  interface{}           `json:"transactionError"`
	AccountData       []AccountData         `json:"accountData"`
	TokenTransfers    []TokenTransfer       `json:"tokenTransfers"`
	NativeTransfers   []NativeTransfer      `json:"nativeTransfers"`
	Instructions      []Instruction         `json:"instructions"`
	InnerInstructions []InnerInstructionSet `json:"innerInstructions"`
}

// Failed reports whether the transaction carries an error marker.
// Failed transactions are never evidence of an economic sell.
func (t *TransactionRecord) Failed() bool {
	return t.TransactionError != nil
}

// AccountData holds per-account balance changes within a transaction.
type AccountData struct {
	Account             string               `json:"account"`
	NativeBalanceChange int64                `json:"nativeBalanceChange"` // lamports, includes fees
	TokenBalanceChanges []TokenBalanceChange `json:"tokenBalanceChanges"`
}

// TokenBalanceChange is a signed change of one token balance.
type TokenBalanceChange struct {
	UserAccount    string         `json:"userAccount"` // owner wallet
	TokenAccount   string         `json:"tokenAccount"`
	Mint           string         `json:"mint"`
	RawTokenAmount RawTokenAmount `json:"rawTokenAmount"`
}

// RawTokenAmount carries a token amount in raw units as a decimal string.
type RawTokenAmount struct {
	TokenAmount string `json:"tokenAmount"`
	Decimals    int    `json:"decimals"`
}

// TokenTransfer is a fallback transfer record used when accountData is absent.
type TokenTransfer struct {
	FromUserAccount string  `json:"fromUserAccount"`
	ToUserAccount   string  `json:"toUserAccount"`
	Mint            string  `json:"mint"`
	TokenAmount     float64 `json:"tokenAmount"` // UI units
}

// NativeTransfer is a fallback native-currency transfer record.
type NativeTransfer struct {
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	Amount          int64  `json:"amount"` // lamports
}

// Instruction is a single instruction reference within a transaction.
type Instruction struct {
	ProgramID string `json:"programId"`
}

// InnerInstructionSet groups the nested instructions emitted by one
// top-level instruction.
type InnerInstructionSet struct {
	Instructions []Instruction `json:"instructions"`
}
