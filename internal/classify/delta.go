// Package classify implements the sell-detection core: balance-delta
// calculation, weighted venue attribution, gating, and result building.
// Everything here is pure computation over already-fetched records.
package classify

import (
	"strconv"
	"strings"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
)

// TokenDelta returns the wallet's net signed change of a token balance
// within one transaction, in raw units.
//
// The primary source is the per-account balance-change list. An entry
// matches when its mint equals the target and either the change's owner
// wallet or the surrounding account equals the wallet. Address
// comparison is exact and case-sensitive: base58 is case-sensitive and
// lowercasing would conflate distinct addresses.
//
// The transfer-list fallback is used only when the record carries no
// accountData at all.
func TokenDelta(tx *domain.TransactionRecord, wallet, mint string) int64 {
	if len(tx.AccountData) > 0 {
		for _, acc := range tx.AccountData {
			for _, change := range acc.TokenBalanceChanges {
				if change.Mint != mint {
					continue
				}
				if change.UserAccount != wallet && acc.Account != wallet {
					continue
				}
				return parseRawAmount(change.RawTokenAmount.TokenAmount)
			}
		}
		return 0
	}

	var delta float64
	for _, t := range tx.TokenTransfers {
		if t.Mint != mint {
			continue
		}
		if t.FromUserAccount == wallet {
			delta -= t.TokenAmount
		}
		if t.ToUserAccount == wallet {
			delta += t.TokenAmount
		}
	}
	return int64(delta)
}

// NativeDelta returns the wallet's net native-currency change within
// one transaction, in lamports. The per-account nativeBalanceChange
// includes transaction fees, so a receiving wallet that paid the fee
// can still show a small negative value.
func NativeDelta(tx *domain.TransactionRecord, wallet string) int64 {
	if len(tx.AccountData) > 0 {
		for _, acc := range tx.AccountData {
			if acc.Account == wallet {
				return acc.NativeBalanceChange
			}
		}
		return 0
	}

	var delta int64
	for _, t := range tx.NativeTransfers {
		if t.FromUserAccount == wallet {
			delta -= t.Amount
		}
		if t.ToUserAccount == wallet {
			delta += t.Amount
		}
	}
	return delta
}

// parseRawAmount parses a signed raw token amount from its decimal
// string form. Malformed or missing values count as zero.
func parseRawAmount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
