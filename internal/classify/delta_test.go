package classify

import (
	"testing"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
)

const (
	testWallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	testMint   = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

func TestTokenDelta_AccountData(t *testing.T) {
	tx := &domain.TransactionRecord{
		AccountData: []domain.AccountData{
			{
				Account: "someTokenAccount",
				TokenBalanceChanges: []domain.TokenBalanceChange{
					{
						UserAccount:    testWallet,
						Mint:           testMint,
						RawTokenAmount: domain.RawTokenAmount{TokenAmount: "-1500000", Decimals: 6},
					},
				},
			},
		},
	}

	if got := TokenDelta(tx, testWallet, testMint); got != -1500000 {
		t.Errorf("expected delta -1500000, got %d", got)
	}
}

func TestTokenDelta_MatchesAccountField(t *testing.T) {
	// The surrounding account can equal the wallet even when the
	// change's userAccount is a token account.
	tx := &domain.TransactionRecord{
		AccountData: []domain.AccountData{
			{
				Account: testWallet,
				TokenBalanceChanges: []domain.TokenBalanceChange{
					{
						UserAccount:    "ataOwnerAccount",
						Mint:           testMint,
						RawTokenAmount: domain.RawTokenAmount{TokenAmount: "250", Decimals: 6},
					},
				},
			},
		},
	}

	if got := TokenDelta(tx, testWallet, testMint); got != 250 {
		t.Errorf("expected delta 250, got %d", got)
	}
}

func TestTokenDelta_CaseSensitive(t *testing.T) {
	lowered := "7xkxtg2cw87d97txjsdpbd5jbkheTqA83TZRuJosgAsU"

	tx := &domain.TransactionRecord{
		AccountData: []domain.AccountData{
			{
				Account: "other",
				TokenBalanceChanges: []domain.TokenBalanceChange{
					{
						UserAccount:    lowered,
						Mint:           testMint,
						RawTokenAmount: domain.RawTokenAmount{TokenAmount: "-100"},
					},
				},
			},
		},
	}

	if got := TokenDelta(tx, testWallet, testMint); got != 0 {
		t.Errorf("case-folded address must not match, got delta %d", got)
	}
}

func TestTokenDelta_NoFallbackWhenAccountDataPresent(t *testing.T) {
	// accountData exists but holds no matching entry; the transfer list
	// must not be consulted.
	tx := &domain.TransactionRecord{
		AccountData: []domain.AccountData{
			{Account: "unrelated"},
		},
		TokenTransfers: []domain.TokenTransfer{
			{FromUserAccount: testWallet, Mint: testMint, TokenAmount: 5},
		},
	}

	if got := TokenDelta(tx, testWallet, testMint); got != 0 {
		t.Errorf("expected 0 with non-matching accountData, got %d", got)
	}
}

func TestTokenDelta_TransferFallback(t *testing.T) {
	tx := &domain.TransactionRecord{
		TokenTransfers: []domain.TokenTransfer{
			{FromUserAccount: testWallet, ToUserAccount: "buyer", Mint: testMint, TokenAmount: 1000},
			{FromUserAccount: "other", ToUserAccount: testWallet, Mint: testMint, TokenAmount: 100},
			{FromUserAccount: testWallet, ToUserAccount: "buyer", Mint: "otherMint", TokenAmount: 999},
		},
	}

	if got := TokenDelta(tx, testWallet, testMint); got != -900 {
		t.Errorf("expected delta -900, got %d", got)
	}
}

func TestTokenDelta_MalformedRawAmount(t *testing.T) {
	tx := &domain.TransactionRecord{
		AccountData: []domain.AccountData{
			{
				Account: testWallet,
				TokenBalanceChanges: []domain.TokenBalanceChange{
					{UserAccount: testWallet, Mint: testMint, RawTokenAmount: domain.RawTokenAmount{TokenAmount: "not-a-number"}},
				},
			},
		},
	}

	if got := TokenDelta(tx, testWallet, testMint); got != 0 {
		t.Errorf("malformed amount must count as zero, got %d", got)
	}
}

func TestNativeDelta_AccountData(t *testing.T) {
	tx := &domain.TransactionRecord{
		AccountData: []domain.AccountData{
			{Account: "feePayer", NativeBalanceChange: -5000},
			{Account: testWallet, NativeBalanceChange: 42000000},
		},
	}

	if got := NativeDelta(tx, testWallet); got != 42000000 {
		t.Errorf("expected 42000000 lamports, got %d", got)
	}
}

func TestNativeDelta_TransferFallback(t *testing.T) {
	tx := &domain.TransactionRecord{
		NativeTransfers: []domain.NativeTransfer{
			{FromUserAccount: "buyer", ToUserAccount: testWallet, Amount: 100000},
			{FromUserAccount: testWallet, ToUserAccount: "rent", Amount: 30000},
		},
	}

	if got := NativeDelta(tx, testWallet); got != 70000 {
		t.Errorf("expected 70000 lamports, got %d", got)
	}
}
