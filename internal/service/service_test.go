package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Radz112/bonding-curve-exit-badge/internal/badge"
	"github.com/Radz112/bonding-curve-exit-badge/internal/classify"
	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
	"github.com/Radz112/bonding-curve-exit-badge/internal/registry"
	"github.com/Radz112/bonding-curve-exit-badge/internal/scan"
	"github.com/Radz112/bonding-curve-exit-badge/internal/storage/memory"
)

const (
	wallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	token  = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

// fakeHistory serves one canned page per call and counts calls.
type fakeHistory struct {
	pages [][]domain.TransactionRecord
	err   error
	calls int
}

func (f *fakeHistory) Transactions(_ context.Context, _ string, _ string) ([]domain.TransactionRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.calls > len(f.pages) {
		return nil, nil
	}
	return f.pages[f.calls-1], nil
}

type fakeMetadata struct{}

func (fakeMetadata) GetAsset(_ context.Context, _ string) (*domain.TokenMetadata, error) {
	return &domain.TokenMetadata{Symbol: "BONK", Name: "Bonk", Decimals: 5}, nil
}

func curveSell(sig string) domain.TransactionRecord {
	return domain.TransactionRecord{
		Signature: sig,
		Timestamp: 1700000000,
		Slot:      250000000,
		Source:    "PUMP_FUN",
		Instructions: []domain.Instruction{
			{ProgramID: registry.PumpFun},
		},
		InnerInstructions: []domain.InnerInstructionSet{
			{Instructions: []domain.Instruction{{ProgramID: registry.PumpFun}}},
		},
		AccountData: []domain.AccountData{
			{
				Account:             wallet,
				NativeBalanceChange: 500000000,
				TokenBalanceChanges: []domain.TokenBalanceChange{
					{UserAccount: wallet, Mint: token, RawTokenAmount: domain.RawTokenAmount{TokenAmount: "-1000000", Decimals: 5}},
				},
			},
		},
	}
}

func newTestService(t *testing.T, src scan.HistorySource) *Service {
	t.Helper()

	reg := registry.New()
	renderer, err := badge.NewRenderer()
	if err != nil {
		t.Fatalf("renderer init failed: %v", err)
	}

	return New(Options{
		Registry: reg,
		Scanner:  scan.New(scan.Options{Source: src, Registry: reg, Log: zerolog.Nop()}),
		Builder:  classify.NewBuilder(reg, fakeMetadata{}, zerolog.Nop()),
		Renderer: renderer,
		Cache:    memory.NewResultCache(100),
		Log:      zerolog.Nop(),
	})
}

func TestClassify_EndToEnd(t *testing.T) {
	src := &fakeHistory{pages: [][]domain.TransactionRecord{{curveSell("sellSig")}}}
	svc := newTestService(t, src)

	entry, cached, err := svc.Classify(context.Background(), wallet, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cached {
		t.Error("first call must be a miss")
	}
	if entry.Result.ExitType != "Curve Jeet" {
		t.Errorf("expected Curve Jeet, got %s", entry.Result.ExitType)
	}
	if entry.Result.Confidence != domain.ConfidenceHigh {
		t.Errorf("expected HIGH confidence, got %s", entry.Result.Confidence)
	}
	if entry.Result.TokenSymbol != "BONK" {
		t.Errorf("expected BONK symbol, got %s", entry.Result.TokenSymbol)
	}
	if entry.Result.SellSignature != "sellSig" {
		t.Errorf("expected sellSig, got %s", entry.Result.SellSignature)
	}
	if !strings.HasPrefix(entry.BadgeBase64, "data:image/png;base64,") {
		t.Error("badge must be a PNG data URI")
	}
	if entry.CachedAt == 0 {
		t.Error("cached_at must be set")
	}
}

func TestClassify_SecondCallServedFromCache(t *testing.T) {
	src := &fakeHistory{pages: [][]domain.TransactionRecord{{curveSell("sellSig")}}}
	svc := newTestService(t, src)

	first, cached, err := svc.Classify(context.Background(), wallet, token)
	if err != nil || cached {
		t.Fatalf("first call: cached=%v err=%v", cached, err)
	}
	callsAfterFirst := src.calls

	second, cached, err := svc.Classify(context.Background(), wallet, token)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if !cached {
		t.Error("second call must be a hit")
	}
	if src.calls != callsAfterFirst {
		t.Errorf("cache hit must not touch the provider: %d extra calls", src.calls-callsAfterFirst)
	}
	if first.Result != second.Result {
		t.Error("cached result must be identical")
	}
}

func TestClassify_NoSellMapsToNotFound(t *testing.T) {
	src := &fakeHistory{} // empty history
	svc := newTestService(t, src)

	_, _, err := svc.Classify(context.Background(), wallet, token)

	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if svcErr.Kind != KindNotFound {
		t.Errorf("expected NOT_FOUND, got %s", svcErr.Kind)
	}
}

func TestClassify_UpstreamFailure(t *testing.T) {
	src := &fakeHistory{err: errors.New("connection reset")}
	svc := newTestService(t, src)

	_, _, err := svc.Classify(context.Background(), wallet, token)

	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if svcErr.Kind != KindUpstream {
		t.Errorf("expected UPSTREAM_FAILURE, got %s", svcErr.Kind)
	}
}

func TestClassify_FailureNotCached(t *testing.T) {
	src := &fakeHistory{err: errors.New("connection reset")}
	svc := newTestService(t, src)

	if _, _, err := svc.Classify(context.Background(), wallet, token); err == nil {
		t.Fatal("expected failure")
	}

	stats, err := svc.CacheStats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Keys != 0 {
		t.Errorf("failures must not be cached, found %d keys", stats.Keys)
	}
}

func TestClassifyError_Taxonomy(t *testing.T) {
	noSell := &scan.NoSellError{Wallet: wallet, Token: token, PagesScanned: 10}
	if k := classifyError(noSell).Kind; k != KindNotFound {
		t.Errorf("NoSellError: expected NOT_FOUND, got %s", k)
	}
	if k := classifyError(context.DeadlineExceeded).Kind; k != KindTimeout {
		t.Errorf("deadline: expected TIMEOUT, got %s", k)
	}
	if k := classifyError(classify.ErrUnknownVenue).Kind; k != KindInternal {
		t.Errorf("unknown venue: expected INTERNAL_INCONSISTENCY, got %s", k)
	}
	if k := classifyError(errors.New("boom")).Kind; k != KindUpstream {
		t.Errorf("generic: expected UPSTREAM_FAILURE, got %s", k)
	}
}

func TestVenues(t *testing.T) {
	svc := newTestService(t, &fakeHistory{})
	venues := svc.Venues()
	if len(venues) != 3 {
		t.Fatalf("expected 3 venues, got %d", len(venues))
	}
	if venues[0].ExitType != "Curve Jeet" {
		t.Errorf("unexpected first venue: %s", venues[0].ExitType)
	}
}
