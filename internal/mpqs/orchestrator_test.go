package mpqs

import (
	"errors"
	"math/big"
	"testing"
)

func TestNewOrchestratorParametersTooSmall(t *testing.T) {
	_, err := NewOrchestrator(big.NewInt(15), Config{}, nil)
	if !errors.Is(err, ErrParametersTooSmall) {
		t.Fatalf("expected ErrParametersTooSmall, got %v", err)
	}
}

func TestOrchestratorNextEmitsCongruentPairs(t *testing.T) {
	n := big.NewInt(8051)
	cfg := AutoConfig(n)

	var events []Event
	orch, err := NewOrchestrator(n, cfg, func(e Event) { events = append(events, e) })
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	for i := 0; i < 3; i++ {
		x, y, err := orch.Next()
		if err != nil {
			t.Fatalf("Next() #%d: %v", i, err)
		}
		x2 := new(big.Int).Mod(new(big.Int).Mul(x, x), n)
		y2 := new(big.Int).Mod(new(big.Int).Mul(y, y), n)
		if x2.Cmp(y2) != 0 {
			t.Fatalf("pair %d: x^2 mod n = %s != y^2 mod n = %s", i, x2, y2)
		}
	}

	var sawEmit bool
	for _, e := range events {
		if e.Kind == EventEmit {
			sawEmit = true
		}
	}
	if !sawEmit {
		t.Fatal("expected at least one EventEmit to have been traced")
	}
}

func TestOrchestratorWidenOnlyOnce(t *testing.T) {
	n := big.NewInt(15)
	// cfg.FactorBaseBound=2 admits only p=2, so BuildFactorBase succeeds.
	// Advance only fails once candidate primes leave the machine-word
	// range, so Next() under this config keeps enumerating (a, {b})
	// families instead of reaching widen(); the widen budget is driven
	// directly here.
	cfg := Config{FactorBaseBound: 2, SievingHalfWidth: 2, PolynomialExponent: 0, LogThreshold: 1}
	orch, err := NewOrchestrator(n, cfg, nil)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	if err := orch.widen(); err != nil {
		t.Fatalf("first widen() should succeed, got %v", err)
	}

	// Once one widen() has succeeded, a second call must refuse rather
	// than widening again.
	if err := orch.widen(); !errors.Is(err, ErrParametersTooSmall) {
		t.Fatalf("second widen() should fail with ErrParametersTooSmall, got %v", err)
	}
}
