package backtest

import (
	"testing"
)

func TestEquityCurveReturns(t *testing.T) {
	eq, _ := curve(100, 110, 99)
	returns := eq.Returns()

	if len(returns) != 2 {
		t.Fatalf("len(returns) = %d, want 2", len(returns))
	}
	if returns[0] != 0.1 {
		t.Errorf("returns[0] = %v, want 0.1", returns[0])
	}
	if returns[1] != -0.1 {
		t.Errorf("returns[1] = %v, want -0.1", returns[1])
	}
}

func TestEquityCurveReturns_Short(t *testing.T) {
	var empty EquityCurve
	if empty.Returns() != nil {
		t.Error("empty curve should have nil returns")
	}
	single, _ := curve(100)
	if single.Returns() != nil {
		t.Error("single-point curve should have nil returns")
	}
}

func TestEquityCurveReturns_ZeroEquity(t *testing.T) {
	eq, _ := curve(100, 0, 50)
	returns := eq.Returns()
	if returns[1] != 0 {
		t.Errorf("return after zero equity = %v, want 0", returns[1])
	}
}

func TestEquityCurveFinal(t *testing.T) {
	var empty EquityCurve
	if got := empty.Final(1234); got != 1234 {
		t.Errorf("empty Final = %v, want fallback 1234", got)
	}
	eq, _ := curve(100, 200)
	if got := eq.Final(0); got != 200 {
		t.Errorf("Final = %v, want 200", got)
	}
}

func TestDrawdownCurveMax(t *testing.T) {
	_, dd := curve(100, 120, 90, 110)
	if got, want := dd.Max(), 0.25; got != want {
		t.Errorf("Max = %v, want %v", got, want)
	}

	var empty DrawdownCurve
	if empty.Max() != 0 {
		t.Error("empty drawdown max should be 0")
	}
}
