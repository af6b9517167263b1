package core

import (
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestErrorString(t *testing.T) {
	if got := ErrNoData.Error(); got != "[NO_DATA] no data available" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := WrapError(ErrConfigInvalid, io.EOF)
	if got := wrapped.Error(); got != "[CONFIG_INVALID] configuration invalid: EOF" {
		t.Errorf("Error() = %q", got)
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	wrapped := WrapError(ErrInvalidSettings, errors.New("capital must be positive"))
	if !errors.Is(wrapped, ErrInvalidSettings) {
		t.Error("wrapped error should match its base by code")
	}
	if errors.Is(wrapped, ErrNoData) {
		t.Error("wrapped error should not match a different code")
	}

	// Matching survives another layer of fmt wrapping.
	outer := fmt.Errorf("running backtest: %w", wrapped)
	if !errors.Is(outer, ErrInvalidSettings) {
		t.Error("fmt-wrapped error should still match by code")
	}
}

func TestErrorUnwrap(t *testing.T) {
	wrapped := WrapError(ErrConfigInvalid, io.EOF)
	if !errors.Is(wrapped, io.EOF) {
		t.Error("cause should be reachable through Unwrap")
	}
	if errors.Is(ErrConfigInvalid, io.EOF) {
		t.Error("base error has no cause")
	}
}
