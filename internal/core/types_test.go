package core

import (
	"testing"
	"time"
)

func TestBarIsValid(t *testing.T) {
	now := time.Now()
	valid := Bar{Open: 100, High: 105, Low: 99, Close: 104, Time: now}
	if !valid.IsValid() {
		t.Error("expected valid bar")
	}

	tests := []struct {
		name string
		bar  Bar
	}{
		{"zero time", Bar{Open: 100, High: 105, Low: 99, Close: 104}},
		{"zero open", Bar{High: 105, Low: 99, Close: 104, Time: now}},
		{"negative close", Bar{Open: 100, High: 105, Low: 99, Close: -1, Time: now}},
	}
	for _, tt := range tests {
		if tt.bar.IsValid() {
			t.Errorf("%s: expected invalid bar", tt.name)
		}
	}
}

func TestChronological(t *testing.T) {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bar := func(d int) Bar { return Bar{Time: base.AddDate(0, 0, d)} }

	if !Chronological(nil) {
		t.Error("empty series should be chronological")
	}
	if !Chronological([]Bar{bar(0), bar(1), bar(2)}) {
		t.Error("increasing series should be chronological")
	}
	if !Chronological([]Bar{bar(0), bar(0), bar(1)}) {
		t.Error("duplicate timestamps are allowed")
	}
	if Chronological([]Bar{bar(0), bar(2), bar(1)}) {
		t.Error("out of order series should not be chronological")
	}
}

func TestActionEntryExit(t *testing.T) {
	entries := []Action{ActionBuy, ActionStrongBuy}
	for _, a := range entries {
		if !a.IsEntry() || a.IsExit() {
			t.Errorf("%s: want entry only", a)
		}
	}

	exits := []Action{ActionSell, ActionStrongSell}
	for _, a := range exits {
		if !a.IsExit() || a.IsEntry() {
			t.Errorf("%s: want exit only", a)
		}
	}

	for _, a := range []Action{ActionHold, ActionNeutral} {
		if a.IsEntry() || a.IsExit() {
			t.Errorf("%s: want neither entry nor exit", a)
		}
	}
}
