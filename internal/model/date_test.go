package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOfDropsTimeOfDay(t *testing.T) {
	d := DateOf(time.Date(2026, 3, 15, 23, 59, 58, 0, time.UTC))
	if d.String() != "2026-03-15" {
		t.Errorf("got %s, want 2026-03-15", d)
	}
	if h, m, s := d.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("time of day survived: %02d:%02d:%02d", h, m, s)
	}
}

func TestDaysUntil(t *testing.T) {
	a, _ := ParseDate("2026-03-10")
	b, _ := ParseDate("2026-03-15")

	if got := a.DaysUntil(b); got != 5 {
		t.Errorf("a.DaysUntil(b) = %d, want 5", got)
	}
	if got := b.DaysUntil(a); got != -5 {
		t.Errorf("b.DaysUntil(a) = %d, want -5", got)
	}
	if got := a.DaysUntil(a); got != 0 {
		t.Errorf("a.DaysUntil(a) = %d, want 0", got)
	}
}

func TestAddDaysAcrossMonthEnd(t *testing.T) {
	d, _ := ParseDate("2026-02-27")
	if got := d.AddDays(2).String(); got != "2026-03-01" {
		t.Errorf("got %s, want 2026-03-01", got)
	}
	if got := d.AddDays(-27).String(); got != "2026-01-31" {
		t.Errorf("got %s, want 2026-01-31", got)
	}
}

func TestDateJSON(t *testing.T) {
	d, _ := ParseDate("2026-03-15")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-03-15"` {
		t.Errorf("marshal = %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("round trip changed the value: %s", back)
	}

	var zero Date
	if err := json.Unmarshal([]byte("null"), &zero); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !zero.IsZero() {
		t.Error("null should decode to the zero date")
	}

	if err := json.Unmarshal([]byte(`"15/03/2026"`), &back); err == nil {
		t.Error("expected an error for a non-ISO date")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2026, 3, 15, 13, 45, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2026-03-15" {
		t.Errorf("scan time = %s", d)
	}

	if err := d.Scan([]byte("2026-04-01")); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if d.String() != "2026-04-01" {
		t.Errorf("scan bytes = %s", d)
	}

	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Error("nil should scan to the zero date")
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected an error for an unsupported type")
	}
}
