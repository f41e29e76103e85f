package hisaab

import (
	"encoding/json"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    Money
		wantErr bool
	}{
		{in: "500", want: M(500, "INR")},
		{in: "499.50", want: M(499.50, "INR")},
		{in: " 12.345 ", want: M(12.345, "INR")},
		{in: "-3", want: M(-3, "INR")},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseMoney(tc.in, "INR")
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseMoney(%q): want error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMoney(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseMoney(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestMoneyArithmeticIsExact(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3, the textbook float trap.
	a := M(0.1, "INR")
	b := M(0.2, "INR")
	if got := a.Add(b); !got.Equal(M(0.3, "INR")) {
		t.Errorf("0.1 + 0.2 = %v, want exactly 0.3", got.Decimal())
	}

	// Repeated subtraction lands on exactly zero.
	m := M(500, "INR")
	for i := 0; i < 5; i++ {
		m = m.Sub(M(100, "INR"))
	}
	if !m.IsZero() {
		t.Errorf("500 - 5*100 = %v, want exactly 0", m.Decimal())
	}
}

func TestMoneyWeakEmptyCurrency(t *testing.T) {
	// The empty currency merges with any other.
	sum := M(0, "").Add(M(5, "EUR"))
	if sum.Currency() != "EUR" {
		t.Errorf("empty currency should adopt EUR, got %q", sum.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("adding INR to EUR should panic")
		}
	}()
	M(1, "INR").Add(M(1, "EUR"))
}

func TestMoneySignedString(t *testing.T) {
	if got := M(0, "INR").SignedString(); got != "-" {
		t.Errorf("zero SignedString = %q, want %q", got, "-")
	}
	if got := M(5, "INR").SignedString(); got[0] != '+' {
		t.Errorf("positive SignedString = %q, want a leading +", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(M(499.50, "INR"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := `{"currency":"INR","amount":499.5}`; string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}

	var m Money
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.Equal(M(499.50, "INR")) {
		t.Errorf("round trip changed the value: %v", m)
	}
}
