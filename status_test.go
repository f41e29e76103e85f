package hisaab

import "testing"

func TestComputeStatus(t *testing.T) {
	base := M(500, "INR")
	tests := []struct {
		name      string
		remaining Money
		want      Status
	}{
		{name: "untouched", remaining: M(500, "INR"), want: Pending},
		{name: "partially paid", remaining: M(300, "INR"), want: PartiallySettled},
		{name: "exactly paid", remaining: M(0, "INR"), want: Settled},
		{name: "overpaid", remaining: M(-50, "INR"), want: Settled},
		{name: "one paisa left", remaining: M(0.01, "INR"), want: PartiallySettled},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeStatus(tc.remaining, base); got != tc.want {
				t.Errorf("ComputeStatus(%v, %v) = %v, want %v", tc.remaining.Decimal(), base.Decimal(), got, tc.want)
			}
		})
	}
}

func TestComputeStatusExactDecimals(t *testing.T) {
	// Three payments of 1/3-ish decimals must not leave a float residue.
	base := M(0.3, "INR")
	remaining := base.Sub(M(0.1, "INR")).Sub(M(0.1, "INR")).Sub(M(0.1, "INR"))
	if got := ComputeStatus(remaining, base); got != Settled {
		t.Errorf("0.3 - 3*0.1 should settle exactly, got %v (remaining %v)", got, remaining.Decimal())
	}
}
