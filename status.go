package hisaab

// ComputeStatus derives the settlement state of a transaction from its
// outstanding balance. Comparisons are exact decimal comparisons; an
// overpaid transaction (negative remaining) is settled, the surplus is
// reported separately and never shown as negative debt.
func ComputeStatus(remaining, base Money) Status {
	switch {
	case remaining.IsZero():
		return Settled
	case remaining.IsNegative():
		return Settled
	case remaining.Equal(base):
		return Pending
	default:
		return PartiallySettled
	}
}
