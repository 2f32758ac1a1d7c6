package engine

// KnownEntryType reports whether t is one of the entry types that contribute
// to the balance fold.
func KnownEntryType(t EntryType) bool {
	switch t {
	case EntryRoundupCredit, EntryManualTopup, EntryInvestmentDebit:
		return true
	}
	return false
}

// CalculateBalance folds a sequence of ledger entries into the net investable
// balance: credits and top-ups add, investment debits subtract. The balance
// is always re-derived from the full sequence, never cached, so replays are
// deterministic. Entries with an unknown type contribute nothing; callers
// that care should surface them via UnknownEntryTypes.
func CalculateBalance(entries []LedgerEntry) float64 {
	var balance float64
	for _, e := range entries {
		switch e.Type {
		case EntryRoundupCredit, EntryManualTopup:
			balance += e.Amount
		case EntryInvestmentDebit:
			balance -= e.Amount
		}
	}
	return balance
}

// UnknownEntryTypes returns the distinct entry types in the sequence that
// CalculateBalance ignores, in first-seen order. Forward-compatible or
// corrupted entries must not crash the fold, but they should not be swallowed
// silently either.
func UnknownEntryTypes(entries []LedgerEntry) []EntryType {
	var unknown []EntryType
	seen := make(map[EntryType]bool)
	for _, e := range entries {
		if KnownEntryType(e.Type) || seen[e.Type] {
			continue
		}
		seen[e.Type] = true
		unknown = append(unknown, e.Type)
	}
	return unknown
}
