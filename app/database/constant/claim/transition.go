package claim

var transitionMap = map[Status][]Status{
	Pending:    {Processing, Rejected},
	Processing: {Approved, Rejected},
}

// ValidTransition reports whether a claim may move from one status to another.
func ValidTransition(from, to Status) bool {
	for _, next := range transitionMap[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from s.
func NextStatuses(s Status) []Status {
	next := transitionMap[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}
