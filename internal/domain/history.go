package domain

// History is the append-only list of plans generated during one session.
// It carries no locking; the owner serialises access.
type History struct {
	plans []Plan
}

// Append stores a copy of p at the end of the history and returns its
// 1-based position.
func (h *History) Append(p Plan) int {
	h.plans = append(h.plans, p.Clone())
	return len(h.plans)
}

// Len returns the number of stored plans.
func (h *History) Len() int {
	return len(h.plans)
}

// Plans returns a deep copy of the history in insertion order.
func (h *History) Plans() []Plan {
	out := make([]Plan, len(h.plans))
	for i, p := range h.plans {
		out[i] = p.Clone()
	}
	return out
}

// Reverse returns a copy of plans, most recent first.
func Reverse(plans []Plan) []Plan {
	out := make([]Plan, len(plans))
	for i, p := range plans {
		out[len(plans)-1-i] = p
	}
	return out
}
