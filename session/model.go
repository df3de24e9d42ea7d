package session

// Snapshot defines a public type used by goAuthClient APIs.
//
// Snapshot instances are intended to be treated as immutable values: the
// engine replaces the whole snapshot on every refresh rather than mutating
// fields of a live one.
type Snapshot struct {
	HasSession       bool
	AccountIDs       []string
	CurrentAccountID string
	Valid            bool
}

// Normalize enforces the structural invariants of a snapshot: the current
// account id must be a member of AccountIDs (or empty), and an empty
// AccountIDs list forces HasSession to false.
func (s Snapshot) Normalize() Snapshot {
	if len(s.AccountIDs) == 0 {
		s.HasSession = false
		s.CurrentAccountID = ""
		return s
	}
	if s.CurrentAccountID != "" && !s.Contains(s.CurrentAccountID) {
		s.CurrentAccountID = ""
	}
	return s
}

// Contains reports whether id is a member of the snapshot's account list.
func (s Snapshot) Contains(id string) bool {
	for _, existing := range s.AccountIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// Without returns a copy of the snapshot with id removed. When id was
// current, the first remaining account not excluded by skip is promoted to
// current; skip may be nil. When every remaining account is excluded the
// current pointer is left empty rather than landing on an excluded id.
func (s Snapshot) Without(id string, skip func(string) bool) Snapshot {
	ids := make([]string, 0, len(s.AccountIDs))
	for _, existing := range s.AccountIDs {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	next := Snapshot{
		HasSession:       len(ids) > 0,
		AccountIDs:       ids,
		CurrentAccountID: s.CurrentAccountID,
		Valid:            s.Valid,
	}
	if next.CurrentAccountID == id {
		next.CurrentAccountID = ""
		for _, candidate := range ids {
			if skip == nil || !skip(candidate) {
				next.CurrentAccountID = candidate
				break
			}
		}
	}
	return next.Normalize()
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.AccountIDs = append([]string(nil), s.AccountIDs...)
	return out
}
