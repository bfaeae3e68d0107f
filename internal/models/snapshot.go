package models

// Snapshot is the full ledger state: every user, group and expense.
// It is what the persistence layer loads and saves.
type Snapshot struct {
	Users    []User    `json:"users"`
	Groups   []Group   `json:"groups"`
	Expenses []Expense `json:"expenses"`
}

// Clone returns a deep copy of the snapshot so callers can never alias the
// ledger's internal slices.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := &Snapshot{
		Users:    append([]User(nil), s.Users...),
		Groups:   make([]Group, len(s.Groups)),
		Expenses: make([]Expense, len(s.Expenses)),
	}
	for i, g := range s.Groups {
		g.Members = append([]string(nil), g.Members...)
		out.Groups[i] = g
	}
	for i, e := range s.Expenses {
		e.Splits = append([]Split(nil), e.Splits...)
		out.Expenses[i] = e
	}
	return out
}
