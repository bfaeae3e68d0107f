package models

import "time"

// Group represents a set of users who share expenses.
// Groups are never deleted or edited once created.
type Group struct {
	// ID is the unique identifier for the group.
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Bangalore Flat 402").
	Name string `json:"name"`

	// Members is the ordered list of member user IDs.
	// IDs are unique; the order defines the default split order.
	Members []string `json:"members"`

	// Type is a free-text tag (e.g., "Home", "Trip").
	Type string `json:"type"`

	// CreatedAt is when the group was created.
	CreatedAt time.Time `json:"created_at"`
}

// HasMember reports whether userID is a member of the group.
func (g Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
