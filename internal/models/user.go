package models

// User represents a member of the roster.
// Users are created at bootstrap and never deleted.
type User struct {
	// ID is the opaque identifier for the user (e.g. "user-1").
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address, used for the roster login lookup.
	Email string `json:"email"`

	// Avatar is a reference (URL) to the user's avatar image.
	Avatar string `json:"avatar"`
}

// FirstName returns the first word of the user's display name.
func (u User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}
