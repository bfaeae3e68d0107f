package assistant

import (
	"regexp"
	"strings"

	"github.com/mmynk/splitsense/internal/models"
)

var (
	nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace    = regexp.MustCompile(`\s`)
	selfReference = regexp.MustCompile(`(?i)\b(me|my|i)\b`)
)

// squash lowercases s and drops everything but letters and digits,
// so "Goa Trip" and "group-1" become "goatrip" and "group1".
func squash(s string) string {
	s = nonAlnumSpace.ReplaceAllString(strings.ToLower(s), "")
	return whitespace.ReplaceAllString(s, "")
}

// entities are the group and users a question mentions.
type entities struct {
	group *models.Group
	users []models.User
}

// extractEntities matches groups by squashed name or ID and users by first
// name, squashed ID, or a self reference ("me", "my", "I") for the acting user.
// The first matching group wins; users keep roster order.
func extractEntities(input string, snap *models.Snapshot, actingUserID string) entities {
	var found entities
	lower := strings.ToLower(input)
	squashed := squash(input)

	for i := range snap.Groups {
		g := snap.Groups[i]
		if containsNonEmpty(squashed, squash(g.Name)) || containsNonEmpty(squashed, squash(g.ID)) {
			found.group = &g
			break
		}
	}

	self := selfReference.MatchString(input)
	for _, u := range snap.Users {
		switch {
		case u.ID == actingUserID && self,
			containsNonEmpty(lower, strings.ToLower(u.FirstName())),
			containsNonEmpty(squashed, squash(u.ID)):
			found.users = append(found.users, u)
		}
	}
	return found
}

// containsNonEmpty reports whether needle is a non-empty substring of s.
func containsNonEmpty(s, needle string) bool {
	return needle != "" && strings.Contains(s, needle)
}
