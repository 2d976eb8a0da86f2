package posts

import (
	"strings"
)

// Predicate is a single condition on posts.
// Repositories translate the concrete predicate types below into queries;
// Matches gives the same semantics for in-memory use.
type Predicate interface {
	Matches(p *Post) bool
}

// IDBefore matches posts with id strictly below ID
type IDBefore struct{ ID int64 }

// IDAfter matches posts with id strictly above ID
type IDAfter struct{ ID int64 }

// AuthoredBy matches posts written by UserID
type AuthoredBy struct{ UserID int64 }

func (c IDBefore) Matches(p *Post) bool   { return p.ID < c.ID }
func (c IDAfter) Matches(p *Post) bool    { return p.ID > c.ID }
func (c AuthoredBy) Matches(p *Post) bool { return p.UserID == c.UserID }

// Filter is an ordered list of predicates combined with AND.
// The empty filter matches every post.
type Filter []Predicate

// And returns a new filter with pred appended
func (f Filter) And(pred Predicate) Filter {
	out := make(Filter, 0, len(f)+1)
	out = append(out, f...)
	return append(out, pred)
}

// Matches reports whether every predicate matches p
func (f Filter) Matches(p *Post) bool {
	for _, pred := range f {
		if !pred.Matches(p) {
			return false
		}
	}
	return true
}

// Sort orders posts by id. Id order is creation order.
type Sort struct {
	Ascending bool
}

// DefaultSort lists newest posts first
var DefaultSort = Sort{Ascending: false}

// ParseSort reads a "field,direction" value such as "id,desc".
// Only id ordering is supported; other fields fall back to id.
// An empty or unrecognised direction yields DefaultSort.
func ParseSort(raw string) Sort {
	parts := strings.Split(raw, ",")
	if len(parts) < 2 {
		return DefaultSort
	}
	switch strings.ToLower(strings.TrimSpace(parts[len(parts)-1])) {
	case "asc":
		return Sort{Ascending: true}
	default:
		return DefaultSort
	}
}

// Less reports whether a sorts before b
func (s Sort) Less(a, b *Post) bool {
	if s.Ascending {
		return a.ID < b.ID
	}
	return a.ID > b.ID
}
