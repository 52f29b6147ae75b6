package promotion

import "time"

// Promotion is a time-bounded rule loaded from the promotion table.
// Start and End are calendar dates held at UTC midnight.
type Promotion struct {
	Name  string
	Buy   int
	Get   int
	Start time.Time
	End   time.Time
	Kind  Kind
}

// ActiveOn reports whether the calendar date of t, read in t's own location,
// falls inside the inclusive [Start, End] window.
func (p Promotion) ActiveOn(t time.Time) bool {
	day := dateOf(t)
	return !day.Before(p.Start) && !day.After(p.End)
}

// dateOf drops the clock part of t, keeping the calendar date of its own
// location, so windows compare whole days.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Registry answers which promotion is honoured on a given day.
type Registry struct {
	byName map[string]Promotion
}

// NewRegistry indexes promotions by name. When a name repeats, the first
// rule wins.
func NewRegistry(promotions []Promotion) *Registry {
	byName := make(map[string]Promotion, len(promotions))
	for _, p := range promotions {
		if _, dup := byName[p.Name]; dup {
			continue
		}
		byName[p.Name] = p
	}
	return &Registry{byName: byName}
}

// Len returns the number of distinct promotion names.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Lookup returns the rule named name regardless of its window.
func (r *Registry) Lookup(name string) (Promotion, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// ResolveActive returns the rule named name when it is active on asOf.
// An unknown, expired or not-yet-started rule yields false.
func (r *Registry) ResolveActive(name string, asOf time.Time) (Promotion, bool) {
	p, ok := r.byName[name]
	if !ok || !p.ActiveOn(asOf) {
		return Promotion{}, false
	}
	return p, true
}
