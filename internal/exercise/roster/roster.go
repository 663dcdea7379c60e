// Package roster bundles the chapter 8 maps exercise: an in-memory
// department roster behind a tiny REPL. Everything lives in a nested
// map and vanishes when the session ends.
package roster

import "sort"

// Roster groups people by department. The zero value is not usable,
// construct with New.
type Roster struct {
	depts map[string]map[string]bool
}

// New returns an empty roster.
func New() *Roster {
	return &Roster{depts: make(map[string]map[string]bool)}
}

// Add puts name into dept, creating the department on first use. It
// reports false when the person is already there.
func (r *Roster) Add(name, dept string) bool {
	people := r.depts[dept]
	if people == nil {
		people = make(map[string]bool)
		r.depts[dept] = people
	}
	if people[name] {
		return false
	}
	people[name] = true
	return true
}

// List returns the department's people sorted by name, and whether the
// department exists at all.
func (r *Roster) List(dept string) ([]string, bool) {
	people, ok := r.depts[dept]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(people))
	for name := range people {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// Depts returns the department names in sorted order.
func (r *Roster) Depts() []string {
	names := make([]string, 0, len(r.depts))
	for dept := range r.depts {
		names = append(names, dept)
	}
	sort.Strings(names)
	return names
}

// Size returns the total number of people across all departments.
func (r *Roster) Size() int {
	total := 0
	for _, people := range r.depts {
		total += len(people)
	}
	return total
}
