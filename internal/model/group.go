package model

// Group is a user-owned named collection of movie references. UserID is set
// exactly once at creation and never changes; every read/update/delete must
// verify the caller's resolved identity against it.
type Group struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	UserID      string         `json:"userId"`
	Movies      []MovieInGroup `json:"movies"`
}

// GroupSummary is the list projection of a group.
type GroupSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GroupDetails is the detail projection of a group. MoviesTotalDuration sums
// durationMinutes over ALL movies in the group, not just the current page.
type GroupDetails struct {
	Name                string                  `json:"name"`
	Description         string                  `json:"description"`
	Movies              Paginated[MovieSummary] `json:"movies"`
	MoviesTotalDuration int                     `json:"moviesTotalDuration"`
}

// GroupRequest is the body of group create/edit calls.
type GroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Summary returns the list projection of g.
func (g *Group) Summary() GroupSummary {
	return GroupSummary{ID: g.ID, Name: g.Name, Description: g.Description}
}

// HasMovie reports whether a movie with the given id is already in the group.
func (g *Group) HasMovie(movieID string) bool {
	for _, m := range g.Movies {
		if m.ID == movieID {
			return true
		}
	}
	return false
}

// TotalDuration sums the duration of every movie in the group.
func (g *Group) TotalDuration() int {
	total := 0
	for _, m := range g.Movies {
		total += m.DurationMinutes
	}
	return total
}
