package model

// MovieInGroup is a movie reference stored inside a group. The id is the
// external catalog identifier; duration is always expressed in minutes
// (conversion from catalog field names happens at the gateway boundary).
type MovieInGroup struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
}

// MovieSummary is the catalog list projection of a movie.
type MovieSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// MovieDetails is the full catalog record of a movie.
type MovieDetails struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Year            string `json:"year,omitempty"`
	ImageURL        string `json:"imageUrl,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Summary returns the list projection of d.
func (d *MovieDetails) Summary() MovieSummary {
	return MovieSummary{ID: d.ID, Title: d.Title}
}

// InGroup converts catalog details into the stored group representation.
func (d *MovieDetails) InGroup() MovieInGroup {
	return MovieInGroup{ID: d.ID, Title: d.Title, DurationMinutes: d.DurationMinutes}
}
