// Package repository defines the storage contracts shared by the file-backed
// and SurrealDB-backed implementations. Both backends must preserve the same
// failure ordering on group operations: existence check first, then ownership,
// then content-level checks (duplicate or missing movie).
package repository

import (
	"context"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/pagination"
)

// Groups is the resource store contract over the group aggregate. Limit and
// page are raw query values; pagination errors propagate unchanged.
type Groups interface {
	// Create persists a new group owned by ownerID with an empty movie list
	// and a store-assigned id.
	Create(ctx context.Context, name, description, ownerID string) (*model.Group, error)

	// List returns one page of the caller's groups. Ownership filtering
	// happens before pagination.
	List(ctx context.Context, ownerID, limit, page string) (model.Paginated[model.GroupSummary], error)

	// Details returns the detail projection of one group.
	Details(ctx context.Context, groupID, ownerID, limit, page string) (*model.GroupDetails, error)

	// Update overwrites name and description in place; id, owner and movies
	// are untouched.
	Update(ctx context.Context, groupID, ownerID, name, description string) (*model.Group, error)

	// Delete removes the group permanently, cascading over its movies.
	Delete(ctx context.Context, groupID, ownerID string) error

	// AddMovie appends an already-resolved movie to the group. Duplicate
	// movie ids fail with InvalidArgument.
	AddMovie(ctx context.Context, groupID, ownerID string, movie model.MovieInGroup) (*model.MovieInGroup, error)

	// RemoveMovie removes one movie reference from the group.
	RemoveMovie(ctx context.Context, groupID, movieID, ownerID string) error
}

// Users is the user directory contract. Lookup methods return (nil, nil) when
// no user matches; Create assigns a unique id and bearer token.
type Users interface {
	Create(ctx context.Context, username, password, email string) (*model.User, error)
	GetByToken(ctx context.Context, token string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// GroupDetails builds the detail projection of a group: total duration over
// the full movie list, then one page of movie summaries. Shared by both
// backends so the projection cannot drift between them.
func GroupDetails(g *model.Group, limit, page string) (*model.GroupDetails, error) {
	summaries := make([]model.MovieSummary, 0, len(g.Movies))
	for _, m := range g.Movies {
		summaries = append(summaries, model.MovieSummary{ID: m.ID, Title: m.Title})
	}

	paged, err := pagination.Paginate(summaries, limit, page)
	if err != nil {
		return nil, err
	}

	return &model.GroupDetails{
		Name:                g.Name,
		Description:         g.Description,
		Movies:              paged,
		MoviesTotalDuration: g.TotalDuration(),
	}, nil
}
