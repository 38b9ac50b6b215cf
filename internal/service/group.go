package service

import (
	"context"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
)

// MovieResolver resolves a catalog movie id to its full details. Satisfied by
// the catalog gateway.
type MovieResolver interface {
	FetchDetails(ctx context.Context, movieID string) (*model.MovieDetails, error)
}

// GroupService composes the user directory, the resource store and the
// catalog gateway into the group operations. Every operation resolves the
// bearer token to an internal identity first and passes that identity to the
// store explicitly; the store enforces ownership against it.
type GroupService struct {
	users  *UserService
	groups repository.Groups
	movies MovieResolver
}

// GroupServiceConfig holds configuration for the group service.
type GroupServiceConfig struct {
	Users  *UserService
	Groups repository.Groups
	Movies MovieResolver
}

// NewGroupService creates a new group service.
func NewGroupService(cfg GroupServiceConfig) *GroupService {
	return &GroupService{
		users:  cfg.Users,
		groups: cfg.Groups,
		movies: cfg.Movies,
	}
}

// Create validates the payload and persists a new group owned by the caller.
// Invalid payloads never reach storage.
func (s *GroupService) Create(ctx context.Context, token string, req model.GroupRequest) (*model.Group, error) {
	user, err := s.users.RequireByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := validateGroupRequest(req); err != nil {
		return nil, err
	}
	return s.groups.Create(ctx, req.Name, req.Description, user.ID)
}

// List returns one page of the caller's groups.
func (s *GroupService) List(ctx context.Context, token, limit, page string) (model.Paginated[model.GroupSummary], error) {
	user, err := s.users.RequireByToken(ctx, token)
	if err != nil {
		return model.Paginated[model.GroupSummary]{}, err
	}
	return s.groups.List(ctx, user.ID, limit, page)
}

// Details returns the detail projection of one of the caller's groups.
func (s *GroupService) Details(ctx context.Context, token, groupID, limit, page string) (*model.GroupDetails, error) {
	user, err := s.users.RequireByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.groups.Details(ctx, groupID, user.ID, limit, page)
}

// Update overwrites the name and description of one of the caller's groups.
func (s *GroupService) Update(ctx context.Context, token, groupID string, req model.GroupRequest) (*model.Group, error) {
	user, err := s.users.RequireByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := validateGroupRequest(req); err != nil {
		return nil, err
	}
	return s.groups.Update(ctx, groupID, user.ID, req.Name, req.Description)
}

// Delete removes one of the caller's groups permanently.
func (s *GroupService) Delete(ctx context.Context, token, groupID string) error {
	user, err := s.users.RequireByToken(ctx, token)
	if err != nil {
		return err
	}
	return s.groups.Delete(ctx, groupID, user.ID)
}

// AddMovie resolves the movie against the catalog first, then appends it to
// the group. A failed catalog lookup propagates without touching the store.
func (s *GroupService) AddMovie(ctx context.Context, token, groupID, movieID string) (*model.MovieInGroup, error) {
	user, err := s.users.RequireByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	details, err := s.movies.FetchDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}

	return s.groups.AddMovie(ctx, groupID, user.ID, details.InGroup())
}

// RemoveMovie removes one movie reference from the group.
func (s *GroupService) RemoveMovie(ctx context.Context, token, groupID, movieID string) error {
	user, err := s.users.RequireByToken(ctx, token)
	if err != nil {
		return err
	}
	return s.groups.RemoveMovie(ctx, groupID, movieID, user.ID)
}

func validateGroupRequest(req model.GroupRequest) error {
	if req.Name == "" || req.Description == "" {
		return model.NewInvalidArgument("group missing a valid name and description")
	}
	return nil
}
