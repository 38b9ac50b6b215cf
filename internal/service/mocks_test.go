package service

import (
	"context"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
)

// mockUsers implements repository.Users with overridable behavior per test.
type mockUsers struct {
	CreateFn        func(ctx context.Context, username, password, email string) (*model.User, error)
	GetByTokenFn    func(ctx context.Context, token string) (*model.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	GetByEmailFn    func(ctx context.Context, email string) (*model.User, error)
}

var _ repository.Users = (*mockUsers)(nil)

func (m *mockUsers) Create(ctx context.Context, username, password, email string) (*model.User, error) {
	if m.CreateFn == nil {
		return nil, nil
	}
	return m.CreateFn(ctx, username, password, email)
}

func (m *mockUsers) GetByToken(ctx context.Context, token string) (*model.User, error) {
	if m.GetByTokenFn == nil {
		return nil, nil
	}
	return m.GetByTokenFn(ctx, token)
}

func (m *mockUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(ctx, username)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(ctx, email)
}

// mockGroups implements repository.Groups with overridable behavior per test.
type mockGroups struct {
	CreateFn      func(ctx context.Context, name, description, ownerID string) (*model.Group, error)
	ListFn        func(ctx context.Context, ownerID, limit, page string) (model.Paginated[model.GroupSummary], error)
	DetailsFn     func(ctx context.Context, groupID, ownerID, limit, page string) (*model.GroupDetails, error)
	UpdateFn      func(ctx context.Context, groupID, ownerID, name, description string) (*model.Group, error)
	DeleteFn      func(ctx context.Context, groupID, ownerID string) error
	AddMovieFn    func(ctx context.Context, groupID, ownerID string, movie model.MovieInGroup) (*model.MovieInGroup, error)
	RemoveMovieFn func(ctx context.Context, groupID, movieID, ownerID string) error

	calls int
}

var _ repository.Groups = (*mockGroups)(nil)

func (m *mockGroups) Create(ctx context.Context, name, description, ownerID string) (*model.Group, error) {
	m.calls++
	if m.CreateFn == nil {
		return nil, nil
	}
	return m.CreateFn(ctx, name, description, ownerID)
}

func (m *mockGroups) List(ctx context.Context, ownerID, limit, page string) (model.Paginated[model.GroupSummary], error) {
	m.calls++
	if m.ListFn == nil {
		return model.Paginated[model.GroupSummary]{}, nil
	}
	return m.ListFn(ctx, ownerID, limit, page)
}

func (m *mockGroups) Details(ctx context.Context, groupID, ownerID, limit, page string) (*model.GroupDetails, error) {
	m.calls++
	if m.DetailsFn == nil {
		return nil, nil
	}
	return m.DetailsFn(ctx, groupID, ownerID, limit, page)
}

func (m *mockGroups) Update(ctx context.Context, groupID, ownerID, name, description string) (*model.Group, error) {
	m.calls++
	if m.UpdateFn == nil {
		return nil, nil
	}
	return m.UpdateFn(ctx, groupID, ownerID, name, description)
}

func (m *mockGroups) Delete(ctx context.Context, groupID, ownerID string) error {
	m.calls++
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, groupID, ownerID)
}

func (m *mockGroups) AddMovie(ctx context.Context, groupID, ownerID string, movie model.MovieInGroup) (*model.MovieInGroup, error) {
	m.calls++
	if m.AddMovieFn == nil {
		return &movie, nil
	}
	return m.AddMovieFn(ctx, groupID, ownerID, movie)
}

func (m *mockGroups) RemoveMovie(ctx context.Context, groupID, movieID, ownerID string) error {
	m.calls++
	if m.RemoveMovieFn == nil {
		return nil
	}
	return m.RemoveMovieFn(ctx, groupID, movieID, ownerID)
}

// mockResolver implements MovieResolver.
type mockResolver struct {
	FetchDetailsFn func(ctx context.Context, movieID string) (*model.MovieDetails, error)
}

func (m *mockResolver) FetchDetails(ctx context.Context, movieID string) (*model.MovieDetails, error) {
	if m.FetchDetailsFn == nil {
		return &model.MovieDetails{ID: movieID}, nil
	}
	return m.FetchDetailsFn(ctx, movieID)
}
