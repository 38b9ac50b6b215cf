package surreal

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/database"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/pagination"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
)

const groupTable = "group"

// GroupStore persists groups in the "group" table. Movie mutations are
// read-modify-write cycles serialized per group by a keyed mutex; everything
// else is a single statement.
type GroupStore struct {
	db    database.Database
	locks keyedMutex
	log   *zap.Logger
}

// NewGroupStore creates a group store over db.
func NewGroupStore(db database.Database, log *zap.Logger) *GroupStore {
	return &GroupStore{db: db, log: log}
}

var _ repository.Groups = (*GroupStore)(nil)

func (s *GroupStore) Create(ctx context.Context, name, description, ownerID string) (*model.Group, error) {
	if name == "" || description == "" {
		return nil, model.NewInvalidArgument("group missing a valid name and description")
	}

	query := `CREATE group CONTENT {
		name: $name,
		description: $description,
		userId: $userId,
		movies: []
	}`
	vars := map[string]interface{}{
		"name":        name,
		"description": description,
		"userId":      ownerID,
	}

	results, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return nil, model.NewInternal("creating group", err)
	}

	recs := records(results)
	if len(recs) == 0 {
		return nil, model.NewInternal("creating group", database.ErrQuery)
	}

	var group model.Group
	if err := decodeRecord(recs[0], &group); err != nil {
		return nil, model.NewInternal("decoding created group", err)
	}
	if group.Movies == nil {
		group.Movies = []model.MovieInGroup{}
	}

	s.log.Debug("group created", zap.String("id", group.ID), zap.String("owner", ownerID))
	return &group, nil
}

func (s *GroupStore) List(ctx context.Context, ownerID, limit, page string) (model.Paginated[model.GroupSummary], error) {
	query := `SELECT id, name, description FROM group WHERE userId = $userId`
	vars := map[string]interface{}{"userId": ownerID}

	results, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return model.Paginated[model.GroupSummary]{}, model.NewInternal("listing groups", err)
	}

	owned := make([]model.GroupSummary, 0)
	for _, rec := range records(results) {
		var summary model.GroupSummary
		if err := decodeRecord(rec, &summary); err != nil {
			return model.Paginated[model.GroupSummary]{}, model.NewInternal("decoding group", err)
		}
		owned = append(owned, summary)
	}

	return pagination.Paginate(owned, limit, page)
}

func (s *GroupStore) Details(ctx context.Context, groupID, ownerID, limit, page string) (*model.GroupDetails, error) {
	group, err := s.fetchOwned(ctx, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	return repository.GroupDetails(group, limit, page)
}

func (s *GroupStore) Update(ctx context.Context, groupID, ownerID, name, description string) (*model.Group, error) {
	group, err := s.fetchOwned(ctx, groupID, ownerID)
	if err != nil {
		return nil, err
	}

	query := `UPDATE type::record($id) SET name = $name, description = $description`
	vars := map[string]interface{}{
		"id":          recordID(groupTable, groupID),
		"name":        name,
		"description": description,
	}
	if err := s.db.Execute(ctx, query, vars); err != nil {
		return nil, model.NewInternal("updating group", err)
	}

	group.Name = name
	group.Description = description
	return group, nil
}

func (s *GroupStore) Delete(ctx context.Context, groupID, ownerID string) error {
	if _, err := s.fetchOwned(ctx, groupID, ownerID); err != nil {
		return err
	}

	query := `DELETE type::record($id)`
	vars := map[string]interface{}{"id": recordID(groupTable, groupID)}
	if err := s.db.Execute(ctx, query, vars); err != nil {
		return model.NewInternal("deleting group", err)
	}

	s.log.Debug("group deleted", zap.String("id", groupID))
	return nil
}

func (s *GroupStore) AddMovie(ctx context.Context, groupID, ownerID string, movie model.MovieInGroup) (*model.MovieInGroup, error) {
	unlock := s.locks.lock(groupID)
	defer unlock()

	group, err := s.fetchOwned(ctx, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if group.HasMovie(movie.ID) {
		return nil, model.NewInvalidArgument("movie already exists in this group")
	}

	group.Movies = append(group.Movies, movie)
	if err := s.writeMovies(ctx, groupID, group.Movies); err != nil {
		return nil, err
	}

	added := movie
	return &added, nil
}

func (s *GroupStore) RemoveMovie(ctx context.Context, groupID, movieID, ownerID string) error {
	unlock := s.locks.lock(groupID)
	defer unlock()

	group, err := s.fetchOwned(ctx, groupID, ownerID)
	if err != nil {
		return err
	}
	if !group.HasMovie(movieID) {
		return model.NewArgumentNotFound("movie")
	}

	kept := make([]model.MovieInGroup, 0, len(group.Movies))
	for _, m := range group.Movies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}

	return s.writeMovies(ctx, groupID, kept)
}

func (s *GroupStore) writeMovies(ctx context.Context, groupID string, movies []model.MovieInGroup) error {
	list := make([]interface{}, 0, len(movies))
	for _, m := range movies {
		list = append(list, map[string]interface{}{
			"id":              m.ID,
			"title":           m.Title,
			"durationMinutes": m.DurationMinutes,
		})
	}

	query := `UPDATE type::record($id) SET movies = $movies`
	vars := map[string]interface{}{
		"id":     recordID(groupTable, groupID),
		"movies": list,
	}
	if err := s.db.Execute(ctx, query, vars); err != nil {
		return model.NewInternal("updating group movies", err)
	}
	return nil
}

// fetchOwned loads a group and enforces the failure ordering: a missing
// record reports not-found before ownership is ever considered.
func (s *GroupStore) fetchOwned(ctx context.Context, groupID, ownerID string) (*model.Group, error) {
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": recordID(groupTable, groupID)}

	result, err := s.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, model.NewArgumentNotFound("group")
		}
		return nil, model.NewInternal("fetching group", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, model.NewArgumentNotFound("group")
	}

	var group model.Group
	if err := decodeRecord(data, &group); err != nil {
		return nil, model.NewInternal("decoding group", err)
	}
	if group.Movies == nil {
		group.Movies = []model.MovieInGroup{}
	}

	if group.UserID != ownerID {
		return nil, model.NewInvalidUser("userId")
	}
	return &group, nil
}
