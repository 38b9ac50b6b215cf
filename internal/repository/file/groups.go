package file

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/pagination"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
)

// groupsDocument is the persisted layout of groups.json.
type groupsDocument struct {
	IDs    int           `json:"IDs"`
	Groups []model.Group `json:"groups"`
}

// GroupStore persists groups in a single JSON document. The RWMutex spans
// every read-modify-write cycle so concurrent mutations on the shared
// document cannot lose updates; reads take the shared lock for a consistent
// snapshot.
type GroupStore struct {
	path string
	mu   sync.RWMutex
	log  *zap.Logger
}

// NewGroupStore creates a store over <dir>/groups.json.
func NewGroupStore(dir string, log *zap.Logger) *GroupStore {
	return &GroupStore{path: filepath.Join(dir, "groups.json"), log: log}
}

var _ repository.Groups = (*GroupStore)(nil)

func (s *GroupStore) Create(ctx context.Context, name, description, ownerID string) (*model.Group, error) {
	if name == "" || description == "" {
		return nil, model.NewInvalidArgument("group missing a valid name and description")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var doc groupsDocument
	if err := load(s.path, &doc); err != nil {
		return nil, model.NewInternal("loading groups document", err)
	}

	doc.IDs++
	group := model.Group{
		ID:          strconv.Itoa(doc.IDs),
		Name:        name,
		Description: description,
		UserID:      ownerID,
		Movies:      []model.MovieInGroup{},
	}
	doc.Groups = append(doc.Groups, group)

	if err := save(s.path, &doc); err != nil {
		return nil, model.NewInternal("saving groups document", err)
	}

	s.log.Debug("group created", zap.String("id", group.ID), zap.String("owner", ownerID))
	return &group, nil
}

func (s *GroupStore) List(ctx context.Context, ownerID, limit, page string) (model.Paginated[model.GroupSummary], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc groupsDocument
	if err := load(s.path, &doc); err != nil {
		return model.Paginated[model.GroupSummary]{}, model.NewInternal("loading groups document", err)
	}

	// Ownership filter runs before pagination.
	owned := make([]model.GroupSummary, 0)
	for i := range doc.Groups {
		if doc.Groups[i].UserID == ownerID {
			owned = append(owned, doc.Groups[i].Summary())
		}
	}

	return pagination.Paginate(owned, limit, page)
}

func (s *GroupStore) Details(ctx context.Context, groupID, ownerID, limit, page string) (*model.GroupDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc groupsDocument
	if err := load(s.path, &doc); err != nil {
		return nil, model.NewInternal("loading groups document", err)
	}

	group, err := findOwned(&doc, groupID, ownerID)
	if err != nil {
		return nil, err
	}

	return repository.GroupDetails(group, limit, page)
}

func (s *GroupStore) Update(ctx context.Context, groupID, ownerID, name, description string) (*model.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc groupsDocument
	if err := load(s.path, &doc); err != nil {
		return nil, model.NewInternal("loading groups document", err)
	}

	group, err := findOwned(&doc, groupID, ownerID)
	if err != nil {
		return nil, err
	}

	group.Name = name
	group.Description = description

	if err := save(s.path, &doc); err != nil {
		return nil, model.NewInternal("saving groups document", err)
	}

	updated := *group
	return &updated, nil
}

func (s *GroupStore) Delete(ctx context.Context, groupID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc groupsDocument
	if err := load(s.path, &doc); err != nil {
		return model.NewInternal("loading groups document", err)
	}

	if _, err := findOwned(&doc, groupID, ownerID); err != nil {
		return err
	}

	kept := doc.Groups[:0]
	for i := range doc.Groups {
		if doc.Groups[i].ID != groupID {
			kept = append(kept, doc.Groups[i])
		}
	}
	doc.Groups = kept

	if err := save(s.path, &doc); err != nil {
		return model.NewInternal("saving groups document", err)
	}

	s.log.Debug("group deleted", zap.String("id", groupID))
	return nil
}

func (s *GroupStore) AddMovie(ctx context.Context, groupID, ownerID string, movie model.MovieInGroup) (*model.MovieInGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc groupsDocument
	if err := load(s.path, &doc); err != nil {
		return nil, model.NewInternal("loading groups document", err)
	}

	group, err := findOwned(&doc, groupID, ownerID)
	if err != nil {
		return nil, err
	}
	if group.HasMovie(movie.ID) {
		return nil, model.NewInvalidArgument("movie already exists in this group")
	}

	group.Movies = append(group.Movies, movie)

	if err := save(s.path, &doc); err != nil {
		return nil, model.NewInternal("saving groups document", err)
	}

	added := movie
	return &added, nil
}

func (s *GroupStore) RemoveMovie(ctx context.Context, groupID, movieID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc groupsDocument
	if err := load(s.path, &doc); err != nil {
		return model.NewInternal("loading groups document", err)
	}

	group, err := findOwned(&doc, groupID, ownerID)
	if err != nil {
		return err
	}
	if !group.HasMovie(movieID) {
		return model.NewArgumentNotFound("movie")
	}

	kept := group.Movies[:0]
	for _, m := range group.Movies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	group.Movies = kept

	if err := save(s.path, &doc); err != nil {
		return model.NewInternal("saving groups document", err)
	}
	return nil
}

// findOwned locates a group and enforces the failure ordering: a missing
// group reports not-found before ownership is ever considered.
func findOwned(doc *groupsDocument, groupID, ownerID string) (*model.Group, error) {
	for i := range doc.Groups {
		if doc.Groups[i].ID == groupID {
			if doc.Groups[i].UserID != ownerID {
				return nil, model.NewInvalidUser("userId")
			}
			return &doc.Groups[i], nil
		}
	}
	return nil, model.NewArgumentNotFound("group")
}
