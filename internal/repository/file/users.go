package file

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
)

// usersDocument is the persisted layout of users.json.
type usersDocument struct {
	IDs   int          `json:"IDs"`
	Users []model.User `json:"users"`
}

// UserStore persists users in a single JSON document.
type UserStore struct {
	path string
	mu   sync.RWMutex
	log  *zap.Logger
}

// NewUserStore creates a store over <dir>/users.json.
func NewUserStore(dir string, log *zap.Logger) *UserStore {
	return &UserStore{path: filepath.Join(dir, "users.json"), log: log}
}

var _ repository.Users = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, username, password, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc usersDocument
	if err := load(s.path, &doc); err != nil {
		return nil, model.NewInternal("loading users document", err)
	}

	for i := range doc.Users {
		if doc.Users[i].Username == username {
			return nil, model.NewInvalidArgument("username already exists")
		}
	}

	doc.IDs++
	user := model.User{
		ID:       strconv.Itoa(doc.IDs),
		Username: username,
		Password: password,
		Email:    email,
		Token:    uuid.NewString(),
	}
	doc.Users = append(doc.Users, user)

	if err := save(s.path, &doc); err != nil {
		return nil, model.NewInternal("saving users document", err)
	}

	s.log.Debug("user created", zap.String("id", user.ID), zap.String("username", username))
	return &user, nil
}

func (s *UserStore) GetByToken(ctx context.Context, token string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Token == token })
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Username == username })
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Email == email })
}

func (s *UserStore) find(match func(*model.User) bool) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc usersDocument
	if err := load(s.path, &doc); err != nil {
		return nil, model.NewInternal("loading users document", err)
	}

	for i := range doc.Users {
		if match(&doc.Users[i]) {
			user := doc.Users[i]
			return &user, nil
		}
	}
	return nil, nil
}
