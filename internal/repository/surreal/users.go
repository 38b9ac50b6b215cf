package surreal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/database"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository"
)

// UserStore persists users in the "user" table.
type UserStore struct {
	db  database.Database
	log *zap.Logger
}

// NewUserStore creates a user store over db.
func NewUserStore(db database.Database, log *zap.Logger) *UserStore {
	return &UserStore{db: db, log: log}
}

var _ repository.Users = (*UserStore)(nil)

func (s *UserStore) Create(ctx context.Context, username, password, email string) (*model.User, error) {
	existing, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, model.NewInvalidArgument("username already exists")
	}

	query := `CREATE user CONTENT {
		username: $username,
		password: $password,
		email: $email,
		token: $token
	}`
	vars := map[string]interface{}{
		"username": username,
		"password": password,
		"email":    email,
		"token":    uuid.NewString(),
	}

	results, err := s.db.Query(ctx, query, vars)
	if err != nil {
		return nil, model.NewInternal("creating user", err)
	}

	recs := records(results)
	if len(recs) == 0 {
		return nil, model.NewInternal("creating user", database.ErrQuery)
	}

	var user model.User
	if err := decodeRecord(recs[0], &user); err != nil {
		return nil, model.NewInternal("decoding created user", err)
	}

	s.log.Debug("user created", zap.String("id", user.ID), zap.String("username", username))
	return &user, nil
}

func (s *UserStore) GetByToken(ctx context.Context, token string) (*model.User, error) {
	return s.findOne(ctx, `SELECT * FROM user WHERE token = $value LIMIT 1`, token)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findOne(ctx, `SELECT * FROM user WHERE username = $value LIMIT 1`, username)
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.findOne(ctx, `SELECT * FROM user WHERE email = $value LIMIT 1`, email)
}

func (s *UserStore) findOne(ctx context.Context, query, value string) (*model.User, error) {
	result, err := s.db.QueryOne(ctx, query, map[string]interface{}{"value": value})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, model.NewInternal("querying user", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}

	var user model.User
	if err := decodeRecord(data, &user); err != nil {
		return nil, model.NewInternal("decoding user", err)
	}
	return &user, nil
}
