package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/middleware"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
	filestore "github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/repository/file"
	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/service"
)

// stubCatalog answers catalog lookups from a fixed table.
type stubCatalog struct {
	movies map[string]*model.MovieDetails
}

func (s *stubCatalog) FetchPopular(ctx context.Context, limit, page string) (model.Paginated[model.MovieSummary], error) {
	return model.Paginated[model.MovieSummary]{Items: []model.MovieSummary{}}, nil
}

func (s *stubCatalog) FetchByName(ctx context.Context, query, limit, page string) (model.Paginated[model.MovieSummary], error) {
	return model.Paginated[model.MovieSummary]{Items: []model.MovieSummary{}}, nil
}

func (s *stubCatalog) FetchDetails(ctx context.Context, movieID string) (*model.MovieDetails, error) {
	if details, ok := s.movies[movieID]; ok {
		return details, nil
	}
	return nil, model.NewArgumentNotFound("movie")
}

// newTestAPI wires the real handlers, services and file stores behind the
// production routing.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	log := zap.NewNop()
	dir := t.TempDir()
	groupStore := filestore.NewGroupStore(dir, log)
	userStore := filestore.NewUserStore(dir, log)

	catalog := &stubCatalog{movies: map[string]*model.MovieDetails{
		"tt0468569": {ID: "tt0468569", Title: "The Dark Knight", Year: "2008", DurationMinutes: 152},
	}}

	userService := service.NewUserService(service.UserServiceConfig{Users: userStore})
	groupService := service.NewGroupService(service.GroupServiceConfig{
		Users:  userService,
		Groups: groupStore,
		Movies: catalog,
	})

	userHandler := NewUserHandler(userService)
	groupHandler := NewGroupHandler(groupService)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Route("/groups", func(r chi.Router) {
			r.Use(middleware.BearerToken)
			r.Post("/", groupHandler.Create)
			r.Get("/", groupHandler.List)
			r.Get("/{groupID}", groupHandler.Get)
			r.Put("/{groupID}", groupHandler.Update)
			r.Delete("/{groupID}", groupHandler.Delete)
			r.Put("/{groupID}/movies/{movieID}", groupHandler.AddMovie)
			r.Delete("/{groupID}/movies/{movieID}", groupHandler.RemoveMovie)
		})
	})
	return r
}

func do(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, h http.Handler, username string) string {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/users", "", model.RegisterUserRequest{
		Username: username,
		Password: "s3cret",
		Email:    username + "@example.org",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	require.NotEmpty(t, user.Token)
	return user.Token
}

func TestAPI_RegisterLoginFlow(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	registerUser(t, api, "alice")

	rec := do(t, api, http.MethodPost, "/api/login", "", model.LoginRequest{Username: "alice", Password: "s3cret"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password", "hash must not leak in responses")

	rec = do(t, api, http.MethodPost, "/api/login", "", model.LoginRequest{Username: "alice", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAPI_GroupLifecycle(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	token := registerUser(t, api, "alice")

	rec := do(t, api, http.MethodPost, "/api/groups/", token, model.GroupRequest{Name: "Favourites", Description: "rewatch"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var group model.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &group))

	rec = do(t, api, http.MethodPut, "/api/groups/"+group.ID+"/movies/tt0468569", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, api, http.MethodGet, "/api/groups/"+group.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var details model.GroupDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, 152, details.MoviesTotalDuration)
	require.Len(t, details.Movies.Items, 1)

	// Adding the same movie twice is a client error.
	rec = do(t, api, http.MethodPut, "/api/groups/"+group.ID+"/movies/tt0468569", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A movie the catalog does not know cannot be added.
	rec = do(t, api, http.MethodPut, "/api/groups/"+group.ID+"/movies/tt9999999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, api, http.MethodDelete, "/api/groups/"+group.ID+"/movies/tt0468569", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, api, http.MethodDelete, "/api/groups/"+group.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, api, http.MethodGet, "/api/groups/"+group.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	aliceToken := registerUser(t, api, "alice")
	bobToken := registerUser(t, api, "bob")

	rec := do(t, api, http.MethodPost, "/api/groups/", aliceToken, model.GroupRequest{Name: "mine", Description: "d"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var group model.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &group))

	// Bob cannot see, edit or delete Alice's group.
	rec = do(t, api, http.MethodGet, "/api/groups/"+group.ID, bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, api, http.MethodPut, "/api/groups/"+group.ID, bobToken, model.GroupRequest{Name: "x", Description: "y"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, api, http.MethodDelete, "/api/groups/"+group.ID, bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Bob's listing does not include it either.
	rec = do(t, api, http.MethodGet, "/api/groups/", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page model.Paginated[model.GroupSummary]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Items)
}

func TestAPI_AuthFailures(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	// No Authorization header at all.
	rec := do(t, api, http.MethodGet, "/api/groups/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Well-formed header, token that matches nobody.
	rec = do(t, api, http.MethodGet, "/api/groups/", "unknown-token", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_InvalidBodies(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	token := registerUser(t, api, "alice")

	req := httptest.NewRequest(http.MethodPost, "/api/groups/", bytes.NewReader([]byte(`{not json`)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown fields are rejected.
	req = httptest.NewRequest(http.MethodPost, "/api/groups/", bytes.NewReader([]byte(`{"name":"a","description":"b","extra":true}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Empty name or description fails validation.
	rec = do(t, api, http.MethodPost, "/api/groups/", token, model.GroupRequest{Name: "", Description: "d"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
