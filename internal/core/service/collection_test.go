package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

type stubProjectAPI struct {
	projects []domain.Project
	listErr  error
	lastTok  string
}

func (s *stubProjectAPI) List(_ context.Context, token string, _ ports.ListQuery) ([]domain.Project, error) {
	s.lastTok = token
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.projects, nil
}

func (s *stubProjectAPI) Get(_ context.Context, _, id string) (*domain.Project, error) {
	return nil, domain.ErrNotFound
}

func (s *stubProjectAPI) Create(_ context.Context, _ string, input ports.CreateProjectInput) (*domain.Project, error) {
	return &domain.Project{ID: "new", Name: input.Name, Color: input.Color}, nil
}

func (s *stubProjectAPI) Update(_ context.Context, _, id string, _ ports.UpdateProjectInput) (*domain.Project, error) {
	return &domain.Project{ID: id}, nil
}

func (s *stubProjectAPI) Delete(_ context.Context, _, _ string) error { return nil }

func TestProjectCollection_FetchAllReplacesList(t *testing.T) {
	api := &stubProjectAPI{projects: []domain.Project{{ID: "p1"}, {ID: "p2"}}}
	col := NewProjectCollection(api, staticTokens("tok"))

	require.NoError(t, col.FetchAll(context.Background(), ports.ListQuery{}))
	assert.Len(t, col.Items(), 2)
	assert.Empty(t, col.Err())
	assert.Equal(t, "tok", api.lastTok)

	api.projects = []domain.Project{{ID: "p3"}}
	require.NoError(t, col.FetchAll(context.Background(), ports.ListQuery{}))
	items := col.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p3", items[0].ID)
}

func TestProjectCollection_FetchAllErrorKeepsPreviousList(t *testing.T) {
	api := &stubProjectAPI{projects: []domain.Project{{ID: "p1"}, {ID: "p2"}}}
	col := NewProjectCollection(api, staticTokens("tok"))
	require.NoError(t, col.FetchAll(context.Background(), ports.ListQuery{}))

	api.listErr = errors.New("backend exploded")
	err := col.FetchAll(context.Background(), ports.ListQuery{})
	require.Error(t, err)

	assert.Len(t, col.Items(), 2, "cached list must survive a failed fetch")
	assert.Equal(t, "backend exploded", col.Err())
	assert.False(t, col.Loading())

	// A later successful fetch clears the error slot.
	api.listErr = nil
	require.NoError(t, col.FetchAll(context.Background(), ports.ListQuery{}))
	assert.Empty(t, col.Err())
}

func TestProjectCollection_CreateValidatesInput(t *testing.T) {
	col := NewProjectCollection(&stubProjectAPI{}, staticTokens("tok"))

	_, err := col.Create(context.Background(), ports.CreateProjectInput{Name: "", Color: "#fff"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := col.Create(context.Background(), ports.CreateProjectInput{Name: "Wine labels", Color: "#fff"})
	require.NoError(t, err)
	assert.Equal(t, "Wine labels", created.Name)
	assert.Empty(t, col.Items(), "mutations must not patch the cache; callers refetch")
}
