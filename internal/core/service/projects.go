package service

import (
	"context"
	"fmt"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// ProjectCollection caches the caller's project list and exposes CRUD over
// it. Mutations do not patch the cache: after a successful Create, Update
// or Delete the caller re-runs FetchAll, trading a brief stale window for
// the absence of partial-update bugs.
type ProjectCollection struct {
	collection[domain.Project]

	api      ports.ProjectAPI
	tokens   TokenSource
	validate *inputValidator
}

func NewProjectCollection(api ports.ProjectAPI, tokens TokenSource) *ProjectCollection {
	return &ProjectCollection{api: api, tokens: tokens, validate: newInputValidator()}
}

// FetchAll replaces the cached list. A failed fetch keeps the previous
// list and records the error (see collection.fetchAll).
func (c *ProjectCollection) FetchAll(ctx context.Context, q ports.ListQuery) error {
	return c.fetchAll(ctx, q, func(ctx context.Context, q ports.ListQuery) ([]domain.Project, error) {
		return c.api.List(ctx, c.tokens.Token(), q)
	})
}

func (c *ProjectCollection) Get(ctx context.Context, id string) (*domain.Project, error) {
	return c.api.Get(ctx, c.tokens.Token(), id)
}

func (c *ProjectCollection) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if msg := c.validate.check(input); msg != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}
	return c.api.Create(ctx, c.tokens.Token(), input)
}

func (c *ProjectCollection) Update(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	return c.api.Update(ctx, c.tokens.Token(), id, input)
}

func (c *ProjectCollection) Delete(ctx context.Context, id string) error {
	return c.api.Delete(ctx, c.tokens.Token(), id)
}
