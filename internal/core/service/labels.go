package service

import (
	"context"
	"fmt"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// LabelCollection caches the labels of a single project. One instance per
// project; there is no cross-collection sharing.
type LabelCollection struct {
	collection[domain.Label]

	api       ports.LabelAPI
	tokens    TokenSource
	projectID string
	validate  *inputValidator
}

func NewLabelCollection(api ports.LabelAPI, tokens TokenSource, projectID string) *LabelCollection {
	return &LabelCollection{api: api, tokens: tokens, projectID: projectID, validate: newInputValidator()}
}

func (c *LabelCollection) FetchAll(ctx context.Context, q ports.ListQuery) error {
	return c.fetchAll(ctx, q, func(ctx context.Context, q ports.ListQuery) ([]domain.Label, error) {
		return c.api.List(ctx, c.tokens.Token(), c.projectID, q)
	})
}

func (c *LabelCollection) Get(ctx context.Context, id string) (*domain.Label, error) {
	return c.api.Get(ctx, c.tokens.Token(), id)
}

func (c *LabelCollection) Create(ctx context.Context, input ports.CreateLabelInput) (*domain.Label, error) {
	if msg := c.validate.check(input); msg != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}
	return c.api.Create(ctx, c.tokens.Token(), c.projectID, input)
}

func (c *LabelCollection) Update(ctx context.Context, id string, input ports.UpdateLabelInput) (*domain.Label, error) {
	return c.api.Update(ctx, c.tokens.Token(), id, input)
}

func (c *LabelCollection) Delete(ctx context.Context, id string) error {
	return c.api.Delete(ctx, c.tokens.Token(), id)
}

// Duplicate clones an existing label on the backend and returns the copy.
func (c *LabelCollection) Duplicate(ctx context.Context, id string) (*domain.Label, error) {
	return c.api.Duplicate(ctx, c.tokens.Token(), id)
}
