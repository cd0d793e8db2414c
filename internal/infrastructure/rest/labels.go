package rest

import (
	"context"
	"net/http"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// LabelClient implements ports.LabelAPI. Listing and creation are nested
// under the owning project; single-label operations use the flat
// /projects/labels/{id} form the backend exposes.
type LabelClient struct {
	c *Client
}

func NewLabelClient(c *Client) *LabelClient {
	return &LabelClient{c: c}
}

func (l *LabelClient) List(ctx context.Context, token, projectID string, q ports.ListQuery) ([]domain.Label, error) {
	var labels []domain.Label
	if err := l.c.doJSON(ctx, http.MethodGet, "/projects/"+projectID+"/labels", token, query(q), nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (l *LabelClient) Get(ctx context.Context, token, id string) (*domain.Label, error) {
	var label domain.Label
	if err := l.c.doJSON(ctx, http.MethodGet, "/projects/labels/"+id, token, nil, nil, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (l *LabelClient) Create(ctx context.Context, token, projectID string, input ports.CreateLabelInput) (*domain.Label, error) {
	var label domain.Label
	if err := l.c.doJSON(ctx, http.MethodPost, "/projects/"+projectID+"/labels", token, nil, input, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (l *LabelClient) Update(ctx context.Context, token, id string, input ports.UpdateLabelInput) (*domain.Label, error) {
	var label domain.Label
	if err := l.c.doJSON(ctx, http.MethodPut, "/projects/labels/"+id, token, nil, input, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (l *LabelClient) Delete(ctx context.Context, token, id string) error {
	return l.c.doJSON(ctx, http.MethodDelete, "/projects/labels/"+id, token, nil, nil, nil)
}

func (l *LabelClient) Duplicate(ctx context.Context, token, id string) (*domain.Label, error) {
	var label domain.Label
	if err := l.c.doJSON(ctx, http.MethodPost, "/projects/labels/"+id+"/duplicate", token, nil, nil, &label); err != nil {
		return nil, err
	}
	return &label, nil
}
