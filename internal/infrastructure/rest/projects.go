package rest

import (
	"context"
	"net/http"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// ProjectClient implements ports.ProjectAPI over /api/projects.
type ProjectClient struct {
	c *Client
}

func NewProjectClient(c *Client) *ProjectClient {
	return &ProjectClient{c: c}
}

func (p *ProjectClient) List(ctx context.Context, token string, q ports.ListQuery) ([]domain.Project, error) {
	var projects []domain.Project
	if err := p.c.doJSON(ctx, http.MethodGet, "/projects", token, query(q), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (p *ProjectClient) Get(ctx context.Context, token, id string) (*domain.Project, error) {
	var project domain.Project
	if err := p.c.doJSON(ctx, http.MethodGet, "/projects/"+id, token, nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *ProjectClient) Create(ctx context.Context, token string, input ports.CreateProjectInput) (*domain.Project, error) {
	var project domain.Project
	if err := p.c.doJSON(ctx, http.MethodPost, "/projects", token, nil, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *ProjectClient) Update(ctx context.Context, token, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	var project domain.Project
	if err := p.c.doJSON(ctx, http.MethodPut, "/projects/"+id, token, nil, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (p *ProjectClient) Delete(ctx context.Context, token, id string) error {
	return p.c.doJSON(ctx, http.MethodDelete, "/projects/"+id, token, nil, nil, nil)
}
