package ports

import (
	"context"
	"encoding/json"
	"io"

	"github.com/labelforge/labelforge-go/internal/core/domain"
)

// ListQuery holds optional query parameters for list endpoints.
// Zero values are omitted from the request.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  string
}

type CreateProjectInput struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color" validate:"required"`
}

// UpdateProjectInput uses pointers so absent fields are left untouched.
type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

type CreateLabelInput struct {
	Name        string          `json:"name" validate:"required,min=1"`
	Description string          `json:"description,omitempty"`
	Width       float64         `json:"width" validate:"required,gt=0"`
	Height      float64         `json:"height" validate:"required,gt=0"`
	FabricData  json.RawMessage `json:"fabricData,omitempty"`
}

type UpdateLabelInput struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	FabricData  json.RawMessage     `json:"fabricData,omitempty"`
	Thumbnail   *string             `json:"thumbnail,omitempty"`
	Status      *domain.LabelStatus `json:"status,omitempty"`
}

// UploadInput describes a multipart asset upload. Progress, when non-nil,
// is called with the number of bytes sent so far and the total size.
type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
	Progress    func(sent, total int64)
}

type UpdateAssetInput struct {
	Name *string `json:"name,omitempty"`
}

// ProjectAPI is the remote CRUD surface for projects.
type ProjectAPI interface {
	List(ctx context.Context, token string, q ListQuery) ([]domain.Project, error)
	Get(ctx context.Context, token, id string) (*domain.Project, error)
	Create(ctx context.Context, token string, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, token, id string, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, token, id string) error
}

// LabelAPI is the remote CRUD surface for labels within a project.
type LabelAPI interface {
	List(ctx context.Context, token, projectID string, q ListQuery) ([]domain.Label, error)
	Get(ctx context.Context, token, id string) (*domain.Label, error)
	Create(ctx context.Context, token, projectID string, input CreateLabelInput) (*domain.Label, error)
	Update(ctx context.Context, token, id string, input UpdateLabelInput) (*domain.Label, error)
	Delete(ctx context.Context, token, id string) error
	Duplicate(ctx context.Context, token, id string) (*domain.Label, error)
}

// AssetAPI is the remote surface for uploaded assets.
type AssetAPI interface {
	List(ctx context.Context, token string, q ListQuery) ([]domain.Asset, error)
	Get(ctx context.Context, token, id string) (*domain.Asset, error)
	Upload(ctx context.Context, token string, input UploadInput) (*domain.Asset, error)
	Update(ctx context.Context, token, id string, input UpdateAssetInput) (*domain.Asset, error)
	Delete(ctx context.Context, token, id string) error
}
