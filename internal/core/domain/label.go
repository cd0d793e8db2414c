package domain

import (
	"encoding/json"
	"time"
)

// LabelStatus is the publication state of a label design.
type LabelStatus string

const (
	LabelDraft     LabelStatus = "DRAFT"
	LabelPublished LabelStatus = "PUBLISHED"
	LabelArchived  LabelStatus = "ARCHIVED"
)

// Label is a single label design inside a project. FabricData is the
// editor's design document and is carried opaquely, never interpreted here.
type Label struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ProjectID   string          `json:"projectId"`
	FabricData  json.RawMessage `json:"fabricData,omitempty"`
	Thumbnail   string          `json:"thumbnail,omitempty"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	Status      LabelStatus     `json:"status"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
