package domain

import "time"

// Project groups the labels a user designs. Owned by exactly one user;
// deleting a project cascades to its labels on the backend side.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Labels      []Label   `json:"labels,omitempty"`
	Count       Counts    `json:"_count"`
}

// Counts carries aggregate counters the backend attaches to a project.
type Counts struct {
	Labels int `json:"labels"`
}
