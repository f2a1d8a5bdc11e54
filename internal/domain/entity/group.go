// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultGroupIcon is the default icon for groups.
const DefaultGroupIcon = "📦"

// DefaultGroupColor is the default display color for groups.
const DefaultGroupColor = "#E8B4BC"

// Group represents a top-level bucket of the checklist (e.g. "Kitchen").
// Groups are listed by creation time ascending in every view.
type Group struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Name       string
	Icon       string
	Color      string
	Categories []*Category
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewGroup creates a new Group entity.
// Note: Defaulting logic for icon and color is applied in the Application
// layer (UseCase) before calling this constructor.
func NewGroup(ownerID uuid.UUID, name, icon, color string) *Group {
	now := time.Now().UTC()

	return &Group{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      name,
		Icon:      icon,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
