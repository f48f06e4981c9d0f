package models

import (
	"strings"
	"time"
)

// DefaultModel is the base model for transactions and budgets.
type DefaultModel struct {
	ID    string `json:"id" gorm:"primaryKey" bson:"_id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the resource
	Owner string `json:"owner" gorm:"index" bson:"owner" example:"ana"`                                   // The user the resource belongs to
	Timestamps `bson:",inline"`
}

// Timestamps contains the audit timestamps, they are managed by the ledgers.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" bson:"created_at" example:"2022-04-02T19:28:44.491514Z"` // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at" example:"2022-04-17T20:14:01.048145Z"` // Last time the resource was updated
}

// GetID returns the ID of the resource.
func (m DefaultModel) GetID() string {
	return m.ID
}

// GetOwner returns the owner of the resource.
func (m DefaultModel) GetOwner() string {
	return m.Owner
}

// utc sets all timestamps to UTC, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *DefaultModel) utc() {
	m.ID = strings.TrimSpace(m.ID)
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
}
