package models

import "time"

// Timestamps holds the audit columns shared by every table. They are written
// by the repository layer, never by GORM's auto-time tracking.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;autoUpdateTime:false"`
}

// MarkCreated stamps a row that is about to be inserted.
func (t *Timestamps) MarkCreated(now time.Time) {
	t.CreatedAt = now
	t.UpdatedAt = now
}

// MarkUpdated stamps a row that is about to be saved again.
func (t *Timestamps) MarkUpdated(now time.Time) {
	t.UpdatedAt = now
}
