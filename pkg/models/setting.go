package models

import "time"

// Setting is a locally persisted key/value preference of an owner.
type Setting struct {
	Owner     string    `gorm:"primaryKey"`
	Key       string    `gorm:"primaryKey"`
	Value     string
	UpdatedAt time.Time
}
