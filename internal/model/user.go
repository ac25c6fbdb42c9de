package model

import "time"

// User represents an account that can authenticate against the API.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name           string    `json:"name,omitempty" gorm:"size:255"`
	Photo          string    `json:"photo,omitempty" gorm:"size:512"`
	HashedPassword string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Disabled       bool      `json:"-" gorm:"default:false"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
}
