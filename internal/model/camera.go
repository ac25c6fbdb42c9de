package model

import "time"

// Camera holds the capture and encoding configuration for a single camera.
// All configuration fields are free-form strings consumed by the recorder.
type Camera struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"uniqueIndex;size:255;not null"`
	Device     string    `json:"device,omitempty" gorm:"size:255"`
	Resolution string    `json:"resolution,omitempty" gorm:"size:64"`
	FPS        string    `json:"fps,omitempty" gorm:"size:32"`
	PostURL    string    `json:"postUrl,omitempty" gorm:"size:512"`
	Codec      string    `json:"codec,omitempty" gorm:"size:64"`
	Preset     string    `json:"preset,omitempty" gorm:"size:64"`
	Tune       string    `json:"tune,omitempty" gorm:"size:64"`
	Buffer     string    `json:"buffer,omitempty" gorm:"size:64"`
	Rotation   string    `json:"rotation,omitempty" gorm:"size:32"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}
