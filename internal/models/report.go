package models

import "time"

// Report is a saved admin report entry (occupancy summaries, revenue
// figures) rendered by the dashboard.
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Value       string    `gorm:"size:255" json:"value"`
	GeneratedBy string    `gorm:"size:100" json:"generatedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName specifies the table name for Report model
func (Report) TableName() string {
	return "reports"
}
