package models

import "time"

// Tag represents a label attached to gift certificates
// Table: tags
// Unique by name; name length limited to 255 characters
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:uk_tags_name" json:"name"`
	CreatedAt time.Time `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_tags_created_at" json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// DefaultTagName is assigned to every newly created certificate.
const DefaultTagName = "Main"

// TagFilter represents filter criteria for tag queries
type TagFilter struct {
	ID            *uint
	Name          *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
