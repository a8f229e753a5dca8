package models

// Tag is a topic label attached to notes via the note_tags join table.
type Tag struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	ColorHex string `gorm:"size:7" json:"color_hex,omitempty"`

	Notes []Note `gorm:"many2many:note_tags" json:"-"`
}
