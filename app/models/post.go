package models

import (
	"time"
)

// MaxTextPreview is the number of characters kept by Post.String and Comment.String.
const MaxTextPreview = 100

type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text" validate:"required"`
	PubDate  time.Time `gorm:"autoCreateTime;<-:create;index" json:"pub_date"`
	AuthorID uint      `gorm:"not null;index" json:"author_id" validate:"required"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty" validate:"-"`
	GroupID  *uint     `gorm:"index" json:"group_id"`
	Group    *Group    `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty" validate:"-"`
	// Image is the media path relative to MEDIA_ROOT, e.g. posts/<uuid>.png
	Image string `gorm:"type:varchar(255)" json:"image"`
}

// Validate checks the post's own columns; loaded associations are not revalidated.
func (p *Post) Validate() error {
	return validate.Struct(p)
}

func (p *Post) HasImage() bool {
	return p.Image != ""
}

func (p *Post) String() string {
	return truncateText(p.Text)
}

func truncateText(text string) string {
	runes := []rune(text)
	if len(runes) > MaxTextPreview {
		return string(runes[:MaxTextPreview]) + "..."
	}
	return text
}
