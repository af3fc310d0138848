package models

import (
	"time"
)

type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PostID   uint      `gorm:"not null;index" json:"post_id" validate:"required"`
	Post     Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	AuthorID uint      `gorm:"not null;index" json:"author_id" validate:"required"`
	Author   User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty" validate:"-"`
	Text     string    `gorm:"type:text;not null" json:"text" validate:"required"`
	Created  time.Time `gorm:"column:created;autoCreateTime;<-:create;index" json:"created"`
}

func (c *Comment) Validate() error {
	return validate.Struct(c)
}

func (c *Comment) String() string {
	return truncateText(c.Text)
}
