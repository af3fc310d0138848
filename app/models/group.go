package models

type Group struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Slug        string `gorm:"uniqueIndex;type:varchar(50);not null" json:"slug" validate:"required,max=50,slug"`
	Description string `gorm:"type:text" json:"description"`
}

func (g *Group) Validate() error {
	return validate.Struct(g)
}

func (g *Group) String() string {
	return g.Title
}
