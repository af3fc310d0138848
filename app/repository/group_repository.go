package repository

import (
	"github.com/ManuelReschke/Yatube/app/models"
	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a new group repository instance
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Create(group *models.Group) error {
	if err := group.Validate(); err != nil {
		return err
	}
	return r.db.Create(group).Error
}

func (r *groupRepository) GetByID(id uint) (*models.Group, error) {
	var group models.Group
	err := r.db.First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// GetBySlug retrieves a group by its slug
func (r *groupRepository) GetBySlug(slug string) (*models.Group, error) {
	var group models.Group
	err := r.db.Where("slug = ?", slug).First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// List returns all groups ordered by title
func (r *groupRepository) List() ([]models.Group, error) {
	var groups []models.Group
	err := r.db.Order("title ASC").Find(&groups).Error
	return groups, err
}

// Delete removes a group; its posts keep existing with group_id set to NULL
func (r *groupRepository) Delete(id uint) error {
	return r.db.Delete(&models.Group{}, id).Error
}
