package repository

import (
	"errors"

	"github.com/ManuelReschke/Yatube/app/models"
	"gorm.io/gorm"
)

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository instance
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// GetOrCreate returns the existing (user, author) row or inserts one. The lookup and the
// insert are separate statements, so two concurrent calls may both insert.
func (r *followRepository) GetOrCreate(userID, authorID uint) (*models.Follow, bool, error) {
	var follow models.Follow
	err := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).First(&follow).Error
	if err == nil {
		return &follow, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	follow = models.Follow{UserID: userID, AuthorID: authorID}
	if err := r.db.Omit("User", "Author").Create(&follow).Error; err != nil {
		return nil, false, err
	}
	return &follow, true, nil
}

// Delete removes every (user, author) row; deleting a missing pair is not an error
func (r *followRepository) Delete(userID, authorID uint) error {
	return r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&models.Follow{}).Error
}

func (r *followRepository) Exists(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error
	return count > 0, err
}

// CountFollowers counts users following authorID
func (r *followRepository) CountFollowers(authorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// CountFollowing counts authors userID follows
func (r *followRepository) CountFollowing(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
