package repository

import (
	"github.com/ManuelReschke/Yatube/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository instance
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	return r.db.Omit(clause.Associations).Create(comment).Error
}

// ListByPost returns the comments of a post, newest first
func (r *commentRepository) ListByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Author").Where("post_id = ?", postID).
		Order("created DESC, id DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountByPost(postID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
