package repository

import (
	"github.com/ManuelReschke/Yatube/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postOrder = "posts.pub_date DESC, posts.id DESC"

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create validates and inserts the post without touching the referenced author or group rows
func (r *postRepository) Create(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	return r.db.Omit(clause.Associations).Create(post).Error
}

// Update writes the editable columns only; pub_date and author are never changed
func (r *postRepository) Update(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}
	return r.db.Model(post).Select("text", "group_id", "image").Updates(post).Error
}

func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.withRelations().First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetByIDAndAuthor retrieves a post only if it was written by the given username
func (r *postRepository) GetByIDAndAuthor(id uint, username string) (*models.Post, error) {
	var post models.Post
	err := r.withRelations().
		Joins("JOIN users ON users.id = posts.author_id").
		Where("posts.id = ? AND users.username = ?", id, username).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(offset, limit int) ([]models.Post, error) {
	return r.find(r.db, offset, limit)
}

func (r *postRepository) Count() (int64, error) {
	return r.count(r.db)
}

func (r *postRepository) ListByGroup(groupID uint, offset, limit int) ([]models.Post, error) {
	return r.find(r.db.Where("posts.group_id = ?", groupID), offset, limit)
}

func (r *postRepository) CountByGroup(groupID uint) (int64, error) {
	return r.count(r.db.Where("posts.group_id = ?", groupID))
}

func (r *postRepository) ListByAuthor(authorID uint, offset, limit int) ([]models.Post, error) {
	return r.find(r.db.Where("posts.author_id = ?", authorID), offset, limit)
}

func (r *postRepository) CountByAuthor(authorID uint) (int64, error) {
	return r.count(r.db.Where("posts.author_id = ?", authorID))
}

// ListByFollower returns posts of every author the user follows
func (r *postRepository) ListByFollower(userID uint, offset, limit int) ([]models.Post, error) {
	return r.find(r.followedBy(userID), offset, limit)
}

func (r *postRepository) CountByFollower(userID uint) (int64, error) {
	return r.count(r.followedBy(userID))
}

func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

func (r *postRepository) followedBy(userID uint) *gorm.DB {
	sub := r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
	return r.db.Where("posts.author_id IN (?)", sub)
}

func (r *postRepository) withRelations() *gorm.DB {
	return r.db.Preload("Author").Preload("Group")
}

func (r *postRepository) find(scope *gorm.DB, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := scope.Preload("Author").Preload("Group").
		Order(postOrder).Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *postRepository) count(scope *gorm.DB) (int64, error) {
	var count int64
	err := scope.Model(&models.Post{}).Count(&count).Error
	return count, err
}
