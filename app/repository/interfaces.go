package repository

import (
	"github.com/ManuelReschke/Yatube/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	UsernameExists(username string) (bool, error)
	UpdateLastLogin(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// GroupRepository defines the interface for group-related database operations
type GroupRepository interface {
	Create(group *models.Group) error
	GetByID(id uint) (*models.Group, error)
	GetBySlug(slug string) (*models.Group, error)
	List() ([]models.Group, error)
	Delete(id uint) error
}

// PostRepository defines the interface for post-related database operations.
// Listings are ordered newest first.
type PostRepository interface {
	Create(post *models.Post) error
	Update(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetByIDAndAuthor(id uint, username string) (*models.Post, error)
	List(offset, limit int) ([]models.Post, error)
	Count() (int64, error)
	ListByGroup(groupID uint, offset, limit int) ([]models.Post, error)
	CountByGroup(groupID uint) (int64, error)
	ListByAuthor(authorID uint, offset, limit int) ([]models.Post, error)
	CountByAuthor(authorID uint) (int64, error)
	ListByFollower(userID uint, offset, limit int) ([]models.Post, error)
	CountByFollower(userID uint) (int64, error)
	Delete(id uint) error
}

// CommentRepository defines the interface for comment-related database operations
type CommentRepository interface {
	Create(comment *models.Comment) error
	ListByPost(postID uint) ([]models.Comment, error)
	CountByPost(postID uint) (int64, error)
}

// FollowRepository defines the interface for follow-related database operations
type FollowRepository interface {
	GetOrCreate(userID, authorID uint) (*models.Follow, bool, error)
	Delete(userID, authorID uint) error
	Exists(userID, authorID uint) (bool, error)
	CountFollowers(authorID uint) (int64, error)
	CountFollowing(userID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User    UserRepository
	Group   GroupRepository
	Post    PostRepository
	Comment CommentRepository
	Follow  FollowRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Group:   NewGroupRepository(db),
		Post:    NewPostRepository(db),
		Comment: NewCommentRepository(db),
		Follow:  NewFollowRepository(db),
	}
}
