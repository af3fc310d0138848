package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"uniqueIndex;type:varchar(150);not null" json:"username" validate:"required,min=1,max=150,username"`
	Email       string     `gorm:"type:varchar(254)" json:"email" validate:"omitempty,email,max=254"`
	FirstName   string     `gorm:"type:varchar(150)" json:"first_name" validate:"max=150"`
	LastName    string     `gorm:"type:varchar(150)" json:"last_name" validate:"max=150"`
	Password    string     `gorm:"type:varchar(255)" json:"-" validate:"required"`
	LastLoginAt *time.Time `gorm:"default:null" json:"last_login_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"date_joined"`
}

func (u *User) Validate() error {
	return validate.Struct(u)
}

func CreateUser(username string, email string, password string) (*User, error) {
	pw, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
		Password: pw,
	}

	err = u.Validate()
	if err != nil {
		return nil, err
	}

	return u, nil
}

// FullName returns "first last", falling back to the username when both are empty.
func (u *User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full == "" {
		return u.Username
	}
	return full
}

func (u *User) String() string {
	return u.Username
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}
