package models

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNameTooShort = errors.New("name must be at least 3 characters")
	ErrBadUsername  = errors.New("username must be between 3 and 30 characters")
	ErrBadEmail     = errors.New("please provide a valid email address")
	ErrWeakPassword = errors.New("password must be at least 6 characters and include an uppercase letter, a lowercase letter, a digit, and a special character (@$!%*?&)")
	ErrUserExists   = errors.New("a user with this email or username already exists")
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

type User struct {
	Generic

	Name         string `gorm:"not null" json:"name"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// NewUser validates and normalizes the registration input and hashes the
// password. Emails are stored lowercased so lookups are case-insensitive.
func NewUser(name, username, email, password string) (*User, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(name) < 3 {
		return nil, ErrNameTooShort
	}
	if len(username) < 3 || len(username) > 30 {
		return nil, ErrBadUsername
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrBadEmail
	}
	if !validPassword(password) {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}, nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// validPassword requires at least 6 characters with an uppercase letter, a
// lowercase letter, a digit and a special character, drawn only from that
// alphabet.
func validPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("@$!%*?&", r):
			special = true
		default:
			return false
		}
	}

	return lower && upper && digit && special
}

func GetUserByID(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func GetUserByEmail(db *gorm.DB, email string) (*User, error) {
	var user User
	if err := db.First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func GetUserByEmailOrUsername(db *gorm.DB, emailOrUsername string) (*User, error) {
	var user User
	err := db.First(&user, "email = ? OR username = ?", strings.ToLower(emailOrUsername), emailOrUsername).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}
