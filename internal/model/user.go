package model

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an authenticated back-office user
type User struct {
	BaseModel
	Username  string `gorm:"type:varchar(255);not null;index" json:"username" validate:"required"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FirstName string `gorm:"type:varchar(255);default:''" json:"first_name"`
	LastName  string `gorm:"type:varchar(255);default:''" json:"last_name"`
	Gender    string `gorm:"type:varchar(10)" json:"gender,omitempty"`   // male, female
	Civility  string `gorm:"type:varchar(5)" json:"civility,omitempty"`  // mr, mrs (derived from gender)
	UserTypeID   *uint     `gorm:"index" json:"user_type_id"`
	UserType     *UserType `gorm:"foreignKey:UserTypeID" json:"user_type,omitempty"`
	TokenVersion string    `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// FullName joins first and last name for display and cashier search.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// TypeName returns the user type name, or "" when none is assigned.
func (u *User) TypeName() string {
	if u.UserType == nil {
		return ""
	}
	return u.UserType.Name
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Gender     string    `json:"gender,omitempty"`
	Civility   string    `json:"civility,omitempty"`
	UserTypeID *uint     `json:"user_type_id,omitempty"`
	UserType   *UserType `json:"user_type,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Gender:     u.Gender,
		Civility:   u.Civility,
		UserTypeID: u.UserTypeID,
		UserType:   u.UserType,
	}
}
