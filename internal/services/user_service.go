package services

import (
	"errors"
	"strings"

	"github.com/evalsec/cyberassess/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned by lookups when no row matches. Handlers map it
// to 404.
var ErrNotFound = errors.New("not found")

// UserInput is the request body for user creation.
type UserInput struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Company       string `json:"company"`
	Position      string `json:"position"`
	Phone         string `json:"phone"`
	EmployeeCount string `json:"employeeCount"`
}

// Validate checks that all required user fields are present.
func (in *UserInput) Validate() error {
	missing := []string{}
	if in.FullName == "" {
		missing = append(missing, "fullName")
	}
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		missing = append(missing, "email")
	}
	if in.Company == "" {
		missing = append(missing, "company")
	}
	if in.Position == "" {
		missing = append(missing, "position")
	}
	if in.Phone == "" {
		missing = append(missing, "phone")
	}
	if in.EmployeeCount == "" {
		missing = append(missing, "employeeCount")
	}
	if len(missing) > 0 {
		return errors.New("missing or invalid fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// CreateUser inserts a new user
func CreateUser(db *gorm.DB, in UserInput) (*models.User, error) {
	user := models.User{
		FullName:      in.FullName,
		Email:         in.Email,
		Company:       in.Company,
		Position:      in.Position,
		Phone:         in.Phone,
		EmployeeCount: in.EmployeeCount,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser retrieves a user by id
func GetUser(db *gorm.DB, id uint64) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves the first user with the given email address
func GetUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
