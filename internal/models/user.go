package models

import (
	"time"
)

// User is a questionnaire respondent. Created once at wizard start and
// never modified afterwards.
type User struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName      string    `gorm:"size:255;not null" json:"fullName"`
	Email         string    `gorm:"size:255;not null;index" json:"email"`
	Company       string    `gorm:"size:255;not null" json:"company"`
	Position      string    `gorm:"size:255;not null" json:"position"`
	Phone         string    `gorm:"size:64;not null" json:"phone"`
	EmployeeCount string    `gorm:"size:64;not null" json:"employeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
