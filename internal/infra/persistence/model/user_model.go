package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Seller standing is never stored; it is derived from Role and VerificationStatus.
type UserModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email              string    `gorm:"type:varchar(255);unique;not null"`
	Name               string    `gorm:"type:varchar(100);not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	Role               string    `gorm:"type:varchar(20);not null;default:customer;index"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:approved"`
	CompanyName        string    `gorm:"type:varchar(200)"`
	CompanyDescription string    `gorm:"type:text"`
	Phone              string    `gorm:"type:varchar(30)"`
	Address            string    `gorm:"type:text"`
	AvatarURL          string    `gorm:"type:varchar(500)"`
	LastLoginAt        *time.Time
	LoginCount         int `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
