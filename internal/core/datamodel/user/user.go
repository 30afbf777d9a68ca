package user

import "time"

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	CompanyID    string    `gorm:"column:company_id;type:uuid;not null;index"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Role         string    `gorm:"column:role;type:varchar(20);not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
