package model

import "time"

type UserModel struct {
	ID           uint       `json:"id" gorm:"column:id;primaryKey"`
	Username     string     `json:"username" gorm:"column:username;uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;not null"`
	FullName     string     `json:"full_name" gorm:"column:full_name;not null"`
	Role         string     `json:"role" gorm:"column:role;not null;default:operator"`
	IsActive     bool       `json:"is_active" gorm:"column:is_active;default:true"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	LastLogin    *time.Time `json:"last_login,omitempty" gorm:"column:last_login"`
	CreatedBy    *uint      `json:"created_by,omitempty" gorm:"column:created_by"`
}

func (UserModel) TableName() string {
	return "users"
}
