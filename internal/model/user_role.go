package model

import "time"

type Role string

const (
	RoleUser Role = "user"
	RoleFarm Role = "farm"
)

type UserRole struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	UserUID   string    `gorm:"column:user_uid;size:128;uniqueIndex:uk_user_roles_uid_role;not null"`
	Role      Role      `gorm:"size:32;uniqueIndex:uk_user_roles_uid_role;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
