// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import "time"

// Role 表示用户角色，注册时确定，之后不可修改。
type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// Valid 判断是否为已知角色
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// Registrable 判断该角色能否通过公开注册获得 (admin 不能自助注册)
func (r Role) Registrable() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// User 表示应用程序中的用户。
type User struct {
	ID           uint      `gorm:"primaryKey"`
	// Username 与 Email 全局唯一
	Username     string    `gorm:"type:varchar(80);uniqueIndex:idx_users_username;not null"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex:idx_users_email;not null"`
	// 存储的是哈希后的密码，永不序列化
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         Role      `gorm:"column:user_type;type:varchar(20);not null;index:idx_users_user_type"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	Phone        *string   `gorm:"type:varchar(20)"`
	// 仅对 employer 有意义
	CompanyName  *string   `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index:idx_users_created_at"`
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
