package models

import (
	"strings"
	"time"
)

// User 用户账号表（is_staff 账号可登录后台）
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                   // 主键
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"` // 用户名
	Email        string     `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`    // 邮箱
	FirstName    string     `gorm:"type:varchar(150)" json:"first_name"`                    // 名
	LastName     string     `gorm:"type:varchar(150)" json:"last_name"`                     // 姓
	PasswordHash string     `gorm:"not null" json:"-"`                                      // 密码哈希（不返回给前端）
	IsActive     bool       `gorm:"not null;index" json:"is_active"`                        // 是否启用
	IsStaff      bool       `gorm:"not null;default:false;index" json:"is_staff"`           // 是否后台人员
	IsSuperuser  bool       `gorm:"not null;default:false" json:"is_superuser"`             // 是否超级管理员（免权限校验）
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                            // Token 版本（用于全量失效）
	LastLoginAt  *time.Time `json:"last_login_at"`                                          // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                             // 更新时间

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"` // 个人资料
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 完整姓名，姓名均为空时返回用户名
func (u *User) FullName() string {
	if u == nil {
		return ""
	}
	full := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if full == "" {
		return u.Username
	}
	return full
}
