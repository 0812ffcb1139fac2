package models

import (
	"time"
)

// Profile 用户资料表（与账号一对一）
type Profile struct {
	ID                 uint       `gorm:"primarykey" json:"id"`                      // 主键
	UserID             uint       `gorm:"uniqueIndex;not null" json:"user_id"`       // 账号ID（唯一）
	Image              string     `gorm:"type:varchar(500)" json:"image"`            // 头像路径
	Bio                string     `gorm:"type:varchar(500)" json:"bio"`              // 个人简介
	BirthDate          *time.Time `gorm:"type:date" json:"birth_date"`               // 出生日期
	Gender             string     `gorm:"type:varchar(10)" json:"gender"`            // 性别（male/female）
	Phone              string     `gorm:"type:varchar(20)" json:"phone"`             // 电话
	Address            string     `gorm:"type:text" json:"address"`                  // 地址
	City               string     `gorm:"type:varchar(100)" json:"city"`             // 城市
	Country            string     `gorm:"type:varchar(100);not null" json:"country"` // 国家
	Website            string     `gorm:"type:varchar(500)" json:"website"`          // 个人网站
	EmailNotifications bool       `gorm:"not null" json:"email_notifications"`       // 是否接收邮件通知
	CreatedAt          time.Time  `json:"created_at"`                                // 创建时间
	UpdatedAt          time.Time  `json:"updated_at"`                                // 更新时间
}

// TableName 指定表名
func (Profile) TableName() string {
	return "profiles"
}

// Age 根据出生日期计算周岁，未填写时返回 nil
func (p *Profile) Age(now time.Time) *int {
	if p == nil || p.BirthDate == nil {
		return nil
	}
	birth := p.BirthDate.In(now.Location())
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return &age
}
