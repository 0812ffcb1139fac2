package models

import (
	"time"
)

// Category 分类表
type Category struct {
	ID           uint      `gorm:"primarykey" json:"id"`                               // 主键
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 分类名称（唯一）
	Description  string    `gorm:"type:text" json:"description"`                       // 分类描述
	Image        string    `gorm:"type:varchar(500)" json:"image"`                     // 分类图片路径
	IsActive     bool      `gorm:"not null;index" json:"is_active"`                    // 是否启用
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                         // 更新时间
	ProductCount int64     `gorm:"->;-:migration" json:"product_count"`                // 商品数量（仅查询）
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
