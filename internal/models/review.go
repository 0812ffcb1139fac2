package models

import (
	"time"
)

// Review 商品评价表（每个账号对同一商品仅一条）
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                                 // 主键
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_product_user;index" json:"product_id"` // 商品ID
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_product_user;index" json:"user_id"`    // 账号ID
	Body      string    `gorm:"type:text;not null" json:"body"`                                       // 评价内容
	Score     int       `gorm:"not null" json:"score"`                                                // 评分（1-5）
	Approved  bool      `gorm:"not null;default:false;index" json:"approved"`                         // 是否审核通过
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                              // 创建时间

	// 关联
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"` // 商品信息
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`       // 评价人
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
