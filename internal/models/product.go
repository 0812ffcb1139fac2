package models

import (
	"time"

	"github.com/oscoderuz/django-shablon/internal/constants"

	"github.com/shopspring/decimal"
)

// Product 商品表
type Product struct {
	ID               uint      `gorm:"primarykey" json:"id"`                                              // 主键
	Name             string    `gorm:"type:varchar(200);not null" json:"name"`                            // 商品名称
	Slug             string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`                // 唯一标识（URL）
	CategoryID       uint      `gorm:"not null;index" json:"category_id"`                                 // 分类ID
	ShortDescription string    `gorm:"type:varchar(300)" json:"short_description"`                        // 简短描述
	Description      string    `gorm:"type:text" json:"description"`                                      // 完整描述
	Price            Money     `gorm:"type:decimal(10,2);not null;default:0" json:"price"`                // 原价
	DiscountPrice    *Money    `gorm:"type:decimal(10,2)" json:"discount_price"`                          // 折扣价（可空）
	Image            string    `gorm:"type:varchar(500);not null" json:"image"`                           // 商品图片路径
	Quantity         int       `gorm:"not null;default:0" json:"quantity"`                                // 库存数量
	Status           string    `gorm:"type:varchar(20);not null;default:'available';index" json:"status"` // 库存状态（available/out_of_stock/backorder）
	IsFeatured       bool      `gorm:"not null;default:false;index" json:"is_featured"`                   // 是否推荐
	IsNew            bool      `gorm:"not null;index" json:"is_new"`                                      // 是否新品
	ViewCount        int64     `gorm:"not null;default:0" json:"view_count"`                              // 浏览次数
	Rating           Rating    `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`                // 评分（由评价聚合得出）
	CreatorID        *uint     `gorm:"index" json:"creator_id"`                                           // 创建人（账号删除后置空）
	CreatedAt        time.Time `gorm:"index" json:"created_at"`                                           // 创建时间
	UpdatedAt        time.Time `json:"updated_at"`                                                        // 更新时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"category,omitempty"` // 分类信息
	Creator  *User    `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"-"`                  // 创建人
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// EffectivePrice 当前售价（有折扣价时取折扣价）
func (p *Product) EffectivePrice() Money {
	if p == nil {
		return Money{}
	}
	if p.DiscountPrice != nil {
		return NewMoneyFromDecimal(p.DiscountPrice.Decimal)
	}
	return NewMoneyFromDecimal(p.Price.Decimal)
}

// DiscountPercent 折扣百分比，原价为 0 或无折扣时返回 0
func (p *Product) DiscountPercent() decimal.Decimal {
	if p == nil || p.DiscountPrice == nil || !p.Price.Decimal.IsPositive() {
		return decimal.Zero
	}
	diff := p.Price.Decimal.Sub(p.DiscountPrice.Decimal)
	return diff.Div(p.Price.Decimal).Mul(decimal.NewFromInt(100)).Round(2)
}

// InStock 是否可售（有库存且状态为 available）
func (p *Product) InStock() bool {
	if p == nil {
		return false
	}
	return p.Quantity > 0 && p.Status == constants.ProductStatusAvailable
}
