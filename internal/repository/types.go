package repository

import "github.com/shopspring/decimal"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page               int
	PageSize           int
	CategoryID         uint
	Search             string
	MinPrice           *decimal.Decimal
	MaxPrice           *decimal.Decimal
	Ordering           string
	Status             string
	IsFeatured         *bool
	IsNew              *bool
	OnlyAvailable      bool
	OnlyActiveCategory bool
	ExcludeID          uint
	WithCategory       bool
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	OnlyActive       bool
	WithProductCount bool
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page        int
	PageSize    int
	ProductID   uint
	UserID      uint
	Approved    *bool
	WithUser    bool
	WithProduct bool
}

// UserListFilter 查询账号列表的过滤条件
type UserListFilter struct {
	Page      int
	PageSize  int
	Keyword   string
	OnlyStaff bool
}
