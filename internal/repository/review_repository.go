package repository

import (
	"errors"

	"github.com/oscoderuz/django-shablon/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	GetByProductAndUser(productID, userID uint) (*models.Review, error)
	Update(review *models.Review) error
	Delete(id uint) error
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	ListApprovedByProduct(productID uint, limit int) ([]models.Review, error)
	SetApproved(ids []uint, approved bool) ([]uint, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx 绑定事务
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// Transaction 执行事务
func (r *GormReviewRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Omit("Product", "User").Create(review).Error
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// GetByProductAndUser 获取用户对某商品的评价
func (r *GormReviewRepository) GetByProductAndUser(productID, userID uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Update 更新评价
func (r *GormReviewRepository) Update(review *models.Review) error {
	return r.db.Omit("Product", "User").Save(review).Error
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

// List 评价列表（新的在前）
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	var reviews []models.Review
	query := r.db.Model(&models.Review{})
	if filter.WithUser {
		query = query.Preload("User")
	}
	if filter.WithProduct {
		query = query.Preload("Product")
	}
	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Approved != nil {
		query = query.Where("approved = ?", *filter.Approved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListApprovedByProduct 商品已审核评价（limit<=0 时不限制）
func (r *GormReviewRepository) ListApprovedByProduct(productID uint, limit int) ([]models.Review, error) {
	var reviews []models.Review
	query := r.db.Preload("User").
		Where("product_id = ? AND approved = ?", productID, true).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// SetApproved 批量设置审核状态，返回受影响的商品 ID
func (r *GormReviewRepository) SetApproved(ids []uint, approved bool) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}
	var productIDs []uint
	if err := r.db.Model(&models.Review{}).Where("id IN ?", ids).Distinct().Pluck("product_id", &productIDs).Error; err != nil {
		return nil, err
	}
	if len(productIDs) == 0 {
		return []uint{}, nil
	}
	if err := r.db.Model(&models.Review{}).Where("id IN ?", ids).UpdateColumn("approved", approved).Error; err != nil {
		return nil, err
	}
	return productIDs, nil
}

