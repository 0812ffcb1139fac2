package repository

import (
	"context"

	"github.com/oscoderuz/django-shablon/internal/models"

	"gorm.io/gorm"
)

// GormReconcileStore 对账流程的 GORM 存储实现
type GormReconcileStore struct {
	db *gorm.DB
}

// NewReconcileStore 创建对账存储（传入事务句柄时在事务内读写）
func NewReconcileStore(db *gorm.DB) *GormReconcileStore {
	return &GormReconcileStore{db: db}
}

// SlugExists slug 是否已被占用
func (s *GormReconcileStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProductOwnsSlug slug 是否属于指定商品
func (s *GormReconcileStore) ProductOwnsSlug(ctx context.Context, productID uint, slug string) (bool, error) {
	if productID == 0 {
		return false, nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND slug = ?", productID, slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ProductExists 商品是否存在
func (s *GormReconcileStore) ProductExists(ctx context.Context, productID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ApprovedReviewScores 商品已审核评价分值
func (s *GormReconcileStore) ApprovedReviewScores(ctx context.Context, productID uint) ([]int, error) {
	var scores []int
	if err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND approved = ?", productID, true).
		Order("id ASC").
		Pluck("score", &scores).Error; err != nil {
		return nil, err
	}
	return scores, nil
}

// UpdateProductRating 只写评分列
func (s *GormReconcileStore) UpdateProductRating(ctx context.Context, productID uint, rating models.Rating) error {
	return s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("rating", rating).Error
}
