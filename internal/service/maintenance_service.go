package service

import (
	"context"

	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/queue"
	"github.com/oscoderuz/django-shablon/internal/reconcile"
	"github.com/oscoderuz/django-shablon/internal/repository"

	"gorm.io/gorm"
)

// MaintenanceService 派生数据回填
type MaintenanceService struct {
	db          *gorm.DB
	productRepo repository.ProductRepository
	queue       *queue.Client
	aggregator  reconcile.RatingAggregator
}

// NewMaintenanceService 创建维护服务
func NewMaintenanceService(db *gorm.DB, productRepo repository.ProductRepository, queueClient *queue.Client) *MaintenanceService {
	return &MaintenanceService{db: db, productRepo: productRepo, queue: queueClient}
}

// RequestRatingRecompute 队列启用时入队，否则同步执行；productIDs 为空表示全量
func (s *MaintenanceService) RequestRatingRecompute(ctx context.Context, productIDs []uint) (bool, int, error) {
	productIDs = reconcile.UniqueIDs(productIDs)
	if s.queue.Enabled() {
		if err := s.queue.EnqueueRatingRecompute(queue.RatingRecomputePayload{
			ProductIDs: productIDs,
			All:        len(productIDs) == 0,
		}); err != nil {
			return false, 0, err
		}
		return true, 0, nil
	}
	count, err := s.RecomputeRatings(ctx, productIDs)
	return false, count, err
}

// RecomputeRatings 全量重算评分，返回处理的商品数
func (s *MaintenanceService) RecomputeRatings(ctx context.Context, productIDs []uint) (int, error) {
	if len(productIDs) == 0 {
		ids, err := s.productRepo.ListAllIDs()
		if err != nil {
			return 0, err
		}
		productIDs = ids
	}
	store := repository.NewReconcileStore(s.db)
	done := 0
	for _, productID := range productIDs {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if _, _, err := s.aggregator.Recompute(ctx, store, productID); err != nil {
			logger.Warnw("rating_recompute_failed", "product_id", productID, "error", err)
			return done, err
		}
		done++
	}
	logger.Infow("rating_recompute_done", "count", done)
	return done, nil
}
