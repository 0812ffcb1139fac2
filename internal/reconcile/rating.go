package reconcile

import (
	"context"
	"sort"

	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"

	"github.com/shopspring/decimal"
)

// AverageRating 计算评分均值（保留 2 位），无评分时为 0
func AverageRating(scores []int) models.Rating {
	if len(scores) == 0 {
		return models.NewRating(decimal.Zero)
	}
	var total int64
	for _, score := range scores {
		total += int64(score)
	}
	mean := decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(len(scores))))
	return models.NewRating(mean)
}

// RatingAggregator 商品评分聚合器，每次全量重算
type RatingAggregator struct{}

// Name 钩子名称
func (RatingAggregator) Name() string {
	return "rating_aggregator"
}

// Recompute 按已审核评价重算单个商品评分；商品不存在时跳过并返回 false
func (RatingAggregator) Recompute(ctx context.Context, store Store, productID uint) (models.Rating, bool, error) {
	if productID == 0 {
		return models.Rating{}, false, nil
	}
	exists, err := store.ProductExists(ctx, productID)
	if err != nil {
		return models.Rating{}, false, err
	}
	if !exists {
		logger.Debugw("rating_recompute_skip_missing_product", "product_id", productID)
		return models.Rating{}, false, nil
	}
	scores, err := store.ApprovedReviewScores(ctx, productID)
	if err != nil {
		return models.Rating{}, false, err
	}
	rating := AverageRating(scores)
	if err := store.UpdateProductRating(ctx, productID, rating); err != nil {
		return models.Rating{}, false, err
	}
	return rating, true, nil
}

// AfterReviewChange 对受影响商品逐个重算（同一商品只算一次）
func (a RatingAggregator) AfterReviewChange(ctx context.Context, store Store, productIDs []uint) error {
	for _, id := range UniqueIDs(productIDs) {
		if _, _, err := a.Recompute(ctx, store, id); err != nil {
			return err
		}
	}
	return nil
}

// UniqueIDs 去重并排序，忽略 0
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
