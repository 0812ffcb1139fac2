package reconcile

import (
	"context"

	"github.com/oscoderuz/django-shablon/internal/models"
)

// Store 对账流程依赖的存储能力，调用方通常传入绑定事务的实现
type Store interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
	ProductOwnsSlug(ctx context.Context, productID uint, slug string) (bool, error)
	ProductExists(ctx context.Context, productID uint) (bool, error)
	ApprovedReviewScores(ctx context.Context, productID uint) ([]int, error)
	UpdateProductRating(ctx context.Context, productID uint, rating models.Rating) error
}
