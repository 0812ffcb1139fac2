package reconcile

import (
	"context"
	"fmt"

	"github.com/oscoderuz/django-shablon/internal/models"
)

// ProductHook 商品提交前执行的对账步骤
type ProductHook interface {
	Name() string
	BeforeSave(ctx context.Context, store Store, product *models.Product) error
}

// ReviewHook 评价提交后执行的对账步骤
type ReviewHook interface {
	Name() string
	AfterReviewChange(ctx context.Context, store Store, productIDs []uint) error
}

// Pipeline 写路径上按顺序显式调用的对账钩子
type Pipeline struct {
	productHooks []ProductHook
	reviewHooks  []ReviewHook
}

// Options 默认流水线参数
type Options struct {
	MaxSlugAttempts int
}

// NewPipeline 按给定顺序组装流水线
func NewPipeline(productHooks []ProductHook, reviewHooks []ReviewHook) *Pipeline {
	return &Pipeline{
		productHooks: productHooks,
		reviewHooks:  reviewHooks,
	}
}

// DefaultPipeline 商品：slug -> 库存状态；评价：评分聚合
func DefaultPipeline(opts Options) *Pipeline {
	return NewPipeline(
		[]ProductHook{
			NewSlugAssigner(opts.MaxSlugAttempts),
			AvailabilityReconciler{},
		},
		[]ReviewHook{
			RatingAggregator{},
		},
	)
}

// ProductHookNames 商品钩子执行顺序
func (p *Pipeline) ProductHookNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.productHooks))
	for _, hook := range p.productHooks {
		names = append(names, hook.Name())
	}
	return names
}

// ReviewHookNames 评价钩子执行顺序
func (p *Pipeline) ReviewHookNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.reviewHooks))
	for _, hook := range p.reviewHooks {
		names = append(names, hook.Name())
	}
	return names
}

// BeforeProductSave 商品写入前依次执行
func (p *Pipeline) BeforeProductSave(ctx context.Context, store Store, product *models.Product) error {
	if p == nil {
		return nil
	}
	for _, hook := range p.productHooks {
		if err := hook.BeforeSave(ctx, store, product); err != nil {
			return fmt.Errorf("%s: %w", hook.Name(), err)
		}
	}
	return nil
}

// AfterReviewChange 评价写入后依次执行
func (p *Pipeline) AfterReviewChange(ctx context.Context, store Store, productIDs ...uint) error {
	if p == nil || len(productIDs) == 0 {
		return nil
	}
	for _, hook := range p.reviewHooks {
		if err := hook.AfterReviewChange(ctx, store, productIDs); err != nil {
			return fmt.Errorf("%s: %w", hook.Name(), err)
		}
	}
	return nil
}
