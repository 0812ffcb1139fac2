package worker

import (
	"context"

	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/provider"
	"github.com/oscoderuz/django-shablon/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskRatingRecompute, c.handleRatingRecompute)
	mux.HandleFunc(queue.TaskSearchIndexProduct, c.handleSearchIndexProduct)
	mux.HandleFunc(queue.TaskSearchDeleteProduct, c.handleSearchDeleteProduct)
	mux.HandleFunc(queue.TaskSearchReindexCatalog, c.handleSearchReindex)
}

func (c *Consumer) handleRatingRecompute(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.MaintenanceService == nil {
		logger.Debugw("worker_rating_recompute_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseRatingRecomputePayload(task)
	if err != nil {
		logger.Warnw("worker_rating_recompute_unmarshal_failed", "error", err)
		return err
	}
	productIDs := payload.ProductIDs
	if payload.All {
		productIDs = nil
	} else if len(productIDs) == 0 {
		logger.Debugw("worker_rating_recompute_skip_empty_payload")
		return nil
	}
	count, err := c.MaintenanceService.RecomputeRatings(ctx, productIDs)
	if err != nil {
		logger.Warnw("worker_rating_recompute_failed", "processed", count, "error", err)
		return err
	}
	logger.Debugw("worker_rating_recompute_done", "processed", count, "all", payload.All)
	return nil
}

func (c *Consumer) handleSearchIndexProduct(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || !c.SearchService.Enabled() {
		logger.Debugw("worker_search_index_skip", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseSearchProductPayload(task)
	if err != nil {
		logger.Warnw("worker_search_index_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_search_index_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if err := c.SearchService.IndexProductNow(ctx, payload.ProductID); err != nil {
		logger.Warnw("worker_search_index_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleSearchDeleteProduct(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || !c.SearchService.Enabled() {
		logger.Debugw("worker_search_delete_skip", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseSearchProductPayload(task)
	if err != nil {
		logger.Warnw("worker_search_delete_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_search_delete_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if err := c.SearchService.DeleteProductNow(ctx, payload.ProductID); err != nil {
		logger.Warnw("worker_search_delete_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleSearchReindex(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil || !c.SearchService.Enabled() {
		logger.Debugw("worker_search_reindex_skip", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	count, err := c.SearchService.ReindexNow(ctx)
	if err != nil {
		logger.Warnw("worker_search_reindex_failed", "indexed", count, "error", err)
		return err
	}
	return nil
}
