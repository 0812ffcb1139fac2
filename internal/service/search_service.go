package service

import (
	"context"

	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/queue"
	"github.com/oscoderuz/django-shablon/internal/repository"
	"github.com/oscoderuz/django-shablon/internal/search"
)

// SearchService 商品搜索索引服务
// 队列启用时通过任务同步索引，否则同步执行
type SearchService struct {
	client      *search.Client
	queue       *queue.Client
	productRepo repository.ProductRepository
}

// NewSearchService 创建搜索服务（client 为 nil 表示未启用）
func NewSearchService(client *search.Client, queueClient *queue.Client, productRepo repository.ProductRepository) *SearchService {
	return &SearchService{
		client:      client,
		queue:       queueClient,
		productRepo: productRepo,
	}
}

// Enabled 是否启用 ES
func (s *SearchService) Enabled() bool {
	return s != nil && s.client != nil
}

// SyncProduct 商品写入后同步索引，失败仅记录日志
func (s *SearchService) SyncProduct(ctx context.Context, productID uint) {
	if !s.Enabled() || productID == 0 {
		return
	}
	if s.queue.Enabled() {
		if err := s.queue.EnqueueSearchIndexProduct(productID); err != nil {
			logger.Warnw("search_index_enqueue_failed", "product_id", productID, "error", err)
		}
		return
	}
	if err := s.IndexProductNow(ctx, productID); err != nil {
		logger.Warnw("search_index_product_failed", "product_id", productID, "error", err)
	}
}

// RemoveProduct 商品删除后移除索引，失败仅记录日志
func (s *SearchService) RemoveProduct(ctx context.Context, productID uint) {
	if !s.Enabled() || productID == 0 {
		return
	}
	if s.queue.Enabled() {
		if err := s.queue.EnqueueSearchDeleteProduct(productID); err != nil {
			logger.Warnw("search_delete_enqueue_failed", "product_id", productID, "error", err)
		}
		return
	}
	if err := s.DeleteProductNow(ctx, productID); err != nil {
		logger.Warnw("search_delete_product_failed", "product_id", productID, "error", err)
	}
}

// IndexProductNow 立即索引商品，商品不存在时删除文档
func (s *SearchService) IndexProductNow(ctx context.Context, productID uint) error {
	if !s.Enabled() {
		return ErrSearchUnavailable
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return s.client.DeleteProduct(ctx, productID)
	}
	return s.client.IndexProduct(ctx, search.DocumentFromProduct(product))
}

// DeleteProductNow 立即删除商品文档
func (s *SearchService) DeleteProductNow(ctx context.Context, productID uint) error {
	if !s.Enabled() {
		return ErrSearchUnavailable
	}
	return s.client.DeleteProduct(ctx, productID)
}

// ReindexNow 全量重建索引，返回写入文档数
func (s *SearchService) ReindexNow(ctx context.Context) (int, error) {
	if !s.Enabled() {
		return 0, ErrSearchUnavailable
	}
	if err := s.client.EnsureIndex(ctx); err != nil {
		return 0, err
	}
	ids, err := s.productRepo.ListAllIDs()
	if err != nil {
		return 0, err
	}
	indexed := 0
	for start := 0; start < len(ids); start += reindexBatchSize {
		end := start + reindexBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		products, err := s.productRepo.ListByIDs(ids[start:end])
		if err != nil {
			return indexed, err
		}
		for i := range products {
			if err := s.client.IndexProduct(ctx, search.DocumentFromProduct(&products[i])); err != nil {
				return indexed, err
			}
			indexed++
		}
	}
	logger.Infow("search_reindex_done", "index", s.client.Index(), "count", indexed)
	return indexed, nil
}

const reindexBatchSize = 200

// RequestReindex 队列启用时入队，否则同步执行
func (s *SearchService) RequestReindex(ctx context.Context) (bool, int, error) {
	if !s.Enabled() {
		return false, 0, ErrSearchUnavailable
	}
	if s.queue.Enabled() {
		if err := s.queue.EnqueueSearchReindex(); err != nil {
			return false, 0, err
		}
		return true, 0, nil
	}
	count, err := s.ReindexNow(ctx)
	return false, count, err
}

// Search 通过 ES 查询并按命中顺序回表
func (s *SearchService) Search(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	if !s.Enabled() {
		return nil, 0, ErrSearchUnavailable
	}
	page, pageSize := normalizePagination(q.Page, q.PageSize)
	result, err := s.client.Search(ctx, search.Query{
		Text:       q.Search,
		CategoryID: q.CategoryID,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
		Ordering:   q.Ordering,
		From:       (page - 1) * pageSize,
		Size:       pageSize,
	})
	if err != nil {
		return nil, 0, err
	}
	products, err := s.productRepo.ListByIDs(result.IDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}
	ordered := make([]models.Product, 0, len(result.IDs))
	for _, id := range result.IDs {
		if product, ok := byID[id]; ok && product.Category.IsActive {
			ordered = append(ordered, product)
		}
	}
	return ordered, result.Total, nil
}
