package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/events"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/reconcile"
	"github.com/oscoderuz/django-shablon/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	pipeline     *reconcile.Pipeline
	publisher    events.Publisher
	search       *SearchService
	catalog      config.CatalogConfig
}

// NewProductService 创建商品服务
func NewProductService(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	pipeline *reconcile.Pipeline,
	publisher events.Publisher,
	searchService *SearchService,
	catalog config.CatalogConfig,
) *ProductService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ProductService{
		repo:         repo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		pipeline:     pipeline,
		publisher:    publisher,
		search:       searchService,
		catalog:      catalog,
	}
}

// ProductInput 创建/更新商品输入
// Slug 为 nil 表示不修改；空字符串表示清空并重新生成
type ProductInput struct {
	Name             string
	Slug             *string
	CategoryID       uint
	ShortDescription string
	Description      string
	Price            decimal.Decimal
	DiscountPrice    *decimal.Decimal
	Image            string
	Quantity         int
	Status           string
	IsFeatured       *bool
	IsNew            *bool
}

// ProductQuery 前台商品查询条件
type ProductQuery struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Ordering   string
}

// AdminProductQuery 后台商品查询条件
type AdminProductQuery struct {
	Page       int
	PageSize   int
	CategoryID uint
	Status     string
	IsFeatured *bool
	IsNew      *bool
	Keyword    string
}

// ProductDetail 商品详情（含已审核评价与相似商品）
type ProductDetail struct {
	Product *models.Product
	Reviews []models.Review
	Similar []models.Product
}

// ListPublic 前台商品列表
func (s *ProductService) ListPublic(q ProductQuery) ([]models.Product, int64, error) {
	if err := validateProductQuery(q); err != nil {
		return nil, 0, err
	}
	page, pageSize := normalizePagination(q.Page, s.pageSize(q.PageSize))
	return s.repo.List(repository.ProductListFilter{
		Page:               page,
		PageSize:           pageSize,
		CategoryID:         q.CategoryID,
		Search:             q.Search,
		MinPrice:           q.MinPrice,
		MaxPrice:           q.MaxPrice,
		Ordering:           q.Ordering,
		OnlyActiveCategory: true,
		WithCategory:       true,
	})
}

// Search 搜索商品，启用 ES 时走索引，失败回退数据库
func (s *ProductService) Search(ctx context.Context, q ProductQuery) ([]models.Product, int64, error) {
	if err := validateProductQuery(q); err != nil {
		return nil, 0, err
	}
	if s.search.Enabled() && strings.TrimSpace(q.Search) != "" {
		q.PageSize = s.pageSize(q.PageSize)
		products, total, err := s.search.Search(ctx, q)
		if err == nil {
			return products, total, nil
		}
		if !errors.Is(err, ErrSearchUnavailable) {
			logger.Warnw("product_search_fallback_sql", "search", q.Search, "error", err)
		}
	}
	return s.ListPublic(q)
}

// ListByCategory 启用分类下的商品
func (s *ProductService) ListByCategory(categoryID uint, page, pageSize int) (*models.Category, []models.Product, int64, error) {
	category, err := s.categoryRepo.GetByID(categoryID)
	if err != nil {
		return nil, nil, 0, err
	}
	if category == nil || !category.IsActive {
		return nil, nil, 0, ErrCategoryNotFound
	}
	products, total, err := s.ListPublic(ProductQuery{Page: page, PageSize: pageSize, CategoryID: categoryID})
	if err != nil {
		return nil, nil, 0, err
	}
	return category, products, total, nil
}

// HomeProducts 首页推荐与新品（仅有货商品）
func (s *ProductService) HomeProducts() ([]models.Product, []models.Product, error) {
	size := s.catalog.HomeListSize
	if size <= 0 {
		size = constants.CatalogHomeListDefault
	}
	yes := true
	featured, _, err := s.repo.List(repository.ProductListFilter{
		Page:               1,
		PageSize:           size,
		IsFeatured:         &yes,
		OnlyAvailable:      true,
		OnlyActiveCategory: true,
		WithCategory:       true,
	})
	if err != nil {
		return nil, nil, err
	}
	fresh, _, err := s.repo.List(repository.ProductListFilter{
		Page:               1,
		PageSize:           size,
		IsNew:              &yes,
		OnlyAvailable:      true,
		OnlyActiveCategory: true,
		WithCategory:       true,
	})
	if err != nil {
		return nil, nil, err
	}
	return featured, fresh, nil
}

// GetPublicDetail 商品详情，同时累加浏览次数
func (s *ProductService) GetPublicDetail(slug string) (*ProductDetail, error) {
	product, err := s.repo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.repo.IncrementViewCount(product.ID); err != nil {
		return nil, err
	}
	product.ViewCount++

	reviews, err := s.reviewRepo.ListApprovedByProduct(product.ID, 0)
	if err != nil {
		return nil, err
	}
	similarSize := s.catalog.SimilarSize
	if similarSize <= 0 {
		similarSize = constants.CatalogSimilarSizeDefault
	}
	similar, _, err := s.repo.List(repository.ProductListFilter{
		Page:               1,
		PageSize:           similarSize,
		CategoryID:         product.CategoryID,
		ExcludeID:          product.ID,
		OnlyAvailable:      true,
		OnlyActiveCategory: true,
	})
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: product, Reviews: reviews, Similar: similar}, nil
}

// ListAdmin 后台商品列表
func (s *ProductService) ListAdmin(q AdminProductQuery) ([]models.Product, int64, error) {
	page, pageSize := normalizePagination(q.Page, q.PageSize)
	status := strings.TrimSpace(q.Status)
	if status != "" && !isValidProductStatus(status) {
		return nil, 0, ErrProductStatusInvalid
	}
	return s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   q.CategoryID,
		Status:       status,
		IsFeatured:   q.IsFeatured,
		IsNew:        q.IsNew,
		Search:       q.Keyword,
		WithCategory: true,
	})
}

// GetAdminByID 后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品：slug 分配 -> 库存状态校正 -> 提交
func (s *ProductService) Create(ctx context.Context, creatorID uint, input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	slug := ""
	if input.Slug != nil {
		slug = strings.TrimSpace(*input.Slug)
	}
	if slug != "" {
		if err := s.ensureSlugAvailable(slug, 0); err != nil {
			return nil, err
		}
	}

	isNew := true
	if input.IsNew != nil {
		isNew = *input.IsNew
	}
	product := &models.Product{
		Slug:     slug,
		IsNew:    isNew,
		Status:   constants.ProductStatusAvailable,
		Quantity: input.Quantity,
	}
	applyProductInput(product, input)
	if creatorID != 0 {
		product.CreatorID = &creatorID
	}

	if err := s.save(ctx, product, true); err != nil {
		return nil, err
	}
	saved, err := s.reload(product.ID)
	if err != nil {
		return nil, err
	}
	s.afterProductWrite(ctx, constants.EventProductCreated, saved)
	return saved, nil
}

// Update 更新商品
func (s *ProductService) Update(ctx context.Context, id uint, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug != "" && slug != product.Slug {
			if err := s.ensureSlugAvailable(slug, product.ID); err != nil {
				return nil, err
			}
		}
		product.Slug = slug
	}
	if input.IsNew != nil {
		product.IsNew = *input.IsNew
	}
	product.Quantity = input.Quantity
	applyProductInput(product, input)

	if err := s.save(ctx, product, false); err != nil {
		return nil, err
	}
	// 分类可能已变更，重新读取以带出新的关联
	saved, err := s.reload(product.ID)
	if err != nil {
		return nil, err
	}
	s.afterProductWrite(ctx, constants.EventProductUpdated, saved)
	return saved, nil
}

// Delete 删除商品（评价级联删除）
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	invalidateCategoryCache(ctx)
	publishEvent(ctx, s.publisher, constants.EventProductDeleted, product.ID, map[string]interface{}{
		"slug":        product.Slug,
		"category_id": product.CategoryID,
	})
	s.search.RemoveProduct(ctx, product.ID)
	return nil
}

// ResetViewCount 浏览次数清零
func (s *ProductService) ResetViewCount(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.repo.ResetViewCount(id)
}

func (s *ProductService) save(ctx context.Context, product *models.Product, create bool) error {
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		store := repository.NewReconcileStore(tx)
		if err := s.pipeline.BeforeProductSave(ctx, store, product); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		if create {
			return repo.Create(product)
		}
		return repo.Update(product)
	})
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrSlugExists
		}
		return err
	}
	return nil
}

func (s *ProductService) reload(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) afterProductWrite(ctx context.Context, eventType string, product *models.Product) {
	invalidateCategoryCache(ctx)
	publishEvent(ctx, s.publisher, eventType, product.ID, map[string]interface{}{
		"slug":            product.Slug,
		"category_id":     product.CategoryID,
		"status":          product.Status,
		"quantity":        product.Quantity,
		"effective_price": product.EffectivePrice().String(),
	})
	s.search.SyncProduct(ctx, product.ID)
}

func (s *ProductService) ensureSlugAvailable(slug string, excludeID uint) error {
	if utf8.RuneCountInString(slug) > constants.ProductSlugMaxLen || reconcile.Slugify(slug) != slug {
		return ErrProductSlugInvalid
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugExists
	}
	return nil
}

func (s *ProductService) validateInput(input ProductInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > constants.ProductNameMaxLen {
		return ErrProductNameInvalid
	}
	if utf8.RuneCountInString(strings.TrimSpace(input.ShortDescription)) > constants.ProductShortDescMaxLen {
		return ErrProductShortDescInvalid
	}
	if strings.TrimSpace(input.Image) == "" {
		return ErrProductImageRequired
	}
	if input.Price.IsNegative() || !fitsDecimal(input.Price) {
		return ErrProductPriceInvalid
	}
	if input.DiscountPrice != nil {
		discount := input.DiscountPrice.Round(2)
		if discount.IsNegative() || !discount.LessThan(input.Price.Round(2)) {
			return ErrDiscountPriceInvalid
		}
	}
	if input.Quantity < 0 {
		return ErrProductQuantityInvalid
	}
	if status := strings.TrimSpace(input.Status); status != "" && !isValidProductStatus(status) {
		return ErrProductStatusInvalid
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *ProductService) pageSize(requested int) int {
	if requested > 0 {
		return requested
	}
	if s.catalog.PageSize > 0 {
		return s.catalog.PageSize
	}
	return constants.CatalogPageSizeDefault
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.Name = strings.TrimSpace(input.Name)
	product.CategoryID = input.CategoryID
	product.ShortDescription = strings.TrimSpace(input.ShortDescription)
	product.Description = strings.TrimSpace(input.Description)
	product.Price = models.NewMoneyFromDecimal(input.Price)
	product.DiscountPrice = nil
	if input.DiscountPrice != nil {
		product.DiscountPrice = models.MoneyPtr(models.NewMoneyFromDecimal(*input.DiscountPrice))
	}
	product.Image = strings.TrimSpace(input.Image)
	if status := strings.TrimSpace(input.Status); status != "" {
		product.Status = status
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
}

func validateProductQuery(q ProductQuery) error {
	if !isValidOrdering(q.Ordering) {
		return ErrOrderingInvalid
	}
	if q.MinPrice != nil && q.MinPrice.IsNegative() {
		return ErrPriceRangeInvalid
	}
	if q.MaxPrice != nil && q.MaxPrice.IsNegative() {
		return ErrPriceRangeInvalid
	}
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return ErrPriceRangeInvalid
	}
	return nil
}

func isValidProductStatus(status string) bool {
	for _, item := range constants.ProductStatuses {
		if item == status {
			return true
		}
	}
	return false
}

func isValidOrdering(ordering string) bool {
	switch strings.TrimSpace(ordering) {
	case constants.ProductOrderingDefault,
		constants.ProductOrderingPriceAsc,
		constants.ProductOrderingPriceDesc,
		constants.ProductOrderingNewest,
		constants.ProductOrderingRatingDesc:
		return true
	default:
		return false
	}
}

var maxPrice = decimal.RequireFromString("99999999.99")

// fitsDecimal decimal(10,2) 上限
func fitsDecimal(value decimal.Decimal) bool {
	return value.Round(2).LessThanOrEqual(maxPrice)
}
