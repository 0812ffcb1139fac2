package public

import (
	"net/http"
	"strings"
	"time"

	handlershared "github.com/oscoderuz/django-shablon/internal/http/handlers/shared"
	"github.com/oscoderuz/django-shablon/internal/http/response"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PublicProductView 公共商品响应结构
type PublicProductView struct {
	models.Product
	EffectivePrice  models.Money    `json:"effective_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	InStock         bool            `json:"in_stock"`
}

// PublicReviewView 商品详情中的评价
type PublicReviewView struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Score     int       `json:"score"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

func decoratePublicProduct(product models.Product) PublicProductView {
	return PublicProductView{
		Product:         product,
		EffectivePrice:  product.EffectivePrice(),
		DiscountPercent: product.DiscountPercent(),
		InStock:         product.InStock(),
	}
}

func decoratePublicProducts(products []models.Product) []PublicProductView {
	items := make([]PublicProductView, 0, len(products))
	for i := range products {
		items = append(items, decoratePublicProduct(products[i]))
	}
	return items
}

// pageSize 未指定 page_size 时使用目录配置
func (h *Handler) pageSize(pageSize int) int {
	if pageSize > 0 {
		return pageSize
	}
	if h.Config != nil && h.Config.Catalog.PageSize > 0 {
		return h.Config.Catalog.PageSize
	}
	return 0
}

// GetHome 首页：推荐商品与新品
func (h *Handler) GetHome(c *gin.Context) {
	featured, fresh, err := h.ProductService.HomeProducts()
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"featured_products": decoratePublicProducts(featured),
		"new_products":      decoratePublicProducts(fresh),
	})
}

// GetCategories 获取启用分类（含商品数量）
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetCategoryProducts 获取分类下的商品
func (h *Handler) GetCategoryProducts(c *gin.Context) {
	categoryID, ok := handlershared.ParseUintParam(c, "id", "error.category_id_invalid")
	if !ok {
		return
	}
	page, pageSize := handlershared.PageQuery(c)
	pageSize = h.pageSize(pageSize)

	category, products, total, err := h.ProductService.ListByCategory(categoryID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, productQueryErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	c.JSON(http.StatusOK, response.PageResponse{
		StatusCode: response.CodeOK,
		Msg:        "success",
		Data: gin.H{
			"category": category,
			"products": decoratePublicProducts(products),
		},
		Pagination: handlershared.BuildPagination(page, pageSize, total),
	})
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	q, ok := h.bindProductQuery(c)
	if !ok {
		return
	}
	products, total, err := h.ProductService.ListPublic(q)
	if err != nil {
		respondWithMappedError(c, err, productQueryErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.SuccessWithPage(c, decoratePublicProducts(products), handlershared.BuildPagination(q.Page, q.PageSize, total))
}

// SearchProducts 搜索商品（启用搜索引擎时优先走索引）
func (h *Handler) SearchProducts(c *gin.Context) {
	q, ok := h.bindProductQuery(c)
	if !ok {
		return
	}
	if q.Search == "" {
		q.Search = strings.TrimSpace(c.Query("q"))
	}
	products, total, err := h.ProductService.Search(c.Request.Context(), q)
	if err != nil {
		respondWithMappedError(c, err, productQueryErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.SuccessWithPage(c, decoratePublicProducts(products), handlershared.BuildPagination(q.Page, q.PageSize, total))
}

// GetProductBySlug 根据 slug 获取商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	detail, err := h.ProductService.GetPublicDetail(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
		}, response.CodeInternal, "error.product_fetch_failed")
		return
	}

	reviews := make([]PublicReviewView, 0, len(detail.Reviews))
	for _, review := range detail.Reviews {
		reviews = append(reviews, PublicReviewView{
			ID:        review.ID,
			Author:    review.User.FullName(),
			Score:     review.Score,
			Body:      review.Body,
			CreatedAt: review.CreatedAt,
		})
	}
	response.Success(c, gin.H{
		"product":          decoratePublicProduct(*detail.Product),
		"reviews":          reviews,
		"similar_products": decoratePublicProducts(detail.Similar),
	})
}

func (h *Handler) bindProductQuery(c *gin.Context) (service.ProductQuery, bool) {
	page, pageSize := handlershared.PageQuery(c)
	q := service.ProductQuery{
		Page:     page,
		PageSize: h.pageSize(pageSize),
		Search:   strings.TrimSpace(c.Query("search")),
		Ordering: strings.TrimSpace(c.Query("ordering")),
	}
	categoryID, ok := handlershared.ParseUintQuery(c, "category")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.category_id_invalid", nil)
		return q, false
	}
	q.CategoryID = categoryID

	minPrice, ok := parseDecimalQuery(c, "min_price")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.price_range_invalid", nil)
		return q, false
	}
	maxPrice, ok := parseDecimalQuery(c, "max_price")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.price_range_invalid", nil)
		return q, false
	}
	q.MinPrice, q.MaxPrice = minPrice, maxPrice
	return q, true
}

func parseDecimalQuery(c *gin.Context, name string) (*decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &value, true
}
