package admin

import (
	"errors"
	"strings"

	handlershared "github.com/oscoderuz/django-shablon/internal/http/handlers/shared"
	"github.com/oscoderuz/django-shablon/internal/http/response"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	IsActive    *bool  `json:"is_active"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		IsActive:    r.IsActive,
	}
}

// ProductRequest 商品创建/更新请求
// slug 为空时由名称自动生成
type ProductRequest struct {
	Name             string           `json:"name" binding:"required"`
	Slug             *string          `json:"slug"`
	CategoryID       uint             `json:"category_id" binding:"required"`
	ShortDescription string           `json:"short_description"`
	Description      string           `json:"description"`
	Price            decimal.Decimal  `json:"price"`
	DiscountPrice    *decimal.Decimal `json:"discount_price"`
	Image            string           `json:"image"`
	Quantity         int              `json:"quantity"`
	Status           string           `json:"status"`
	IsFeatured       *bool            `json:"is_featured"`
	IsNew            *bool            `json:"is_new"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:             r.Name,
		Slug:             r.Slug,
		CategoryID:       r.CategoryID,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Price:            r.Price,
		DiscountPrice:    r.DiscountPrice,
		Image:            r.Image,
		Quantity:         r.Quantity,
		Status:           r.Status,
		IsFeatured:       r.IsFeatured,
		IsNew:            r.IsNew,
	}
}

var categoryWriteErrorRules = []mappedHandlerError{
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
	{target: service.ErrCategoryNameInvalid, code: response.CodeBadRequest, key: "error.category_name_invalid"},
	{target: service.ErrCategoryExists, code: response.CodeConflict, key: "error.category_exists"},
}

var productWriteErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCategoryNotFound, code: response.CodeBadRequest, key: "error.category_not_found"},
	{target: service.ErrProductNameInvalid, code: response.CodeBadRequest, key: "error.product_name_invalid"},
	{target: service.ErrProductSlugInvalid, code: response.CodeBadRequest, key: "error.product_slug_invalid"},
	{target: service.ErrSlugExists, code: response.CodeConflict, key: "error.slug_exists"},
	{target: service.ErrProductPriceInvalid, code: response.CodeBadRequest, key: "error.product_price_invalid"},
	{target: service.ErrDiscountPriceInvalid, code: response.CodeBadRequest, key: "error.discount_price_invalid"},
	{target: service.ErrProductQuantityInvalid, code: response.CodeBadRequest, key: "error.product_quantity_invalid"},
	{target: service.ErrProductStatusInvalid, code: response.CodeBadRequest, key: "error.product_status_invalid"},
	{target: service.ErrProductImageRequired, code: response.CodeBadRequest, key: "error.product_image_required"},
	{target: service.ErrProductShortDescInvalid, code: response.CodeBadRequest, key: "error.product_short_desc_invalid"},
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListAdmin()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, categories)
}

// GetAdminCategory 获取分类详情 (Admin)
func (h *Handler) GetAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.category_id_invalid")
	if !ok {
		return
	}
	category, err := h.CategoryService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "error.category_fetch_failed")
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "error.category_create_failed")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.category_id_invalid")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "error.category_update_failed")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类（级联删除商品与评价）
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "error.category_id_invalid")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, categoryWriteErrorRules, response.CodeInternal, "error.category_delete_failed")
		return
	}
	requestLog(c).Infow("admin_category_deleted", "category_id", id, "operator", currentUsername(c))
	response.Success(c, nil)
}

// GetAdminProducts 获取商品列表 (Admin)
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	categoryID, ok := handlershared.ParseUintQuery(c, "category_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.category_id_invalid", nil)
		return
	}
	isFeatured, ok := handlershared.ParseBoolQuery(c, "is_featured")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	isNew, ok := handlershared.ParseBoolQuery(c, "is_new")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	products, total, err := h.ProductService.ListAdmin(service.AdminProductQuery{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Status:     strings.TrimSpace(c.Query("status")),
		IsFeatured: isFeatured,
		IsNew:      isNew,
		Keyword:    strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		if errors.Is(err, service.ErrProductStatusInvalid) {
			respondError(c, response.CodeBadRequest, "error.product_status_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, products, handlershared.BuildPagination(page, pageSize, total))
}

// GetAdminProduct 获取商品详情 (Admin)
func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_fetch_failed")
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Create(c.Request.Context(), adminID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_create_failed")
		return
	}
	response.Success(c, product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	product, err := h.ProductService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_update_failed")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_delete_failed")
		return
	}
	requestLog(c).Infow("admin_product_deleted", "product_id", id, "operator", currentUsername(c))
	response.Success(c, nil)
}

// ResetProductViewCount 浏览次数清零
func (h *Handler) ResetProductViewCount(c *gin.Context) {
	id, ok := parseIDParam(c, "error.product_id_invalid")
	if !ok {
		return
	}
	if err := h.ProductService.ResetViewCount(id); err != nil {
		respondWithMappedError(c, err, productWriteErrorRules, response.CodeInternal, "error.product_update_failed")
		return
	}
	response.Success(c, gin.H{"id": id, "view_count": 0})
}
