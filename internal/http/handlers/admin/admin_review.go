package admin

import (
	"errors"

	handlershared "github.com/oscoderuz/django-shablon/internal/http/handlers/shared"
	"github.com/oscoderuz/django-shablon/internal/http/response"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewBatchRequest 批量审核请求
type ReviewBatchRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// RatingRecomputeRequest 评分重算请求，ids 为空表示全量
type RatingRecomputeRequest struct {
	ProductIDs []uint `json:"product_ids"`
}

var reviewAdminErrorRules = []mappedHandlerError{
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, key: "error.review_not_found"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.review_ids_required"},
}

// GetAdminReviews 获取评价列表 (Admin)
func (h *Handler) GetAdminReviews(c *gin.Context) {
	page, pageSize := handlershared.PageQuery(c)
	productID, ok := handlershared.ParseUintQuery(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return
	}
	userID, ok := handlershared.ParseUintQuery(c, "user_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	approved, ok := handlershared.ParseBoolQuery(c, "approved")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	reviews, total, err := h.ReviewService.AdminList(service.AdminReviewQuery{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
		UserID:    userID,
		Approved:  approved,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, reviews, handlershared.BuildPagination(page, pageSize, total))
}

// ApproveReviews 批量审核通过
func (h *Handler) ApproveReviews(c *gin.Context) {
	h.setReviewsApproved(c, true)
}

// RejectReviews 批量驳回
func (h *Handler) RejectReviews(c *gin.Context) {
	h.setReviewsApproved(c, false)
}

func (h *Handler) setReviewsApproved(c *gin.Context, approved bool) {
	var req ReviewBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	productIDs, err := h.ReviewService.SetApproved(c.Request.Context(), req.IDs, approved)
	if err != nil {
		respondWithMappedError(c, err, reviewAdminErrorRules, response.CodeInternal, "error.review_update_failed")
		return
	}
	requestLog(c).Infow("admin_reviews_moderated",
		"approved", approved,
		"review_ids", req.IDs,
		"operator", currentUsername(c),
	)
	response.Success(c, gin.H{
		"approved":    approved,
		"product_ids": productIDs,
	})
}

// DeleteReview 删除评价 (Admin)
func (h *Handler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "error.review_id_invalid")
	if !ok {
		return
	}
	if err := h.ReviewService.AdminDelete(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, reviewAdminErrorRules, response.CodeInternal, "error.review_delete_failed")
		return
	}
	response.Success(c, nil)
}

// RecomputeRatings 重算商品评分
func (h *Handler) RecomputeRatings(c *gin.Context) {
	var req RatingRecomputeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	queued, count, err := h.MaintenanceService.RequestRatingRecompute(c.Request.Context(), req.ProductIDs)
	if err != nil {
		respondError(c, response.CodeInternal, "error.rating_recompute_failed", err)
		return
	}
	requestLog(c).Infow("admin_rating_recompute", "queued", queued, "count", count, "operator", currentUsername(c))
	response.Success(c, gin.H{"queued": queued, "count": count})
}

// ReindexSearch 重建搜索索引
func (h *Handler) ReindexSearch(c *gin.Context) {
	queued, count, err := h.SearchService.RequestReindex(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSearchUnavailable) {
			respondError(c, response.CodeBadRequest, "error.search_unavailable", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.search_reindex_failed", err)
		return
	}
	requestLog(c).Infow("admin_search_reindex", "queued", queued, "count", count, "operator", currentUsername(c))
	response.Success(c, gin.H{"queued": queued, "count": count})
}
