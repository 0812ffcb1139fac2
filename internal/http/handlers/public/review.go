package public

import (
	"github.com/oscoderuz/django-shablon/internal/constants"
	handlershared "github.com/oscoderuz/django-shablon/internal/http/handlers/shared"
	"github.com/oscoderuz/django-shablon/internal/http/response"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewRequest 评价提交/修改请求
type ReviewRequest struct {
	Body           string                              `json:"body"`
	Score          int                                 `json:"score"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

func (r ReviewRequest) toInput() service.ReviewInput {
	return service.ReviewInput{Body: r.Body, Score: r.Score}
}

// SubmitReview 提交商品评价（待审核）
func (h *Handler) SubmitReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneReview, req.CaptchaPayload) {
		return
	}

	review, err := h.ReviewService.Submit(c.Request.Context(), userID, c.Param("slug"), req.toInput())
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.review_create_failed")
		return
	}
	response.Success(c, review)
}

// UpdateMyReview 修改自己的评价（重新进入待审核）
func (h *Handler) UpdateMyReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := handlershared.ParseUintParam(c, "id", "error.review_id_invalid")
	if !ok {
		return
	}
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.UpdateOwn(c.Request.Context(), userID, reviewID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.review_update_failed")
		return
	}
	response.Success(c, review)
}

// DeleteMyReview 删除自己的评价
func (h *Handler) DeleteMyReview(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, ok := handlershared.ParseUintParam(c, "id", "error.review_id_invalid")
	if !ok {
		return
	}
	if err := h.ReviewService.DeleteOwn(c.Request.Context(), userID, reviewID); err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "error.review_delete_failed")
		return
	}
	response.Success(c, nil)
}

// GetMyReviews 获取自己的评价
func (h *Handler) GetMyReviews(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		return
	}
	response.Success(c, reviews)
}
