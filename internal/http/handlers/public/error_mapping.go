package public

import (
	"errors"

	handlershared "github.com/oscoderuz/django-shablon/internal/http/handlers/shared"
	"github.com/oscoderuz/django-shablon/internal/http/response"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var productQueryErrorRules = []mappedHandlerError{
	{target: service.ErrPriceRangeInvalid, code: response.CodeBadRequest, key: "error.price_range_invalid"},
	{target: service.ErrOrderingInvalid, code: response.CodeBadRequest, key: "error.ordering_invalid"},
	{target: service.ErrCategoryNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
}

var accountFieldErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameInvalid, code: response.CodeBadRequest, key: "error.username_invalid"},
	{target: service.ErrUsernameExists, code: response.CodeConflict, key: "error.username_exists"},
	{target: service.ErrInvalidEmail, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrEmailExists, code: response.CodeConflict, key: "error.email_exists"},
}

var registerErrorRules = []mappedHandlerError{
	{target: service.ErrPasswordMismatch, code: response.CodeBadRequest, key: "error.password_mismatch"},
}

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrProfileGenderInvalid, code: response.CodeBadRequest, key: "error.profile_gender_invalid"},
	{target: service.ErrProfilePhoneInvalid, code: response.CodeBadRequest, key: "error.profile_phone_invalid"},
	{target: service.ErrProfileBioTooLong, code: response.CodeBadRequest, key: "error.profile_bio_too_long"},
	{target: service.ErrProfileBirthInvalid, code: response.CodeBadRequest, key: "error.profile_birth_invalid"},
	{target: service.ErrProfileFieldTooLong, code: response.CodeBadRequest, key: "error.profile_field_too_long"},
	{target: service.ErrProfileWebsiteInvalid, code: response.CodeBadRequest, key: "error.profile_website_invalid"},
}

var loginErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.login_invalid"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, key: "error.user_disabled"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrReviewNotFound, code: response.CodeNotFound, key: "error.review_not_found"},
	{target: service.ErrReviewNotOwner, code: response.CodeForbidden, key: "error.review_not_owner"},
	{target: service.ErrReviewExists, code: response.CodeConflict, key: "error.review_exists"},
	{target: service.ErrReviewScoreInvalid, code: response.CodeBadRequest, key: "error.review_score_invalid"},
	{target: service.ErrReviewBodyRequired, code: response.CodeBadRequest, key: "error.review_body_required"},
}

func respondRegisterError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrWeakPassword) {
		if !handlershared.RespondPasswordPolicyError(c, err) {
			respondError(c, response.CodeBadRequest, "error.password_weak", nil)
		}
		return
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(accountFieldErrorRules, registerErrorRules), response.CodeInternal, "error.register_failed")
}

func respondProfileError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(accountFieldErrorRules, profileErrorRules), response.CodeInternal, "error.profile_update_failed")
}
