package service

import "errors"

// 通用错误
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrForbidden          = errors.New("forbidden")
	ErrQueueUnavailable   = errors.New("queue unavailable")
	ErrSearchUnavailable  = errors.New("search unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("weak password")
	ErrUserDisabled       = errors.New("user disabled")
	ErrNotStaff           = errors.New("account is not staff")
)

// 验证码错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 分类错误
var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryNameInvalid = errors.New("category name invalid")
	ErrCategoryExists      = errors.New("category name exists")
)

// 商品错误
var (
	ErrProductNotFound         = errors.New("product not found")
	ErrProductNameInvalid      = errors.New("product name invalid")
	ErrProductSlugInvalid      = errors.New("product slug invalid")
	ErrSlugExists              = errors.New("slug exists")
	ErrProductPriceInvalid     = errors.New("product price invalid")
	ErrDiscountPriceInvalid    = errors.New("discount price invalid")
	ErrProductQuantityInvalid  = errors.New("product quantity invalid")
	ErrProductStatusInvalid    = errors.New("product status invalid")
	ErrProductImageRequired    = errors.New("product image required")
	ErrProductShortDescInvalid = errors.New("product short description invalid")
	ErrPriceRangeInvalid       = errors.New("price range invalid")
	ErrOrderingInvalid         = errors.New("ordering invalid")
)

// 评价错误
var (
	ErrReviewNotFound     = errors.New("review not found")
	ErrReviewExists       = errors.New("review already exists")
	ErrReviewScoreInvalid = errors.New("review score invalid")
	ErrReviewBodyRequired = errors.New("review body required")
	ErrReviewNotOwner     = errors.New("review not owned by user")
)

// 账号与资料错误
var (
	ErrUsernameInvalid       = errors.New("username invalid")
	ErrUsernameExists        = errors.New("username exists")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrEmailExists           = errors.New("email exists")
	ErrPasswordMismatch      = errors.New("password confirmation mismatch")
	ErrProfileGenderInvalid  = errors.New("profile gender invalid")
	ErrProfilePhoneInvalid   = errors.New("profile phone invalid")
	ErrProfileBioTooLong     = errors.New("profile bio too long")
	ErrProfileBirthInvalid   = errors.New("profile birth date invalid")
	ErrProfileFieldTooLong   = errors.New("profile field too long")
	ErrProfileWebsiteInvalid = errors.New("profile website invalid")
)
