package public

import (
	"time"

	"github.com/oscoderuz/django-shablon/internal/constants"
	handlershared "github.com/oscoderuz/django-shablon/internal/http/handlers/shared"
	"github.com/oscoderuz/django-shablon/internal/http/response"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username        string                              `json:"username" binding:"required"`
	Email           string                              `json:"email" binding:"required"`
	FirstName       string                              `json:"first_name"`
	LastName        string                              `json:"last_name"`
	Password        string                              `json:"password" binding:"required"`
	PasswordConfirm string                              `json:"password_confirm" binding:"required"`
	CaptchaPayload  handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username       string                              `json:"username" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UpdateProfileRequest 资料更新请求，未提交的字段保持不变
type UpdateProfileRequest struct {
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Email              *string `json:"email"`
	Image              *string `json:"image"`
	Bio                *string `json:"bio"`
	BirthDate          *string `json:"birth_date"`
	Gender             *string `json:"gender"`
	Phone              *string `json:"phone"`
	Address            *string `json:"address"`
	City               *string `json:"city"`
	Country            *string `json:"country"`
	Website            *string `json:"website"`
	EmailNotifications *bool   `json:"email_notifications"`
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneRegister, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	response.Success(c, gin.H{
		"user":       buildAccountView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !handlershared.VerifyCaptcha(c, h.CaptchaService, constants.CaptchaSceneLogin, req.CaptchaPayload) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, loginErrorRules, response.CodeInternal, "error.login_failed")
		return
	}
	response.Success(c, gin.H{
		"user":       buildAccountView(user),
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// UserLogout 用户登出，已签发 Token 全部失效
func (h *Handler) UserLogout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	if err := h.UserAuthService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, response.CodeInternal, "error.logout_failed", err)
		return
	}
	response.Success(c, nil)
}

// GetMyProfile 获取当前用户资料
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.user_fetch_failed")
		return
	}
	response.Success(c, buildAccountView(user))
}

// UpdateMyProfile 更新当前用户资料
func (h *Handler) UpdateMyProfile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.UserAuthService.UpdateProfile(userID, service.ProfileUpdateInput{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Email:              req.Email,
		Image:              req.Image,
		Bio:                req.Bio,
		BirthDate:          req.BirthDate,
		Gender:             req.Gender,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		Country:            req.Country,
		Website:            req.Website,
		EmailNotifications: req.EmailNotifications,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}
	response.Success(c, buildAccountView(user))
}

func buildAccountView(user *models.User) gin.H {
	view := gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"full_name":  user.FullName(),
		"is_staff":   user.IsStaff,
	}
	if user.Profile != nil {
		view["profile"] = gin.H{
			"image":               user.Profile.Image,
			"bio":                 user.Profile.Bio,
			"birth_date":          formatBirthDate(user.Profile.BirthDate),
			"age":                 user.Profile.Age(time.Now()),
			"gender":              user.Profile.Gender,
			"phone":               user.Profile.Phone,
			"address":             user.Profile.Address,
			"city":                user.Profile.City,
			"country":             user.Profile.Country,
			"website":             user.Profile.Website,
			"email_notifications": user.Profile.EmailNotifications,
		}
	}
	return view
}

func formatBirthDate(birth *time.Time) *string {
	if birth == nil {
		return nil
	}
	formatted := birth.Format("2006-01-02")
	return &formatted
}
