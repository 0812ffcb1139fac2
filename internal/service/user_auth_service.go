package service

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oscoderuz/django-shablon/internal/cache"
	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/events"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserAuthService 用户认证与资料服务
// 账号与资料在同一事务内创建，后续每次保存账号都会重新保存资料
type UserAuthService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	publisher events.Publisher
}

// NewUserAuthService 创建用户认证服务
func NewUserAuthService(cfg *config.Config, userRepo repository.UserRepository, publisher events.Publisher) *UserAuthService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &UserAuthService{
		cfg:       cfg,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// UserJWTClaims 用户 JWT 声明
type UserJWTClaims struct {
	UserID       uint   `json:"user_id"`
	Username     string `json:"username"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username        string
	Email           string
	FirstName       string
	LastName        string
	Password        string
	PasswordConfirm string
}

// ProfileUpdateInput 资料更新输入，nil 字段保持不变
type ProfileUpdateInput struct {
	FirstName          *string
	LastName           *string
	Email              *string
	Image              *string
	Bio                *string
	BirthDate          *string
	Gender             *string
	Phone              *string
	Address            *string
	City               *string
	Country            *string
	Website            *string
	EmailNotifications *bool
}

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}@.+\-_]+$`)

// GenerateUserJWT 生成用户 JWT Token
func (s *UserAuthService) GenerateUserJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(resolveUserJWTExpireHours(s.cfg.UserJWT)) * time.Hour)
	claims := UserJWTClaims{
		UserID:       user.ID,
		Username:     user.Username,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.UserJWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseUserJWT 解析用户 JWT Token
func (s *UserAuthService) ParseUserJWT(tokenString string) (*UserJWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserJWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.UserJWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*UserJWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("无效的 token")
}

// Register 用户注册：账号 + 资料同事务创建
func (s *UserAuthService) Register(ctx context.Context, input RegisterInput) (*models.User, string, time.Time, error) {
	username, err := normalizeUsername(input.Username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if input.Password != input.PasswordConfirm {
		return nil, "", time.Time{}, ErrPasswordMismatch
	}
	if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password, username, email); err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.ensureUnique(username, email, 0); err != nil {
		return nil, "", time.Time{}, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hashed,
		IsActive:     true,
	}
	profile := s.newProfile()
	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		return nil, "", time.Time{}, mapAccountUniqueError(err)
	}
	user.Profile = profile

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	publishEvent(ctx, s.publisher, constants.EventAccountRegistered, user.ID, map[string]interface{}{
		"username": user.Username,
	})
	return user, token, expiresAt, nil
}

// Login 用户登录
func (s *UserAuthService) Login(username, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateUserJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	now := time.Now()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		return nil, "", time.Time{}, err
	}
	user.LastLoginAt = &now
	_ = cache.SetAccountAuthState(context.Background(), cache.BuildAccountAuthState(user))
	return user, token, expiresAt, nil
}

// Logout 提升 Token 版本，使已签发 Token 失效
func (s *UserAuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.userRepo.BumpTokenVersion(userID); err != nil {
		return err
	}
	if err := cache.DelAccountAuthState(ctx, userID); err != nil {
		logger.Warnw("account_auth_state_delete_failed", "user_id", userID, "error", err)
	}
	return nil
}

// GetUserByID 获取用户（含资料）
func (s *UserAuthService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithProfile(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile 更新账号与资料；资料不存在时补建，否则重新保存
func (s *UserAuthService) UpdateProfile(userID uint, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if email != strings.ToLower(user.Email) {
			count, err := s.userRepo.CountByEmail(email, user.ID)
			if err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrEmailExists
			}
		}
		user.Email = email
	}

	if user.Profile == nil {
		user.Profile = s.newProfile()
		user.Profile.UserID = user.ID
	}
	if err := applyProfileInput(user.Profile, input); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, mapAccountUniqueError(err)
	}
	return user, nil
}

// EnsureSuperuser 确保默认超级管理员存在（首次启动时创建）
func (s *UserAuthService) EnsureSuperuser(username, email, password string) (*models.User, bool, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	email, err = normalizeEmail(email)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(password) == "" {
		return nil, false, ErrInvalidPassword
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, false, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := s.userRepo.CreateWithProfile(user, s.newProfile()); err != nil {
		return nil, false, mapAccountUniqueError(err)
	}
	logger.Infow("superuser_created", "username", username)
	return user, true, nil
}

func (s *UserAuthService) newProfile() *models.Profile {
	country := strings.TrimSpace(s.cfg.Catalog.DefaultCountry)
	if country == "" {
		country = constants.ProfileDefaultCountry
	}
	return &models.Profile{
		Country:            country,
		EmailNotifications: true,
	}
}

func (s *UserAuthService) ensureUnique(username, email string, excludeID uint) error {
	count, err := s.userRepo.CountByUsername(username, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrUsernameExists
	}
	count, err = s.userRepo.CountByEmail(email, excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailExists
	}
	return nil
}

func applyProfileInput(profile *models.Profile, input ProfileUpdateInput) error {
	if input.Image != nil {
		profile.Image = strings.TrimSpace(*input.Image)
	}
	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if utf8.RuneCountInString(bio) > constants.ProfileBioMaxLen {
			return ErrProfileBioTooLong
		}
		profile.Bio = bio
	}
	if input.BirthDate != nil {
		raw := strings.TrimSpace(*input.BirthDate)
		if raw == "" {
			profile.BirthDate = nil
		} else {
			birth, err := time.Parse("2006-01-02", raw)
			if err != nil || birth.After(time.Now()) {
				return ErrProfileBirthInvalid
			}
			profile.BirthDate = &birth
		}
	}
	if input.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*input.Gender))
		if gender != "" && gender != constants.GenderMale && gender != constants.GenderFemale {
			return ErrProfileGenderInvalid
		}
		profile.Gender = gender
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if utf8.RuneCountInString(phone) > constants.ProfilePhoneMaxLen {
			return ErrProfilePhoneInvalid
		}
		profile.Phone = phone
	}
	if input.Address != nil {
		profile.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		city := strings.TrimSpace(*input.City)
		if utf8.RuneCountInString(city) > constants.ProfileCityMaxLen {
			return ErrProfileFieldTooLong
		}
		profile.City = city
	}
	if input.Country != nil {
		country := strings.TrimSpace(*input.Country)
		if country == "" || utf8.RuneCountInString(country) > constants.ProfileCountryMaxLen {
			return ErrProfileFieldTooLong
		}
		profile.Country = country
	}
	if input.Website != nil {
		website := strings.TrimSpace(*input.Website)
		if website != "" && !isWebsiteURL(website) {
			return ErrProfileWebsiteInvalid
		}
		profile.Website = website
	}
	if input.EmailNotifications != nil {
		profile.EmailNotifications = *input.EmailNotifications
	}
	return nil
}

// isWebsiteURL 仅接受带主机名的 http/https 绝对地址
func isWebsiteURL(raw string) bool {
	if utf8.RuneCountInString(raw) > constants.ProfileWebsiteMaxLen {
		return false
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Hostname() != ""
}

func mapAccountUniqueError(err error) error {
	if !repository.IsUniqueViolation(err) {
		return err
	}
	if strings.Contains(strings.ToLower(err.Error()), "email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}

func normalizeUsername(username string) (string, error) {
	normalized := strings.TrimSpace(username)
	if normalized == "" || utf8.RuneCountInString(normalized) > constants.UsernameMaxLen || !usernamePattern.MatchString(normalized) {
		return "", ErrUsernameInvalid
	}
	return normalized, nil
}

func normalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(normalized); err != nil {
		return "", ErrInvalidEmail
	}
	return normalized, nil
}

func resolveUserJWTExpireHours(cfg config.JWTConfig) int {
	if cfg.ExpireHours <= 0 {
		return 24
	}
	return cfg.ExpireHours
}
