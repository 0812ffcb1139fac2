package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/oscoderuz/django-shablon/internal/models"

	"gorm.io/gorm"
)

// UserRepository 账号数据访问接口
type UserRepository interface {
	GetByUsername(username string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByIDWithProfile(id uint) (*models.User, error)
	CreateWithProfile(user *models.User, profile *models.Profile) error
	Update(user *models.User) error
	CountByUsername(username string, excludeID uint) (int64, error)
	CountByEmail(email string, excludeID uint) (int64, error)
	BumpTokenVersion(id uint) error
	TouchLastLogin(id uint, at time.Time) error
	List(filter UserListFilter) ([]models.User, int64, error)
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建账号仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) first(query *gorm.DB) (*models.User, error) {
	var user models.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取账号
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first(r.db.Where("username = ?", username))
}

// GetByID 根据 ID 获取账号
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	return r.first(r.db.Where("id = ?", id))
}

// GetByIDWithProfile 获取账号及资料
func (r *GormUserRepository) GetByIDWithProfile(id uint) (*models.User, error) {
	return r.first(r.db.Preload("Profile").Where("id = ?", id))
}

// CreateWithProfile 同一事务内创建账号与资料
func (r *GormUserRepository) CreateWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := NewProfileRepository(tx).Create(profile); err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
}

// Update 更新账号并重新保存资料
func (r *GormUserRepository) Update(user *models.User) error {
	return r.saveAccount(user.ID, user.Profile, func(tx *gorm.DB) error {
		return tx.Omit("Profile").Save(user).Error
	})
}

// saveAccount 账号写入与资料重存放在同一事务；未预加载资料时按 user_id 查出已有资料
func (r *GormUserRepository) saveAccount(userID uint, profile *models.Profile, write func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := write(tx); err != nil {
			return err
		}
		profiles := NewProfileRepository(tx)
		if profile == nil {
			existing, err := profiles.GetByUserID(userID)
			if err != nil {
				return err
			}
			if existing == nil {
				return nil
			}
			profile = existing
		}
		profile.UserID = userID
		return profiles.Update(profile)
	})
}

// CountByUsername 统计用户名数量
func (r *GormUserRepository) CountByUsername(username string, excludeID uint) (int64, error) {
	return r.count(r.db.Model(&models.User{}).Where("username = ?", username), excludeID)
}

// CountByEmail 统计邮箱数量（忽略大小写）
func (r *GormUserRepository) CountByEmail(email string, excludeID uint) (int64, error) {
	return r.count(r.db.Model(&models.User{}).Where("LOWER(email) = ?", strings.ToLower(email)), excludeID)
}

func (r *GormUserRepository) count(query *gorm.DB, excludeID uint) (int64, error) {
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// BumpTokenVersion 使该账号已签发的 token 全部失效
func (r *GormUserRepository) BumpTokenVersion(id uint) error {
	return r.saveAccount(id, nil, func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).Where("id = ?", id).
			UpdateColumn("token_version", gorm.Expr("token_version + ?", 1)).Error
	})
}

// TouchLastLogin 记录最后登录时间
func (r *GormUserRepository) TouchLastLogin(id uint, at time.Time) error {
	return r.saveAccount(id, nil, func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_login_at", at).Error
	})
}

// List 账号列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + escapeLike(keyword) + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"username", "email", "first_name", "last_name"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}
	if filter.OnlyStaff {
		query = query.Where("is_staff = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
