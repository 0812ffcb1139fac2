package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oscoderuz/django-shablon/internal/cache"
	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo    repository.CategoryRepository
	search  *SearchService
	catalog config.CatalogConfig
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, searchService *SearchService, catalog config.CatalogConfig) *CategoryService {
	return &CategoryService{repo: repo, search: searchService, catalog: catalog}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Description string
	Image       string
	IsActive    *bool
}

// ListActive 前台分类列表（含商品数量，优先读缓存）
func (s *CategoryService) ListActive(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	hit, err := cache.GetCategoryList(ctx, &cached)
	if err != nil {
		logger.Warnw("category_cache_read_failed", "error", err)
	}
	if hit {
		return cached, nil
	}

	categories, err := s.repo.List(repository.CategoryListFilter{OnlyActive: true, WithProductCount: true})
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(s.catalog.CategoryCacheTTLSeconds) * time.Second
	if err := cache.SetCategoryList(ctx, categories, ttl); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return categories, nil
}

// ListAdmin 后台分类列表
func (s *CategoryService) ListAdmin() ([]models.Category, error) {
	return s.repo.List(repository.CategoryListFilter{WithProductCount: true})
}

// GetByID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	name, err := s.checkName(input.Name, 0)
	if err != nil {
		return nil, err
	}
	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Image:       strings.TrimSpace(input.Image),
		IsActive:    true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Create(&category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	invalidateCategoryCache(ctx)
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(ctx context.Context, id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	name, err := s.checkName(input.Name, id)
	if err != nil {
		return nil, err
	}
	activeChanged := input.IsActive != nil && *input.IsActive != category.IsActive

	category.Name = name
	category.Description = strings.TrimSpace(input.Description)
	category.Image = strings.TrimSpace(input.Image)
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}
	if err := s.repo.Update(category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	invalidateCategoryCache(ctx)
	if activeChanged && s.search.Enabled() {
		// 启用状态影响前台可见性，整体重建索引
		if _, _, err := s.search.RequestReindex(ctx); err != nil {
			logger.Warnw("category_search_reindex_failed", "category_id", id, "error", err)
		}
	}
	return category, nil
}

// Delete 删除分类（级联删除商品与评价）
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	invalidateCategoryCache(ctx)
	if s.search.Enabled() {
		if _, _, err := s.search.RequestReindex(ctx); err != nil {
			logger.Warnw("category_search_reindex_failed", "category_id", id, "error", err)
		}
	}
	return nil
}

func (s *CategoryService) checkName(raw string, excludeID uint) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" || utf8.RuneCountInString(name) > constants.CategoryNameMaxLen {
		return "", ErrCategoryNameInvalid
	}
	count, err := s.repo.CountByName(name, excludeID)
	if err != nil {
		return "", err
	}
	if count > 0 {
		return "", ErrCategoryExists
	}
	return name, nil
}
