package provider

import (
	"context"

	"github.com/oscoderuz/django-shablon/internal/authz"
	"github.com/oscoderuz/django-shablon/internal/cache"
	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/events"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/queue"
	"github.com/oscoderuz/django-shablon/internal/reconcile"
	"github.com/oscoderuz/django-shablon/internal/repository"
	"github.com/oscoderuz/django-shablon/internal/search"
	"github.com/oscoderuz/django-shablon/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	DB           *gorm.DB
	QueueClient  *queue.Client
	Publisher    events.Publisher
	SearchClient *search.Client
	Pipeline     *reconcile.Pipeline

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	UserAuthService    *service.UserAuthService
	CaptchaService     *service.CaptchaService
	CategoryService    *service.CategoryService
	ProductService     *service.ProductService
	ReviewService      *service.ReviewService
	SearchService      *service.SearchService
	MaintenanceService *service.MaintenanceService
}

// NewContainer 初始化容器（使用全局 models.DB）
func NewContainer(cfg *config.Config) *Container {
	return NewContainerWithDB(cfg, models.DB)
}

// NewContainerWithDB 使用指定连接初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	searchClient, err := search.New(cfg.Search)
	if err != nil {
		logger.Errorw("provider_init_search_client_failed", "error", err)
		searchClient = nil
	}

	c := &Container{
		Config:       cfg,
		DB:           db,
		QueueClient:  queueClient,
		Publisher:    events.New(cfg.Kafka),
		SearchClient: searchClient,
		Pipeline:     reconcile.DefaultPipeline(reconcile.Options{MaxSlugAttempts: cfg.Catalog.MaxSlugAttempts}),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.Publisher)
	c.SearchService = service.NewSearchService(c.SearchClient, c.QueueClient, c.ProductRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.SearchService, c.Config.Catalog)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.ReviewRepo, c.Pipeline, c.Publisher, c.SearchService, c.Config.Catalog)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.Pipeline, c.Publisher, c.SearchService)
	c.MaintenanceService = service.NewMaintenanceService(c.DB, c.ProductRepo, c.QueueClient)

	if c.SearchService.Enabled() {
		if err := c.SearchClient.EnsureIndex(context.Background()); err != nil {
			logger.Warnw("provider_search_ensure_index_failed", "error", err)
		}
	}
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if c.Publisher != nil {
		if err := c.Publisher.Close(); err != nil {
			logger.Warnw("provider_close_publisher_failed", "error", err)
		}
	}
	if c.Config != nil && c.Config.Redis.Enabled {
		cache.Close()
	}
}
