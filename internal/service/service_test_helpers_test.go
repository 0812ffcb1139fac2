package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/events"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/reconcile"
	"github.com/oscoderuz/django-shablon/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	writes int
}

func (p *recordingPublisher) Publish(_ context.Context, batch ...events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, batch...)
	p.writes++
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

// count 返回发布次数与指定类型的事件数
func (p *recordingPublisher) count(eventType string) (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	matched := 0
	for _, event := range p.events {
		if event.Type == eventType {
			matched++
		}
	}
	return p.writes, matched
}

type catalogFixture struct {
	db         *gorm.DB
	cfg        *config.Config
	publisher  *recordingPublisher
	categories *CategoryService
	products   *ProductService
	reviews    *ReviewService
	accounts   *UserAuthService
	admin      *AuthService
	userRepo   repository.UserRepository
	productRep repository.ProductRepository
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := models.OpenDB("sqlite", fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name), false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "user-secret", ExpireHours: 1},
		Catalog: config.CatalogConfig{MaxSlugAttempts: 5},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8},
		},
	}
	publisher := &recordingPublisher{}
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)
	pipeline := reconcile.DefaultPipeline(reconcile.Options{MaxSlugAttempts: cfg.Catalog.MaxSlugAttempts})
	searchService := NewSearchService(nil, nil, productRepo)

	return &catalogFixture{
		db:         db,
		cfg:        cfg,
		publisher:  publisher,
		categories: NewCategoryService(categoryRepo, searchService, cfg.Catalog),
		products:   NewProductService(productRepo, categoryRepo, reviewRepo, pipeline, publisher, searchService, cfg.Catalog),
		reviews:    NewReviewService(reviewRepo, productRepo, pipeline, publisher, searchService),
		accounts:   NewUserAuthService(cfg, userRepo, publisher),
		admin:      NewAuthService(cfg, userRepo),
		userRepo:   userRepo,
		productRep: productRepo,
	}
}

func (f *catalogFixture) category(t *testing.T, name string) *models.Category {
	t.Helper()
	category, err := f.categories.Create(context.Background(), CategoryInput{Name: name})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func (f *catalogFixture) product(t *testing.T, categoryID uint, name, price string, quantity int) *models.Product {
	t.Helper()
	product, err := f.products.Create(context.Background(), 0, productInput(categoryID, name, price, quantity))
	if err != nil {
		t.Fatalf("create product %q failed: %v", name, err)
	}
	return product
}

func (f *catalogFixture) register(t *testing.T, username string) *models.User {
	t.Helper()
	user, _, _, err := f.accounts.Register(context.Background(), RegisterInput{
		Username:        username,
		Email:           username + "@example.com",
		Password:        "Secret123!",
		PasswordConfirm: "Secret123!",
	})
	if err != nil {
		t.Fatalf("register %s failed: %v", username, err)
	}
	return user
}

func productInput(categoryID uint, name, price string, quantity int) ProductInput {
	return ProductInput{
		Name:       name,
		CategoryID: categoryID,
		Price:      decimal.RequireFromString(price),
		Image:      "products/" + strings.ToLower(strings.ReplaceAll(name, " ", "_")) + ".png",
		Quantity:   quantity,
	}
}

func strPtr(v string) *string { return &v }

func decPtr(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}
