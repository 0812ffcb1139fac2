package worker

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/provider"
	"github.com/oscoderuz/django-shablon/internal/queue"
	"github.com/oscoderuz/django-shablon/internal/repository"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

func setupWorkerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := models.OpenDB("sqlite", dsn, false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	productRepo := repository.NewProductRepository(db)
	container := &provider.Container{
		DB:                 db,
		ProductRepo:        productRepo,
		SearchService:      service.NewSearchService(nil, nil, productRepo),
		MaintenanceService: service.NewMaintenanceService(db, productRepo, nil),
	}
	return NewConsumer(container), db
}

func seedRatedProduct(t *testing.T, db *gorm.DB, scores ...int) *models.Product {
	t.Helper()
	category := &models.Category{Name: "Worker " + t.Name(), IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		Name:       "Lamp",
		Slug:       "lamp",
		CategoryID: category.ID,
		Price:      models.MustMoney("10.00"),
		Image:      "lamp.png",
		Quantity:   1,
		Status:     "available",
	}
	if err := db.Omit("Category", "Creator").Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	for i, score := range scores {
		user := &models.User{Username: fmt.Sprintf("u%d", i), Email: fmt.Sprintf("u%d@example.com", i), PasswordHash: "x", IsActive: true}
		if err := db.Omit("Profile").Create(user).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
		review := &models.Review{ProductID: product.ID, UserID: user.ID, Body: "ok", Score: score, Approved: true}
		if err := db.Omit("Product", "User").Create(review).Error; err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}
	return product
}

func TestHandleRatingRecomputeAll(t *testing.T) {
	consumer, db := setupWorkerTest(t)
	product := seedRatedProduct(t, db, 5, 2)

	task, err := queue.NewRatingRecomputeTask(queue.RatingRecomputePayload{All: true})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleRatingRecompute(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}

	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got := stored.Rating.StringFixed(2); got != "3.50" {
		t.Fatalf("expected rating 3.50, got %s", got)
	}
}

func TestHandleRatingRecomputeRejectsBadPayload(t *testing.T) {
	consumer, _ := setupWorkerTest(t)
	task := asynq.NewTask(queue.TaskRatingRecompute, []byte("{bad"))
	if err := consumer.handleRatingRecompute(context.Background(), task); err == nil {
		t.Fatalf("expected unmarshal error")
	}

	empty, err := queue.NewRatingRecomputeTask(queue.RatingRecomputePayload{})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleRatingRecompute(context.Background(), empty); err != nil {
		t.Fatalf("empty payload should be skipped, got %v", err)
	}
}

func TestSearchHandlersSkipWhenDisabled(t *testing.T) {
	consumer, _ := setupWorkerTest(t)
	task, err := queue.NewSearchIndexProductTask(queue.SearchProductPayload{ProductID: 1})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handleSearchIndexProduct(context.Background(), task); err != nil {
		t.Fatalf("disabled search should skip, got %v", err)
	}
	if err := consumer.handleSearchReindex(context.Background(), queue.NewSearchReindexTask()); err != nil {
		t.Fatalf("disabled search should skip, got %v", err)
	}
}

func TestNewServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewService(&config.QueueConfig{Enabled: false}, &Consumer{}); err == nil {
		t.Fatalf("disabled queue should not build a worker")
	}
	if _, err := NewService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should be rejected")
	}
}

func TestNewServiceUsesConfiguredQueues(t *testing.T) {
	svc, err := NewService(&config.QueueConfig{
		Enabled: true,
		Queues:  map[string]int{"low": 1, "default": 5},
	}, &Consumer{})
	if err != nil {
		t.Fatalf("build worker failed: %v", err)
	}
	if len(svc.queues) != 2 || svc.queues[0] != "default" || svc.queues[1] != "low" {
		t.Fatalf("unexpected queues: %v", svc.queues)
	}
	if svc.Name() != "worker" {
		t.Fatalf("name want worker got %s", svc.Name())
	}
}
