package main

import (
	"context"
	"errors"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/provider"
	"github.com/oscoderuz/django-shablon/internal/reconcile"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	Name     string
	Category string
	Price    string
	Discount string
	Quantity int
	Featured bool
	New      bool
}

type seedReview struct {
	Username string
	Product  string
	Score    int
	Body     string
}

var seedCategories = []service.CategoryInput{
	{Name: "Telefonlar", Description: "Smartfonlar va aksessuarlar"},
	{Name: "Noutbuklar", Description: "Ish va o'yin uchun noutbuklar"},
	{Name: "Maishiy texnika"},
}

var seedProducts = []seedProduct{
	{Name: "iPhone 15", Category: "Telefonlar", Price: "999.00", Discount: "899.00", Quantity: 12, Featured: true, New: true},
	{Name: "Samsung Galaxy S24", Category: "Telefonlar", Price: "849.00", Quantity: 8, Featured: true},
	{Name: "Redmi Note 13", Category: "Telefonlar", Price: "249.90", Quantity: 0},
	{Name: "MacBook Air M3", Category: "Noutbuklar", Price: "1299.00", Discount: "1199.00", Quantity: 5, New: true},
	{Name: "Lenovo ThinkPad X1", Category: "Noutbuklar", Price: "1499.00", Quantity: 3},
	{Name: "Artel muzlatgich", Category: "Maishiy texnika", Price: "560.00", Quantity: 4, Featured: true},
}

var seedUsers = []service.RegisterInput{
	{Username: "jasur", Email: "jasur@example.com", FirstName: "Jasur", LastName: "Karimov", Password: "Secret123", PasswordConfirm: "Secret123"},
	{Username: "dilnoza", Email: "dilnoza@example.com", FirstName: "Dilnoza", Password: "Secret123", PasswordConfirm: "Secret123"},
}

var seedReviews = []seedReview{
	{Username: "jasur", Product: "iphone-15", Score: 5, Body: "Juda yaxshi telefon"},
	{Username: "dilnoza", Product: "iphone-15", Score: 4, Body: "Kamerasi zo'r, narxi qimmat"},
	{Username: "jasur", Product: "macbook-air-m3", Score: 5, Body: "Tez va yengil"},
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	c := provider.NewContainer(cfg)
	defer c.Close()
	ctx := context.Background()

	adminPassword := cfg.Admin.DefaultPassword
	if adminPassword == "" {
		adminPassword = "Admin12345"
	}
	admin, _, err := c.UserAuthService.EnsureSuperuser(cfg.Admin.DefaultUsername, cfg.Admin.DefaultEmail, adminPassword)
	if err != nil {
		stdLog.Fatalf("Failed to ensure superuser: %v", err)
	}

	categoryIDs := map[string]uint{}
	for _, input := range seedCategories {
		category, err := c.CategoryService.Create(ctx, input)
		if errors.Is(err, service.ErrCategoryExists) {
			existing, lookupErr := c.CategoryRepo.GetByName(input.Name)
			if lookupErr != nil || existing == nil {
				stdLog.Printf("Failed to load category %s: %v", input.Name, lookupErr)
				continue
			}
			category = existing
		} else if err != nil {
			stdLog.Printf("Failed to create category %s: %v", input.Name, err)
			continue
		}
		categoryIDs[category.Name] = category.ID
	}

	for _, item := range seedProducts {
		categoryID, ok := categoryIDs[item.Category]
		if !ok {
			continue
		}
		input := service.ProductInput{
			Name:             item.Name,
			CategoryID:       categoryID,
			ShortDescription: item.Name,
			Price:            decimal.RequireFromString(item.Price),
			Image:            "products/placeholder.jpg",
			Quantity:         item.Quantity,
			IsFeatured:       boolPtr(item.Featured),
			IsNew:            boolPtr(item.New),
		}
		if item.Discount != "" {
			discount := decimal.RequireFromString(item.Discount)
			input.DiscountPrice = &discount
		}
		slug := reconcile.Slugify(item.Name)
		input.Slug = &slug
		product, err := c.ProductService.Create(ctx, admin.ID, input)
		if errors.Is(err, service.ErrSlugExists) {
			stdLog.Printf("Product already exists: %s", slug)
			continue
		}
		if err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s (%s)", product.Slug, product.Status)
	}

	userIDs := map[string]uint{}
	for _, input := range seedUsers {
		user, _, _, err := c.UserAuthService.Register(ctx, input)
		if errors.Is(err, service.ErrUsernameExists) {
			existing, lookupErr := c.UserRepo.GetByUsername(input.Username)
			if lookupErr != nil || existing == nil {
				continue
			}
			user = existing
		} else if err != nil {
			stdLog.Printf("Failed to register %s: %v", input.Username, err)
			continue
		}
		userIDs[user.Username] = user.ID
	}

	var reviewIDs []uint
	for _, item := range seedReviews {
		userID, ok := userIDs[item.Username]
		if !ok {
			continue
		}
		review, err := c.ReviewService.Submit(ctx, userID, item.Product, service.ReviewInput{Score: item.Score, Body: item.Body})
		if err != nil {
			stdLog.Printf("Skip review %s/%s: %v", item.Username, item.Product, err)
			continue
		}
		reviewIDs = append(reviewIDs, review.ID)
	}
	if len(reviewIDs) > 0 {
		if _, err := c.ReviewService.SetApproved(ctx, reviewIDs, true); err != nil {
			stdLog.Printf("Failed to approve seed reviews: %v", err)
		}
	}

	stdLog.Printf("Seed completed: %d categories, %d users, %d reviews", len(categoryIDs), len(userIDs), len(reviewIDs))
}

func boolPtr(v bool) *bool {
	return &v
}
