package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/models"

	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := models.OpenDB("sqlite", dsn, false)
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
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string, active bool) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, IsActive: active}
	if err := NewCategoryRepository(db).Create(category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uint, slug string, price string, quantity int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       slug,
		Slug:       slug,
		CategoryID: categoryID,
		Price:      models.MustMoney(price),
		Image:      "products/" + slug + ".jpg",
		Quantity:   quantity,
		Status:     constants.ProductStatusAvailable,
		IsNew:      true,
	}
	if err := NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		IsActive:     true,
	}
	profile := &models.Profile{Country: constants.ProfileDefaultCountry, EmailNotifications: true}
	if err := NewUserRepository(db).CreateWithProfile(user, profile); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func seedReview(t *testing.T, db *gorm.DB, productID, userID uint, score int, approved bool) *models.Review {
	t.Helper()
	review := &models.Review{ProductID: productID, UserID: userID, Body: "ok", Score: score, Approved: approved}
	if err := NewReviewRepository(db).Create(review); err != nil {
		t.Fatalf("create review failed: %v", err)
	}
	return review
}
