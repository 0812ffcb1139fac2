package service

import (
	"context"
	"errors"
	"testing"
)

func TestCategoryCRUDAndCascade(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	category := f.category(t, "Kosmetika")

	if _, err := f.categories.Create(ctx, CategoryInput{Name: " Kosmetika "}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
	if _, err := f.categories.Create(ctx, CategoryInput{Name: "  "}); !errors.Is(err, ErrCategoryNameInvalid) {
		t.Fatalf("expected ErrCategoryNameInvalid, got %v", err)
	}

	product := f.product(t, category.ID, "Cream", "12.00", 3)
	user := f.register(t, "laylo")
	if _, err := f.reviews.Submit(ctx, user.ID, product.Slug, ReviewInput{Body: "soft", Score: 5}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	active, err := f.categories.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 1 || active[0].ProductCount != 1 {
		t.Fatalf("unexpected active categories: %+v", active)
	}

	if err := f.categories.Delete(ctx, category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.products.GetAdminByID(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("product should be deleted with category, got %v", err)
	}
	var reviews int64
	if err := f.db.Table("reviews").Count(&reviews).Error; err != nil {
		t.Fatalf("count reviews failed: %v", err)
	}
	if reviews != 0 {
		t.Fatalf("reviews should be deleted with category, got %d", reviews)
	}
	if err := f.categories.Delete(ctx, category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
