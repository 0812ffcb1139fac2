package service

import (
	"context"
	"errors"
	"testing"

	"github.com/oscoderuz/django-shablon/internal/constants"
)

func reloadRating(t *testing.T, f *catalogFixture, productID uint) string {
	t.Helper()
	product, err := f.productRep.GetByID(productID)
	if err != nil || product == nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product.Rating.StringFixed(2)
}

func TestReviewRatingFollowsApproval(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	category := f.category(t, "Elektronika")
	product := f.product(t, category.ID, "Headphones", "50.00", 10)
	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	carol := f.register(t, "carol")

	r1, err := f.reviews.Submit(ctx, alice.ID, product.Slug, ReviewInput{Body: "great", Score: 5})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if r1.Approved {
		t.Fatalf("new review must start unapproved")
	}
	if got := reloadRating(t, f, product.ID); got != "0.00" {
		t.Fatalf("unapproved review must not count, got %s", got)
	}

	r2, err := f.reviews.Submit(ctx, bob.ID, product.Slug, ReviewInput{Body: "good", Score: 4})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	r3, err := f.reviews.Submit(ctx, carol.ID, product.Slug, ReviewInput{Body: "ok", Score: 4})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	writesBefore, approvedBefore := f.publisher.count(constants.EventReviewApproved)
	affected, err := f.reviews.SetApproved(ctx, []uint{r1.ID, r2.ID, r3.ID, r1.ID}, true)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	writes, approvedEvents := f.publisher.count(constants.EventReviewApproved)
	if writes-writesBefore != 1 || approvedEvents-approvedBefore != 3 {
		t.Fatalf("bulk approve should publish 3 events in one write, got writes=%d events=%d", writes-writesBefore, approvedEvents-approvedBefore)
	}
	if len(affected) != 1 || affected[0] != product.ID {
		t.Fatalf("unexpected affected products: %v", affected)
	}
	if got := reloadRating(t, f, product.ID); got != "4.33" {
		t.Fatalf("expected rating 4.33, got %s", got)
	}

	// 修改后重新进入待审核
	updated, err := f.reviews.UpdateOwn(ctx, alice.ID, r1.ID, ReviewInput{Body: "changed", Score: 1})
	if err != nil {
		t.Fatalf("update own failed: %v", err)
	}
	if updated.Approved {
		t.Fatalf("edited review must require approval again")
	}
	if got := reloadRating(t, f, product.ID); got != "4.00" {
		t.Fatalf("expected rating 4.00 after edit, got %s", got)
	}

	if _, err := f.reviews.SetApproved(ctx, []uint{r2.ID}, false); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if got := reloadRating(t, f, product.ID); got != "4.00" {
		t.Fatalf("expected rating 4.00 after reject, got %s", got)
	}

	if err := f.reviews.AdminDelete(ctx, r3.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if got := reloadRating(t, f, product.ID); got != "0.00" {
		t.Fatalf("expected rating 0.00 without approved reviews, got %s", got)
	}
}

func TestReviewSubmitRejectsDuplicateAndInvalid(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	category := f.category(t, "Bog")
	product := f.product(t, category.ID, "Shovel", "7.00", 1)
	user := f.register(t, "dilshod")

	if _, err := f.reviews.Submit(ctx, user.ID, product.Slug, ReviewInput{Body: "nice", Score: 6}); !errors.Is(err, ErrReviewScoreInvalid) {
		t.Fatalf("expected ErrReviewScoreInvalid, got %v", err)
	}
	if _, err := f.reviews.Submit(ctx, user.ID, product.Slug, ReviewInput{Body: "  ", Score: 3}); !errors.Is(err, ErrReviewBodyRequired) {
		t.Fatalf("expected ErrReviewBodyRequired, got %v", err)
	}
	if _, err := f.reviews.Submit(ctx, user.ID, product.Slug, ReviewInput{Body: "nice", Score: 3}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := f.reviews.Submit(ctx, user.ID, product.Slug, ReviewInput{Body: "again", Score: 2}); !errors.Is(err, ErrReviewExists) {
		t.Fatalf("expected ErrReviewExists, got %v", err)
	}
	if _, err := f.reviews.Submit(ctx, user.ID, "missing", ReviewInput{Body: "x", Score: 2}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReviewOwnershipEnforced(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	category := f.category(t, "Avto")
	product := f.product(t, category.ID, "Tyre", "70.00", 4)
	owner := f.register(t, "owner")
	other := f.register(t, "other")

	review, err := f.reviews.Submit(ctx, owner.ID, product.Slug, ReviewInput{Body: "fine", Score: 3})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := f.reviews.UpdateOwn(ctx, other.ID, review.ID, ReviewInput{Body: "hijack", Score: 1}); !errors.Is(err, ErrReviewNotOwner) {
		t.Fatalf("expected ErrReviewNotOwner, got %v", err)
	}
	if err := f.reviews.DeleteOwn(ctx, other.ID, review.ID); !errors.Is(err, ErrReviewNotOwner) {
		t.Fatalf("expected ErrReviewNotOwner, got %v", err)
	}
	if err := f.reviews.DeleteOwn(ctx, owner.ID, review.ID); err != nil {
		t.Fatalf("delete own failed: %v", err)
	}
	if err := f.reviews.DeleteOwn(ctx, owner.ID, review.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}

	types := f.publisher.types()
	if types[len(types)-1] != constants.EventReviewDeleted {
		t.Fatalf("expected review_deleted event last, got %v", types)
	}
}

func TestMaintenanceRecomputeRatings(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	category := f.category(t, "Musiqa")
	product := f.product(t, category.ID, "Guitar", "150.00", 1)
	user := f.register(t, "aziz")
	review, err := f.reviews.Submit(ctx, user.ID, product.Slug, ReviewInput{Body: "loud", Score: 3})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	// 绕过写路径直接改库，模拟历史数据
	if err := f.db.Exec("UPDATE reviews SET approved = ? WHERE id = ?", true, review.ID).Error; err != nil {
		t.Fatalf("raw update failed: %v", err)
	}
	if got := reloadRating(t, f, product.ID); got != "0.00" {
		t.Fatalf("rating should be stale before backfill, got %s", got)
	}

	maintenance := NewMaintenanceService(f.db, f.productRep, nil)
	queued, count, err := maintenance.RequestRatingRecompute(ctx, nil)
	if err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if queued || count != 1 {
		t.Fatalf("expected inline recompute of 1 product, got queued=%v count=%d", queued, count)
	}
	if got := reloadRating(t, f, product.ID); got != "3.00" {
		t.Fatalf("expected rating 3.00 after backfill, got %s", got)
	}
}
