package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/models"
)

type memoryStore struct {
	slugs   map[string]uint
	reviews map[uint][]memoryReview
	ratings map[uint]models.Rating
	nextID  uint
	failErr error
}

type memoryReview struct {
	score    int
	approved bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		slugs:   map[string]uint{},
		reviews: map[uint][]memoryReview{},
		ratings: map[uint]models.Rating{},
	}
}

func (s *memoryStore) insert(product *models.Product) {
	s.nextID++
	product.ID = s.nextID
	s.slugs[product.Slug] = product.ID
	s.ratings[product.ID] = models.Rating{}
}

func (s *memoryStore) SlugExists(_ context.Context, slug string) (bool, error) {
	if s.failErr != nil {
		return false, s.failErr
	}
	_, ok := s.slugs[slug]
	return ok, nil
}

func (s *memoryStore) ProductOwnsSlug(_ context.Context, productID uint, slug string) (bool, error) {
	owner, ok := s.slugs[slug]
	return ok && owner == productID, nil
}

func (s *memoryStore) ProductExists(_ context.Context, productID uint) (bool, error) {
	_, ok := s.ratings[productID]
	return ok, nil
}

func (s *memoryStore) ApprovedReviewScores(_ context.Context, productID uint) ([]int, error) {
	scores := []int{}
	for _, r := range s.reviews[productID] {
		if r.approved {
			scores = append(scores, r.score)
		}
	}
	return scores, nil
}

func (s *memoryStore) UpdateProductRating(_ context.Context, productID uint, rating models.Rating) error {
	s.ratings[productID] = rating
	return nil
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":          "hello-world",
		"  Samsung  Galaxy S24 ": "samsung-galaxy-s24",
		"Телефон Нокиа":          "телефон-нокиа",
		"O'zbekiston--choyi":     "o-zbekiston-choyi",
		"!!!":                    "",
		"Ｆｕｌｌ Width":             "full-width",
	}
	for input, want := range cases {
		if got := Slugify(input); got != want {
			t.Fatalf("slugify(%q) want %q got %q", input, want, got)
		}
	}
}

func TestSlugAssignerUniqueAcrossCollisions(t *testing.T) {
	store := newMemoryStore()
	assigner := NewSlugAssigner(100)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		p := &models.Product{Name: "Smart Phone"}
		if err := assigner.BeforeSave(ctx, store, p); err != nil {
			t.Fatalf("assign failed: %v", err)
		}
		if seen[p.Slug] {
			t.Fatalf("duplicate slug assigned: %s", p.Slug)
		}
		seen[p.Slug] = true
		store.insert(p)
	}
	for _, want := range []string{"smart-phone", "smart-phone-1", "smart-phone-2", "smart-phone-3", "smart-phone-4"} {
		if !seen[want] {
			t.Fatalf("expected slug %s to be assigned, got %v", want, seen)
		}
	}
}

func TestSlugAssignerKeepsExistingSlug(t *testing.T) {
	store := newMemoryStore()
	assigner := NewSlugAssigner(100)
	p := &models.Product{Name: "Lamp", Slug: "custom-lamp"}
	if err := assigner.BeforeSave(context.Background(), store, p); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if p.Slug != "custom-lamp" {
		t.Fatalf("manual slug should be kept, got %s", p.Slug)
	}
}

func TestSlugAssignerOwnSlugStopsSearch(t *testing.T) {
	store := newMemoryStore()
	assigner := NewSlugAssigner(100)
	ctx := context.Background()

	first := &models.Product{Name: "Chair", Slug: "chair"}
	store.insert(first)
	second := &models.Product{Name: "Chair", Slug: "chair-1"}
	store.insert(second)

	// 清空 slug 后重新保存，冲突 slug 属于自身时保持不变
	second.Slug = ""
	if err := assigner.BeforeSave(ctx, store, second); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if second.Slug != "chair-1" {
		t.Fatalf("own slug should be reused, got %s", second.Slug)
	}
}

func TestSlugAssignerFallsBackToRandomSuffix(t *testing.T) {
	store := newMemoryStore()
	store.slugs["desk"] = 100
	for i := 1; i <= 3; i++ {
		store.slugs[fmt.Sprintf("desk-%d", i)] = uint(100 + i)
	}
	assigner := NewSlugAssigner(3)
	assigner.randomSuffix = func() string { return "abcd1234" }

	p := &models.Product{Name: "Desk"}
	if err := assigner.BeforeSave(context.Background(), store, p); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if p.Slug != "desk-abcd1234" {
		t.Fatalf("expected random fallback slug, got %s", p.Slug)
	}
}

func TestSlugAssignerEmptyName(t *testing.T) {
	store := newMemoryStore()
	assigner := NewSlugAssigner(10)
	p := &models.Product{Name: "???"}
	if err := assigner.BeforeSave(context.Background(), store, p); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if p.Slug != "product" {
		t.Fatalf("empty base should fall back to product, got %s", p.Slug)
	}
}

func TestSlugAssignerPropagatesStoreError(t *testing.T) {
	store := newMemoryStore()
	store.failErr = errors.New("db down")
	assigner := NewSlugAssigner(10)
	if err := assigner.BeforeSave(context.Background(), store, &models.Product{Name: "X"}); !errors.Is(err, store.failErr) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestReconcileStatus(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		status   string
		want     string
	}{
		{name: "empty_stock_available", quantity: 0, status: constants.ProductStatusAvailable, want: constants.ProductStatusOutOfStock},
		{name: "restocked_out_of_stock", quantity: 5, status: constants.ProductStatusOutOfStock, want: constants.ProductStatusAvailable},
		{name: "backorder_kept_with_stock", quantity: 5, status: constants.ProductStatusBackorder, want: constants.ProductStatusBackorder},
		{name: "backorder_kept_without_stock", quantity: 0, status: constants.ProductStatusBackorder, want: constants.ProductStatusBackorder},
		{name: "consistent_available", quantity: 2, status: constants.ProductStatusAvailable, want: constants.ProductStatusAvailable},
		{name: "consistent_out_of_stock", quantity: 0, status: constants.ProductStatusOutOfStock, want: constants.ProductStatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			once := ReconcileStatus(tc.quantity, tc.status)
			if once != tc.want {
				t.Fatalf("status want %s got %s", tc.want, once)
			}
			if twice := ReconcileStatus(tc.quantity, once); twice != once {
				t.Fatalf("reconcile should be idempotent: %s -> %s", once, twice)
			}
		})
	}
}

func TestAvailabilityReconcilerDefaultsEmptyStatus(t *testing.T) {
	p := &models.Product{Quantity: 0}
	if err := (AvailabilityReconciler{}).BeforeSave(context.Background(), nil, p); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if p.Status != constants.ProductStatusOutOfStock {
		t.Fatalf("empty status with zero stock want out_of_stock got %s", p.Status)
	}
}

func TestAverageRating(t *testing.T) {
	if got := AverageRating([]int{4, 5, 3}).StringFixed(2); got != "4.00" {
		t.Fatalf("average want 4.00 got %s", got)
	}
	if got := AverageRating([]int{4, 5}).StringFixed(2); got != "4.50" {
		t.Fatalf("average want 4.50 got %s", got)
	}
	if got := AverageRating([]int{5, 4, 4}).StringFixed(2); got != "4.33" {
		t.Fatalf("average want 4.33 got %s", got)
	}
	if got := AverageRating(nil); !got.IsZero() {
		t.Fatalf("empty average want 0 got %s", got.String())
	}
}

func TestRatingAggregatorRoundTrip(t *testing.T) {
	store := newMemoryStore()
	p := &models.Product{Slug: "tea"}
	store.insert(p)
	store.reviews[p.ID] = []memoryReview{{score: 4, approved: true}, {score: 5, approved: true}, {score: 3, approved: true}, {score: 1, approved: false}}

	agg := RatingAggregator{}
	ctx := context.Background()
	if err := agg.AfterReviewChange(ctx, store, []uint{p.ID}); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if got := store.ratings[p.ID].StringFixed(2); got != "4.00" {
		t.Fatalf("rating want 4.00 got %s", got)
	}

	store.reviews[p.ID] = store.reviews[p.ID][:2]
	if err := agg.AfterReviewChange(ctx, store, []uint{p.ID}); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if got := store.ratings[p.ID].StringFixed(2); got != "4.50" {
		t.Fatalf("rating want 4.50 got %s", got)
	}

	for i := range store.reviews[p.ID] {
		store.reviews[p.ID][i].approved = false
	}
	if err := agg.AfterReviewChange(ctx, store, []uint{p.ID}); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}
	if got := store.ratings[p.ID]; !got.IsZero() {
		t.Fatalf("rating without approved reviews want 0 got %s", got.StringFixed(2))
	}
}

func TestRatingAggregatorSkipsMissingProduct(t *testing.T) {
	store := newMemoryStore()
	_, updated, err := RatingAggregator{}.Recompute(context.Background(), store, 42)
	if err != nil {
		t.Fatalf("missing product should not error: %v", err)
	}
	if updated {
		t.Fatalf("missing product should be skipped")
	}
}

func TestUniqueIDs(t *testing.T) {
	got := UniqueIDs([]uint{3, 1, 3, 0, 2, 1})
	want := []uint{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("unique ids want %v got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unique ids want %v got %v", want, got)
		}
	}
}

func TestDefaultPipelineOrder(t *testing.T) {
	p := DefaultPipeline(Options{MaxSlugAttempts: 5})
	names := p.ProductHookNames()
	if len(names) != 2 || names[0] != "slug_assigner" || names[1] != "availability_reconciler" {
		t.Fatalf("unexpected product hook order: %v", names)
	}
	if review := p.ReviewHookNames(); len(review) != 1 || review[0] != "rating_aggregator" {
		t.Fatalf("unexpected review hook order: %v", review)
	}
}

func TestPipelineBeforeProductSave(t *testing.T) {
	store := newMemoryStore()
	p := &models.Product{Name: "Green Tea", Quantity: 0, Status: constants.ProductStatusAvailable}
	if err := DefaultPipeline(Options{}).BeforeProductSave(context.Background(), store, p); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if p.Slug != "green-tea" {
		t.Fatalf("slug want green-tea got %s", p.Slug)
	}
	if p.Status != constants.ProductStatusOutOfStock {
		t.Fatalf("status want out_of_stock got %s", p.Status)
	}
}
