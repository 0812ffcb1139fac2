package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/http/response"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/provider"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type adminCatalogFixture struct {
	AdminID    uint
	CategoryID uint
	ProductID  uint
	ReviewID   uint
	CustomerID uint
}

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := models.OpenDB("sqlite", dsn, false)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		JWT:     config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 1},
		UserJWT: config.JWTConfig{SecretKey: "user-secret", ExpireHours: 1},
		Captcha: config.CaptchaConfig{Provider: "none"},
	}
	c := provider.NewContainerWithDB(cfg, db)
	t.Cleanup(c.Close)
	return New(c), db
}

func seedAdminCatalog(t *testing.T, h *Handler) adminCatalogFixture {
	t.Helper()
	ctx := context.Background()
	admin, _, err := h.UserAuthService.EnsureSuperuser("root", "root@example.com", "Root12345")
	if err != nil {
		t.Fatalf("ensure superuser failed: %v", err)
	}
	category, err := h.CategoryService.Create(ctx, service.CategoryInput{Name: "Soatlar"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product, err := h.ProductService.Create(ctx, admin.ID, service.ProductInput{
		Name:       "Casio G-Shock",
		CategoryID: category.ID,
		Price:      decimal.NewFromInt(120),
		Image:      "products/casio.jpg",
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	customer, _, _, err := h.UserAuthService.Register(ctx, service.RegisterInput{
		Username:        "otabek",
		Email:           "otabek@example.com",
		Password:        "Secret123",
		PasswordConfirm: "Secret123",
	})
	if err != nil {
		t.Fatalf("register customer failed: %v", err)
	}
	review, err := h.ReviewService.Submit(ctx, customer.ID, product.Slug, service.ReviewInput{Score: 3, Body: "Yaxshi"})
	if err != nil {
		t.Fatalf("submit review failed: %v", err)
	}
	return adminCatalogFixture{
		AdminID:    admin.ID,
		CategoryID: category.ID,
		ProductID:  product.ID,
		ReviewID:   review.ID,
		CustomerID: customer.ID,
	}
}

func newAdminContext(method, target string, body interface{}, adminID uint, isSuper bool) (*gin.Context, *httptest.ResponseRecorder) {
	var raw []byte
	if body != nil {
		raw, _ = json.Marshal(body)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("Accept-Language", "en-US")
	c.Set("admin_id", adminID)
	c.Set("username", "root")
	c.Set("admin_is_super", isSuper)
	return c, w
}

func decodeAdminResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return resp
}

func TestCreateProductSlugConflict(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	fx := seedAdminCatalog(t, h)

	c, w := newAdminContext(http.MethodPost, "/api/v1/admin/products", gin.H{
		"name":        "Casio boshqa",
		"slug":        "casio-g-shock",
		"category_id": fx.CategoryID,
		"price":       "99.90",
		"image":       "products/casio-2.jpg",
	}, fx.AdminID, true)
	h.CreateProduct(c)
	resp := decodeAdminResponse(t, w)
	if resp.StatusCode != response.CodeConflict || resp.Msg == "" {
		t.Fatalf("explicit duplicate slug want 409 got %d %q", resp.StatusCode, resp.Msg)
	}
}

func TestCreateProductDiscountValidation(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	fx := seedAdminCatalog(t, h)

	c, w := newAdminContext(http.MethodPost, "/api/v1/admin/products", gin.H{
		"name":           "Casio Edifice",
		"category_id":    fx.CategoryID,
		"price":          "100.00",
		"discount_price": "150.00",
		"image":          "products/edifice.jpg",
	}, fx.AdminID, true)
	h.CreateProduct(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("discount above price want 400 got %d", resp.StatusCode)
	}
}

func TestApproveReviewsUpdatesRating(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	fx := seedAdminCatalog(t, h)

	c, w := newAdminContext(http.MethodPost, "/api/v1/admin/reviews/approve", gin.H{"ids": []uint{}}, fx.AdminID, true)
	h.ApproveReviews(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("empty ids want 400 got %d", resp.StatusCode)
	}

	c, w = newAdminContext(http.MethodPost, "/api/v1/admin/reviews/approve", gin.H{"ids": []uint{fx.ReviewID}}, fx.AdminID, true)
	h.ApproveReviews(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeOK {
		t.Fatalf("approve failed: %d %s", resp.StatusCode, resp.Msg)
	}

	var product models.Product
	if err := db.First(&product, fx.ProductID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if got := product.Rating.StringFixed(2); got != "3.00" {
		t.Fatalf("rating want 3.00 got %s", got)
	}

	c, w = newAdminContext(http.MethodPost, "/api/v1/admin/reviews/reject", gin.H{"ids": []uint{fx.ReviewID}}, fx.AdminID, true)
	h.RejectReviews(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeOK {
		t.Fatalf("reject failed: %d", resp.StatusCode)
	}
	if err := db.First(&product, fx.ProductID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if !product.Rating.IsZero() {
		t.Fatalf("rating should reset after reject, got %s", product.Rating.StringFixed(2))
	}
}

func TestRecomputeRatingsRunsInlineWithoutQueue(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	fx := seedAdminCatalog(t, h)
	if err := db.Model(&models.Review{}).Where("id = ?", fx.ReviewID).Update("approved", true).Error; err != nil {
		t.Fatalf("approve directly failed: %v", err)
	}

	c, w := newAdminContext(http.MethodPost, "/api/v1/admin/maintenance/ratings/recompute", gin.H{"product_ids": []uint{fx.ProductID}}, fx.AdminID, true)
	h.RecomputeRatings(c)
	resp := decodeAdminResponse(t, w)
	if resp.StatusCode != response.CodeOK {
		t.Fatalf("recompute failed: %d %s", resp.StatusCode, resp.Msg)
	}
	data := resp.Data.(map[string]interface{})
	if data["queued"] != false || data["count"] != float64(1) {
		t.Fatalf("unexpected recompute result: %v", data)
	}
	var product models.Product
	if err := db.First(&product, fx.ProductID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if got := product.Rating.StringFixed(2); got != "3.00" {
		t.Fatalf("rating want 3.00 got %s", got)
	}
}

func TestReindexSearchDisabled(t *testing.T) {
	h, _ := setupAdminHandlerTest(t)
	c, w := newAdminContext(http.MethodPost, "/api/v1/admin/maintenance/search/reindex", nil, 1, true)
	h.ReindexSearch(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("reindex without search want 400 got %d", resp.StatusCode)
	}
}

func TestResetProductViewCount(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	fx := seedAdminCatalog(t, h)
	if err := db.Model(&models.Product{}).Where("id = ?", fx.ProductID).Update("view_count", 42).Error; err != nil {
		t.Fatalf("set view count failed: %v", err)
	}

	c, w := newAdminContext(http.MethodPatch, "/", nil, fx.AdminID, true)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(fx.ProductID)}}
	h.ResetProductViewCount(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeOK {
		t.Fatalf("reset failed: %d", resp.StatusCode)
	}
	var product models.Product
	if err := db.First(&product, fx.ProductID).Error; err != nil {
		t.Fatalf("load product failed: %v", err)
	}
	if product.ViewCount != 0 {
		t.Fatalf("view count want 0 got %d", product.ViewCount)
	}

	c, w = newAdminContext(http.MethodPatch, "/", nil, fx.AdminID, true)
	c.Params = gin.Params{{Key: "id", Value: "999"}}
	h.ResetProductViewCount(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeNotFound {
		t.Fatalf("missing product want 404 got %d", resp.StatusCode)
	}
}

func TestSetAuthzUserRoles(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	fx := seedAdminCatalog(t, h)

	c, w := newAdminContext(http.MethodPut, "/", gin.H{"roles": []string{"moderator"}}, fx.AdminID, false)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(fx.CustomerID)}}
	h.SetAuthzUserRoles(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeForbidden {
		t.Fatalf("non-super want 403 got %d", resp.StatusCode)
	}

	c, w = newAdminContext(http.MethodPut, "/", gin.H{"roles": []string{"moderator"}}, fx.AdminID, true)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(fx.CustomerID)}}
	h.SetAuthzUserRoles(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("non-staff target want 400 got %d", resp.StatusCode)
	}

	if err := db.Model(&models.User{}).Where("id = ?", fx.CustomerID).Update("is_staff", true).Error; err != nil {
		t.Fatalf("promote staff failed: %v", err)
	}
	c, w = newAdminContext(http.MethodPut, "/", gin.H{"roles": []string{"moderator"}}, fx.AdminID, true)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(fx.CustomerID)}}
	h.SetAuthzUserRoles(c)
	if resp := decodeAdminResponse(t, w); resp.StatusCode != response.CodeOK {
		t.Fatalf("set roles failed: %d %s", resp.StatusCode, resp.Msg)
	}
	roles, err := h.AuthzService.GetAccountRoles(fx.CustomerID)
	if err != nil {
		t.Fatalf("load roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:moderator" {
		t.Fatalf("roles want [role:moderator] got %v", roles)
	}
}
