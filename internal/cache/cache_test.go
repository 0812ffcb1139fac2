package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/models"

	"github.com/alicebob/miniredis/v2"
)

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis failed: %v", err)
	}
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("parse miniredis port failed: %v", err)
	}
	if err := InitRedis(&config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port, Prefix: "test"}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	t.Cleanup(func() {
		Close()
		mr.Close()
	})
	return mr
}

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled failed: %v", err)
	}
	var dest []string
	hit, err := GetJSON(context.Background(), "any", &dest)
	if err != nil || hit {
		t.Fatalf("disabled cache should miss: hit=%v err=%v", hit, err)
	}
	if err := SetJSON(context.Background(), "any", []string{"x"}, time.Minute); err != nil {
		t.Fatalf("disabled set should be noop: %v", err)
	}
}

func TestCategoryListCacheRoundTrip(t *testing.T) {
	mr := setupMiniRedis(t)
	ctx := context.Background()

	categories := []models.Category{{ID: 1, Name: "Phones", IsActive: true, ProductCount: 3}}
	if err := SetCategoryList(ctx, categories, 0); err != nil {
		t.Fatalf("set category list failed: %v", err)
	}
	if !mr.Exists("test:" + categoryListKey) {
		t.Fatalf("prefixed key missing")
	}

	var cached []models.Category
	hit, err := GetCategoryList(ctx, &cached)
	if err != nil || !hit {
		t.Fatalf("expected hit: hit=%v err=%v", hit, err)
	}
	if len(cached) != 1 || cached[0].ProductCount != 3 {
		t.Fatalf("unexpected cached value: %+v", cached)
	}

	if err := InvalidateCategoryList(ctx); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	hit, _ = GetCategoryList(ctx, &cached)
	if hit {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestAccountAuthStateRoundTrip(t *testing.T) {
	setupMiniRedis(t)
	ctx := context.Background()

	user := &models.User{ID: 7, Username: "staff", IsActive: true, IsStaff: true, TokenVersion: 3}
	if err := SetAccountAuthState(ctx, BuildAccountAuthState(user)); err != nil {
		t.Fatalf("set auth state failed: %v", err)
	}
	state, hit, err := GetAccountAuthState(ctx, 7)
	if err != nil || !hit {
		t.Fatalf("expected hit: %v", err)
	}
	if !state.IsStaff || state.TokenVersion != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if err := DelAccountAuthState(ctx, 7); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	_, hit, _ = GetAccountAuthState(ctx, 7)
	if hit {
		t.Fatalf("expected miss after delete")
	}
}

func TestInitRedisUnreachableStaysDisabled(t *testing.T) {
	mr := setupMiniRedis(t)
	port, _ := strconv.Atoi(mr.Port())
	mr.Close()
	if err := InitRedis(&config.RedisConfig{Enabled: true, Host: mr.Host(), Port: port}); err == nil {
		t.Fatalf("expected ping error for closed server")
	}
	if Enabled() || Client() != nil {
		t.Fatalf("cache should stay disabled after failed init")
	}
}
