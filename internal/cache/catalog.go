package cache

import (
	"context"
	"time"
)

const (
	categoryListKey        = "catalog:categories:active"
	categoryListDefaultTTL = 5 * time.Minute
)

// GetCategoryList 读取启用分类列表缓存
func GetCategoryList(ctx context.Context, dest interface{}) (bool, error) {
	return GetJSON(ctx, categoryListKey, dest)
}

// SetCategoryList 写入启用分类列表缓存，ttl<=0 时使用默认值
func SetCategoryList(ctx context.Context, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = categoryListDefaultTTL
	}
	return SetJSON(ctx, categoryListKey, value, ttl)
}

// InvalidateCategoryList 分类或商品变更后失效缓存
func InvalidateCategoryList(ctx context.Context) error {
	return Del(ctx, categoryListKey)
}
