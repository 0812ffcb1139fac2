package reconcile

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/oscoderuz/django-shablon/internal/constants"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const (
	slugFallbackBase    = "product"
	slugRandomSuffixLen = 8
	slugRandomRetries   = 3
	// 预留给 "-数字" 或随机后缀的长度
	slugSuffixReserve = 12
)

// Slugify 将名称转换为 URL 安全的 slug（保留 Unicode 字母数字，其余连续字符折叠为 "-"）
func Slugify(name string) string {
	normalized := norm.NFKC.String(name)
	var b strings.Builder
	pendingSep := false
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// SlugAssigner 商品 slug 分配器
type SlugAssigner struct {
	maxAttempts  int
	randomSuffix func() string
}

// NewSlugAssigner 创建 slug 分配器，maxAttempts 为数字后缀的尝试上限
func NewSlugAssigner(maxAttempts int) *SlugAssigner {
	if maxAttempts <= 0 {
		maxAttempts = constants.SlugMaxAttemptsDefault
	}
	return &SlugAssigner{
		maxAttempts: maxAttempts,
		randomSuffix: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:slugRandomSuffixLen]
		},
	}
}

// Name 钩子名称
func (a *SlugAssigner) Name() string {
	return "slug_assigner"
}

// BeforeSave 仅在 slug 为空时分配，已有 slug 不会被覆盖
func (a *SlugAssigner) BeforeSave(ctx context.Context, store Store, product *models.Product) error {
	if product == nil || strings.TrimSpace(product.Slug) != "" {
		return nil
	}
	slug, err := a.Assign(ctx, store, product.ID, product.Name)
	if err != nil {
		return err
	}
	product.Slug = slug
	return nil
}

// Assign 为名称生成未被占用的 slug；ownerID 非 0 时若冲突 slug 属于自身则直接沿用
func (a *SlugAssigner) Assign(ctx context.Context, store Store, ownerID uint, name string) (string, error) {
	base := truncateRunes(Slugify(name), constants.ProductSlugMaxLen-slugSuffixReserve)
	if base == "" {
		base = slugFallbackBase
	}

	candidate := base
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		free, err := a.claimable(ctx, store, ownerID, candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	logger.Warnw("product_slug_fallback", "base", base, "attempts", a.maxAttempts)
	for i := 0; i < slugRandomRetries; i++ {
		candidate = fmt.Sprintf("%s-%s", base, a.randomSuffix())
		free, err := a.claimable(ctx, store, ownerID, candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	// 唯一约束兜底
	return candidate, nil
}

func (a *SlugAssigner) claimable(ctx context.Context, store Store, ownerID uint, candidate string) (bool, error) {
	exists, err := store.SlugExists(ctx, candidate)
	if err != nil {
		return false, err
	}
	if !exists {
		return true, nil
	}
	if ownerID == 0 {
		return false, nil
	}
	return store.ProductOwnsSlug(ctx, ownerID, candidate)
}

func truncateRunes(value string, limit int) string {
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimRight(string(runes[:limit]), "-")
}
