package search

import (
	"strings"

	"github.com/oscoderuz/django-shablon/internal/constants"

	"github.com/shopspring/decimal"
)

// Query 搜索条件
type Query struct {
	Text       string
	CategoryID uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Ordering   string
	From       int
	Size       int
}

// BuildSearchBody 构建 ES 查询体
func BuildSearchBody(q Query) map[string]interface{} {
	must := []interface{}{}
	if text := strings.TrimSpace(q.Text); text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     text,
				"fields":    []string{"name^2", "short_description", "description"},
				"fuzziness": "AUTO",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	filter := []interface{}{}
	if q.CategoryID != 0 {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category_id": q.CategoryID},
		})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		rng := map[string]interface{}{}
		if q.MinPrice != nil {
			rng["gte"] = q.MinPrice.InexactFloat64()
		}
		if q.MaxPrice != nil {
			rng["lte"] = q.MaxPrice.InexactFloat64()
		}
		filter = append(filter, map[string]interface{}{
			"range": map[string]interface{}{"price": rng},
		})
	}

	size := q.Size
	if size <= 0 {
		size = constants.CatalogPageSizeDefault
	}
	from := q.From
	if from < 0 {
		from = 0
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"from": from,
		"size": size,
	}
	if sort := buildSort(q.Ordering, strings.TrimSpace(q.Text) != ""); sort != nil {
		body["sort"] = sort
	}
	return body
}

func buildSort(ordering string, hasText bool) []interface{} {
	switch strings.TrimSpace(ordering) {
	case constants.ProductOrderingPriceAsc:
		return []interface{}{map[string]interface{}{"price": "asc"}, map[string]interface{}{"id": "asc"}}
	case constants.ProductOrderingPriceDesc:
		return []interface{}{map[string]interface{}{"price": "desc"}, map[string]interface{}{"id": "desc"}}
	case constants.ProductOrderingRatingDesc:
		return []interface{}{map[string]interface{}{"rating": "desc"}, map[string]interface{}{"id": "desc"}}
	case constants.ProductOrderingNewest:
		return []interface{}{map[string]interface{}{"created_at": "desc"}, map[string]interface{}{"id": "desc"}}
	default:
		if hasText {
			return nil
		}
		return []interface{}{map[string]interface{}{"created_at": "desc"}, map[string]interface{}{"id": "desc"}}
	}
}
