package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/models"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
)

// Document 商品索引文档
type Document struct {
	ID               uint      `json:"id"`
	Slug             string    `json:"slug"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	CategoryID       uint      `json:"category_id"`
	Price            float64   `json:"price"`
	EffectivePrice   float64   `json:"effective_price"`
	Rating           float64   `json:"rating"`
	Status           string    `json:"status"`
	IsFeatured       bool      `json:"is_featured"`
	IsNew            bool      `json:"is_new"`
	CreatedAt        time.Time `json:"created_at"`
}

// DocumentFromProduct 从商品构建索引文档
func DocumentFromProduct(p *models.Product) Document {
	price, _ := p.Price.Decimal.Float64()
	effective, _ := p.EffectivePrice().Decimal.Float64()
	rating, _ := p.Rating.Decimal.Float64()
	return Document{
		ID:               p.ID,
		Slug:             p.Slug,
		Name:             p.Name,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		CategoryID:       p.CategoryID,
		Price:            price,
		EffectivePrice:   effective,
		Rating:           rating,
		Status:           p.Status,
		IsFeatured:       p.IsFeatured,
		IsNew:            p.IsNew,
		CreatedAt:        p.CreatedAt,
	}
}

// Client Elasticsearch 商品索引客户端
type Client struct {
	es    *elasticsearch.Client
	index string
}

// New 按配置创建客户端，未启用时返回 nil
func New(cfg config.SearchConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("search: create client failed: %w", err)
	}
	return NewWithClient(es, cfg.Index), nil
}

// NewWithClient 使用已有 es 客户端
func NewWithClient(es *elasticsearch.Client, index string) *Client {
	index = strings.TrimSpace(index)
	if index == "" {
		index = "products"
	}
	return &Client{es: es, index: index}
}

// Index 索引名
func (c *Client) Index() string {
	return c.index
}

const indexMapping = `{
  "mappings": {
    "properties": {
      "id": {"type": "long"},
      "slug": {"type": "keyword"},
      "name": {"type": "text"},
      "short_description": {"type": "text"},
      "description": {"type": "text"},
      "category_id": {"type": "long"},
      "price": {"type": "scaled_float", "scaling_factor": 100},
      "effective_price": {"type": "scaled_float", "scaling_factor": 100},
      "rating": {"type": "scaled_float", "scaling_factor": 100},
      "status": {"type": "keyword"},
      "is_featured": {"type": "boolean"},
      "is_new": {"type": "boolean"},
      "created_at": {"type": "date"}
    }
  }
}`

// EnsureIndex 索引不存在时创建
func (c *Client) EnsureIndex(ctx context.Context) error {
	res, err := c.es.Indices.Exists([]string{c.index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: check index failed: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}
	res, err = c.es.Indices.Create(c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("search: create index failed: %w", err)
	}
	return checkResponse(res, "create index")
}

// IndexProduct 写入或覆盖商品文档
func (c *Client) IndexProduct(ctx context.Context, doc Document) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("search: encode document failed: %w", err)
	}
	res, err := c.es.Index(c.index, &buf,
		c.es.Index.WithContext(ctx),
		c.es.Index.WithDocumentID(strconv.FormatUint(uint64(doc.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("search: index product failed: %w", err)
	}
	return checkResponse(res, "index product")
}

// DeleteProduct 删除商品文档，文档不存在视为成功
func (c *Client) DeleteProduct(ctx context.Context, productID uint) error {
	res, err := c.es.Delete(c.index, strconv.FormatUint(uint64(productID), 10),
		c.es.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: delete product failed: %w", err)
	}
	if res.StatusCode == 404 {
		res.Body.Close()
		return nil
	}
	return checkResponse(res, "delete product")
}

// Result 搜索结果
type Result struct {
	Total int64
	IDs   []uint
}

// Search 执行商品搜索，返回按相关度/排序的商品 ID
func (c *Client) Search(ctx context.Context, q Query) (*Result, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(BuildSearchBody(q)); err != nil {
		return nil, fmt.Errorf("search: encode query failed: %w", err)
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
		c.es.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search: request failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("search: decode response failed: %w", err)
	}
	result := &Result{Total: r.Hits.Total.Value, IDs: make([]uint, 0, len(r.Hits.Hits))}
	for _, hit := range r.Hits.Hits {
		result.IDs = append(result.IDs, hit.Source.ID)
	}
	return result, nil
}

func checkResponse(res *esapi.Response, action string) error {
	defer res.Body.Close()
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
	return fmt.Errorf("search: %s failed: %s %s", action, res.Status(), strings.TrimSpace(string(body)))
}
