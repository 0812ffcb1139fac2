package queue

import (
	"encoding/json"

	"github.com/oscoderuz/django-shablon/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskRatingRecompute 评分回填任务
	TaskRatingRecompute = constants.TaskRatingRecompute
	// TaskSearchIndexProduct 商品索引任务
	TaskSearchIndexProduct = constants.TaskSearchIndexProduct
	// TaskSearchDeleteProduct 商品索引删除任务
	TaskSearchDeleteProduct = constants.TaskSearchDeleteProduct
	// TaskSearchReindexCatalog 全量重建索引任务
	TaskSearchReindexCatalog = constants.TaskSearchReindexCatalog
)

// RatingRecomputePayload 评分回填任务载荷（All 为 true 时忽略 ProductIDs）
type RatingRecomputePayload struct {
	ProductIDs []uint `json:"product_ids"`
	All        bool   `json:"all"`
}

// SearchProductPayload 商品索引任务载荷
type SearchProductPayload struct {
	ProductID uint `json:"product_id"`
}

// NewRatingRecomputeTask 创建评分回填任务
func NewRatingRecomputeTask(payload RatingRecomputePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRatingRecompute, body), nil
}

// NewSearchIndexProductTask 创建商品索引任务
func NewSearchIndexProductTask(payload SearchProductPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSearchIndexProduct, body), nil
}

// NewSearchDeleteProductTask 创建商品索引删除任务
func NewSearchDeleteProductTask(payload SearchProductPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSearchDeleteProduct, body), nil
}

// NewSearchReindexTask 创建全量重建索引任务
func NewSearchReindexTask() *asynq.Task {
	return asynq.NewTask(TaskSearchReindexCatalog, []byte("{}"))
}

// ParseRatingRecomputePayload 解析评分回填任务载荷
func ParseRatingRecomputePayload(task *asynq.Task) (RatingRecomputePayload, error) {
	var payload RatingRecomputePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// ParseSearchProductPayload 解析商品索引任务载荷
func ParseSearchProductPayload(task *asynq.Task) (SearchProductPayload, error) {
	var payload SearchProductPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	return payload, nil
}
