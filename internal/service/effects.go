package service

import (
	"context"

	"github.com/oscoderuz/django-shablon/internal/cache"
	"github.com/oscoderuz/django-shablon/internal/events"
	"github.com/oscoderuz/django-shablon/internal/logger"
)

// publishEvent 提交后投递事件，失败只记录日志
func publishEvent(ctx context.Context, publisher events.Publisher, eventType string, entityID uint, data map[string]interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events.NewEvent(eventType, entityID, data)); err != nil {
		logger.Warnw("catalog_event_publish_failed", "type", eventType, "entity_id", entityID, "error", err)
	}
}

// publishEvents 同类事件一次投递
func publishEvents(ctx context.Context, publisher events.Publisher, eventType string, entityIDs []uint) {
	if publisher == nil || len(entityIDs) == 0 {
		return
	}
	batch := make([]events.Event, 0, len(entityIDs))
	for _, id := range entityIDs {
		batch = append(batch, events.NewEvent(eventType, id, nil))
	}
	if err := publisher.Publish(ctx, batch...); err != nil {
		logger.Warnw("catalog_event_publish_failed", "type", eventType, "count", len(entityIDs), "error", err)
	}
}

func invalidateCategoryCache(ctx context.Context) {
	if err := cache.InvalidateCategoryList(ctx); err != nil {
		logger.Warnw("category_cache_invalidate_failed", "error", err)
	}
}
