package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/oscoderuz/django-shablon/internal/config"

	"github.com/segmentio/kafka-go"
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultBatchTimeout = 10 * time.Millisecond
)

// Event 目录事件
type Event struct {
	Type       string                 `json:"type"`
	EntityID   uint                   `json:"entity_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

// NewEvent 构建事件，时间取当前 UTC
func NewEvent(eventType string, entityID uint, data map[string]interface{}) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher 事件发布接口，多个事件在一次写入中投递
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 基于 kafka-go Writer 的发布实现
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NopPublisher 未启用 Kafka 时使用
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, ...Event) error { return nil }

// Close 无操作
func (NopPublisher) Close() error { return nil }

// New 按配置创建发布器，未启用或缺少 broker 时返回 NopPublisher
func New(cfg config.KafkaConfig) Publisher {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, broker := range cfg.Brokers {
		if trimmed := strings.TrimSpace(broker); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	if !cfg.Enabled || len(brokers) == 0 {
		return NopPublisher{}
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		topic = "catalog_events"
	}
	timeout := defaultWriteTimeout
	if cfg.WriteTimeoutMS > 0 {
		timeout = time.Duration(cfg.WriteTimeoutMS) * time.Millisecond
	}
	return newKafkaPublisher(newWriter(brokers, topic, timeout, cfg.BatchTimeoutMS), timeout)
}

// newWriter 同步写入；单条消息不等待攒批，由 BatchTimeout 控制刷新
func newWriter(brokers []string, topic string, timeout time.Duration, batchTimeoutMS int) *kafka.Writer {
	batchTimeout := defaultBatchTimeout
	if batchTimeoutMS > 0 {
		batchTimeout = time.Duration(batchTimeoutMS) * time.Millisecond
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}
}

func newKafkaPublisher(writer messageWriter, timeout time.Duration) *KafkaPublisher {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &KafkaPublisher{writer: writer, timeout: timeout}
}

// Publish 以实体 ID 为 key 写入消息，多个事件合并为一次 WriteMessages
func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := encodeMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func encodeMessage(event Event) (kafka.Message, error) {
	if strings.TrimSpace(event.Type) == "" {
		return kafka.Message{}, fmt.Errorf("kafka: event type is empty")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.EntityID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

// Close 关闭 writer
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
