package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultsDecode(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode defaults failed: %v", err)
	}
	if cfg.Catalog.PageSize != 12 || cfg.Catalog.HomeListSize != 8 || cfg.Catalog.SimilarSize != 4 {
		t.Fatalf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.Catalog.DefaultCountry != "O'zbekiston" {
		t.Fatalf("default country want O'zbekiston got %s", cfg.Catalog.DefaultCountry)
	}
	if cfg.Kafka.Enabled || cfg.Search.Enabled {
		t.Fatalf("kafka and search should be disabled by default")
	}
	if cfg.Queue.Queues["default"] != 10 {
		t.Fatalf("default queue weight want 10 got %d", cfg.Queue.Queues["default"])
	}
}

func TestDecodeFromFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := []byte("catalog:\n  page_size: 24\nkafka:\n  enabled: true\n  brokers: [\"kafka:9092\"]\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "config.yml"))
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("read config failed: %v", err)
	}
	cfg, err := decode(v)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if cfg.Catalog.PageSize != 24 {
		t.Fatalf("page size want 24 got %d", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.HomeListSize != 8 {
		t.Fatalf("unset keys should keep defaults, got %d", cfg.Catalog.HomeListSize)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "kafka:9092" {
		t.Fatalf("unexpected kafka config: %+v", cfg.Kafka)
	}
}
