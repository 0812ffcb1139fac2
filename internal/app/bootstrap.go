package app

import (
	"errors"
	"fmt"

	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/provider"
	"github.com/oscoderuz/django-shablon/internal/router"
	"github.com/oscoderuz/django-shablon/internal/worker"
)

// BuildRunner 按启动模式组装服务
func BuildRunner(cfg *config.Config, container *provider.Container, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if container == nil {
		return nil, errors.New("container is nil")
	}
	if !validMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(listenAddr(cfg), engine))
	}

	// 队列未启用时 all 模式仅跳过 worker，worker 模式直接报错
	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled {
			workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else if mode == ModeWorker {
			return nil, errors.New("worker mode requires queue.enabled")
		} else {
			logger.Warnw("app_worker_skipped", "reason", "queue_disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}
	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	container := provider.NewContainer(opts.Config)
	defer container.Close()

	runner, err := BuildRunner(opts.Config, container, opts.Mode)
	if err != nil {
		return err
	}

	if opts.WatchConfig {
		config.Watch(func(next *config.Config) {
			applyReload(container, next)
		})
	}

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}

// applyReload 热更新可在运行期调整的配置
func applyReload(container *provider.Container, next *config.Config) {
	if container == nil || next == nil {
		return
	}
	if next.Log.Level != "" {
		if err := logger.SetLevel(next.Log.Level); err != nil {
			logger.Warnw("config_reload_log_level_invalid", "level", next.Log.Level, "error", err)
		}
	}
	if container.CaptchaService != nil {
		container.CaptchaService.SetConfig(next.Captcha)
	}
	logger.Infow("config_reloaded", "log_level", logger.Level(), "captcha_provider", next.Captcha.Provider)
}

func listenAddr(cfg *config.Config) string {
	return cfg.Server.Host + ":" + cfg.Server.Port
}
