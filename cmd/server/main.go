package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/oscoderuz/django-shablon/internal/app"
	"github.com/oscoderuz/django-shablon/internal/config"
	"github.com/oscoderuz/django-shablon/internal/logger"
	"github.com/oscoderuz/django-shablon/internal/models"
	"github.com/oscoderuz/django-shablon/internal/repository"
	"github.com/oscoderuz/django-shablon/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiCyan  = "\033[36m"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner()

	// .env 不存在时忽略，仍以 config.yml 与环境变量为准
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	for name, secret := range map[string]string{"jwt": cfg.JWT.SecretKey, "user_jwt": cfg.UserJWT.SecretKey} {
		if !isWeakSecret(secret) {
			continue
		}
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("%s secret 过弱或仍为默认值，请在生产环境中配置强随机密钥", name)
		}
		stdLog.Printf("警告: %s secret 过弱或仍为默认值，建议在生产环境中更换", name)
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, cfg.Server.Mode == "debug"); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	ensureDefaultSuperuser(cfg, stdLog)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:      cfg,
		Logger:      logger.S(),
		Signals:     []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:        mode,
		WatchConfig: true,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

type printfLogger interface {
	Printf(format string, v ...interface{})
}

// ensureDefaultSuperuser 未设置默认密码时跳过
func ensureDefaultSuperuser(cfg *config.Config, stdLog printfLogger) {
	password := strings.TrimSpace(cfg.Admin.DefaultPassword)
	if password == "" {
		stdLog.Printf("警告: 未设置 admin.default_password，已跳过默认超级管理员初始化")
		return
	}
	users := service.NewUserAuthService(cfg, repository.NewUserRepository(models.DB), nil)
	user, created, err := users.EnsureSuperuser(cfg.Admin.DefaultUsername, cfg.Admin.DefaultEmail, password)
	if err != nil {
		stdLog.Printf("警告: 初始化默认超级管理员失败: %v", err)
		return
	}
	if created {
		logger.Infow("default_superuser_created", "username", user.Username)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + ansiBold + "django-shablon catalog API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
