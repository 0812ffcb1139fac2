package admin

import "github.com/oscoderuz/django-shablon/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：该处理器仅用于管理端 API（目录维护、评价审核、权限）。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
