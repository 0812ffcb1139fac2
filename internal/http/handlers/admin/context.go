package admin

import (
	handlershared "github.com/oscoderuz/django-shablon/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyAdminID, "error.admin_id_invalid", "error.admin_id_type_invalid")
}

func currentUsername(c *gin.Context) string {
	return handlershared.ContextString(c, handlershared.ContextKeyUsername)
}

func currentIsSuper(c *gin.Context) bool {
	return handlershared.ContextBool(c, handlershared.ContextKeyAdminIsSuper)
}

func parseIDParam(c *gin.Context, invalidKey string) (uint, bool) {
	return handlershared.ParseUintParam(c, "id", invalidKey)
}
