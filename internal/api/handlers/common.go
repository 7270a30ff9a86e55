package handlers

import (
	"cook-assistant/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// sessionID 取得請求的 session 識別碼
// 用戶端未帶 X-Session-ID 時生成新的，並一律寫回響應標頭
func sessionID(c *gin.Context) string {
	id := c.GetHeader("X-Session-ID")
	if id == "" {
		id = common.GenerateUUID()
	}
	c.Header("X-Session-ID", id)
	return id
}

// abortWithError 以統一格式回傳業務錯誤
func abortWithError(c *gin.Context, err *common.CustomError) {
	c.AbortWithStatusJSON(err.Status, gin.H{
		"error": err.Message,
		"code":  err.Code,
	})
}
