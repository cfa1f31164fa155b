package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ConsoleToken 写操作的简单令牌校验（demo 级别保护，不做任何加固）。
// 令牌从 X-Console-Token 头读取。
func ConsoleToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Console-Token") != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  "console token 无效",
			})
			return
		}
		c.Next()
	}
}
