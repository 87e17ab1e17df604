package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/pkg/jwt"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/redis"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// 上下文键
const (
	ClaimsKey = "claims"
	RoleKey   = "role"
)

// JWTAuth 会话认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 token，rdb 非 nil 时检查黑名单
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "缺少认证头")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, response.CodeUnauthorized, "认证头格式无效")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			msg := "会话无效"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "会话已过期，请重新登录"
			}
			response.Unauthorized(c, response.CodeUnauthorized, msg)
			c.Abort()
			return
		}

		if rdb != nil && claims.ID != "" {
			black, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Redis 故障时放行，token 仍受有效期约束
				logger.Warn("检查 Token 黑名单失败", zap.Error(err))
			} else if black {
				response.Unauthorized(c, response.CodeUnauthorized, "会话已注销")
				c.Abort()
				return
			}
		}

		c.Set(ClaimsKey, claims)
		c.Set(RoleKey, claims.Role)

		c.Next()
	}
}

// RoleAuth 角色权限中间件
// 检查当前会话是否具有指定角色之一
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		if role == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "未认证")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, response.CodeForbidden, "无权限访问")
		c.Abort()
	}
}
