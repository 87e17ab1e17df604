package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Mohammed-ye12/Attendance-APP/internal/api/middleware"
	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/jwt"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// MustGetClaims 从 Gin 上下文中提取 JWT 中间件注入的声明。
// 未注入时写入 401 响应并返回 false，调用方应直接 return。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ClaimsKey)
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, response.CodeUnauthorized, "未认证")
		return nil, false
	}
	return claims, true
}

// MustGetPrincipal 还原当前请求的会话主体
func MustGetPrincipal(c *gin.Context) (service.Principal, bool) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return service.Principal{}, false
	}
	return service.PrincipalFromSubject(claims.Subject()), true
}
