package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// LoginEmployee 员工登录
// POST /api/v1/auth/employee
func (h *AuthHandler) LoginEmployee(c *gin.Context) {
	var req dto.EmployeeLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.LoginEmployee(c.Request.Context(), req.CustomID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// LoginManager 经理登录
// POST /api/v1/auth/manager
func (h *AuthHandler) LoginManager(c *gin.Context) {
	var req dto.ManagerLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.LoginManager(c.Request.Context(), req.ManagerID, req.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// LoginHR HR 口令登录
// POST /api/v1/auth/hr
func (h *AuthHandler) LoginHR(c *gin.Context) {
	var req dto.CodeLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.LoginHR(c.Request.Context(), req.Code)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// LoginAdmin 管理员口令登录
// POST /api/v1/auth/admin
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req dto.CodeLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.LoginAdmin(c.Request.Context(), req.Code)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// ListManagers 经理登录选择列表
// GET /api/v1/auth/managers
func (h *AuthHandler) ListManagers(c *gin.Context) {
	groups, err := h.authSvc.ListManagerGroups(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, groups)
}

// Logout 登出，token 加入黑名单直至过期
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims.ID, exp); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}

// Me 当前会话主体
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	response.OK(c, caller.Response())
}
