package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// DashboardHandler 角色看板 HTTP 处理器
type DashboardHandler struct {
	viewSvc service.ViewService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(viewSvc service.ViewService) *DashboardHandler {
	return &DashboardHandler{viewSvc: viewSvc}
}

// Manager 经理看板
// GET /api/v1/dashboard/manager?search=xxx
func (h *DashboardHandler) Manager(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.ManagerDashboardRequest
	if !bindQuery(c, &req) {
		return
	}

	result, err := h.viewSvc.ManagerDashboard(c.Request.Context(), caller, req.Search)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// HR HR 看板
// GET /api/v1/dashboard/hr
func (h *DashboardHandler) HR(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	result, err := h.viewSvc.HRDashboard(c.Request.Context(), caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Admin 管理员看板
// GET /api/v1/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	result, err := h.viewSvc.AdminDashboard(c.Request.Context(), caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}
