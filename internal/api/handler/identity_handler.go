package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// IdentityHandler 员工身份 HTTP 处理器
type IdentityHandler struct {
	identitySvc service.IdentityService
}

// NewIdentityHandler 创建 IdentityHandler
func NewIdentityHandler(identitySvc service.IdentityService) *IdentityHandler {
	return &IdentityHandler{identitySvc: identitySvc}
}

// Resolve 按员工编号解析身份
// GET /api/v1/identities/resolve/:code
func (h *IdentityHandler) Resolve(c *gin.Context) {
	result, err := h.identitySvc.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Register 员工注册
// POST /api/v1/identities/register
func (h *IdentityHandler) Register(c *gin.Context) {
	var req dto.RegisterIdentityRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.identitySvc.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, result)
}

// List 员工档案列表
// GET /api/v1/identities
func (h *IdentityHandler) List(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.IdentityListRequest
	if !bindQuery(c, &req) {
		return
	}

	list, total, err := h.identitySvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Approve 审批员工身份
// POST /api/v1/identities/:id/approve
func (h *IdentityHandler) Approve(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	result, err := h.identitySvc.Approve(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Reject 驳回并删除员工身份
// DELETE /api/v1/identities/:id
func (h *IdentityHandler) Reject(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	if err := h.identitySvc.Reject(c.Request.Context(), caller, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, nil)
}
