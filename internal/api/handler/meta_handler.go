package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// MetaHandler 枚举数据（公开）
type MetaHandler struct {
	identitySvc service.IdentityService
	shiftSvc    service.ShiftService
}

// NewMetaHandler 创建 MetaHandler
func NewMetaHandler(identitySvc service.IdentityService, shiftSvc service.ShiftService) *MetaHandler {
	return &MetaHandler{identitySvc: identitySvc, shiftSvc: shiftSvc}
}

// RegistrationOptions 注册表单可选项
// GET /api/v1/meta/registration-options
func (h *MetaHandler) RegistrationOptions(c *gin.Context) {
	response.OK(c, h.identitySvc.RegistrationOptions())
}

// ShiftTypes 班次类型列表
// GET /api/v1/meta/shift-types
func (h *MetaHandler) ShiftTypes(c *gin.Context) {
	response.OK(c, h.shiftSvc.ShiftTypes())
}
