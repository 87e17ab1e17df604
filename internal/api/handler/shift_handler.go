package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// ShiftHandler 班次登记 HTTP 处理器
type ShiftHandler struct {
	shiftSvc    service.ShiftService
	calendarSvc service.CalendarService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService, calendarSvc service.CalendarService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc, calendarSvc: calendarSvc}
}

// Submit 提交班次登记
// POST /api/v1/shifts
func (h *ShiftHandler) Submit(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.SubmitShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.shiftSvc.Submit(c.Request.Context(), caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Created(c, result)
}

// List 查询班次登记（按角色限定范围）
// GET /api/v1/shifts
func (h *ShiftHandler) List(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.ShiftListRequest
	if !bindQuery(c, &req) {
		return
	}

	result, err := h.shiftSvc.List(c.Request.Context(), caller, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Approve 审批通过
// POST /api/v1/shifts/:id/approve
func (h *ShiftHandler) Approve(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	result, err := h.shiftSvc.Approve(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Reject 驳回
// POST /api/v1/shifts/:id/reject
func (h *ShiftHandler) Reject(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}
	var req dto.RejectShiftRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.shiftSvc.Reject(c.Request.Context(), caller, c.Param("id"), req.Justification)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.OK(c, result)
}

// Calendar 已审批登记的 iCalendar 订阅
// GET /api/v1/shifts/calendar.ics
func (h *ShiftHandler) Calendar(c *gin.Context) {
	caller, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	body, err := h.calendarSvc.EmployeeCalendar(c.Request.Context(), caller)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Attachment(c, "shifts.ics", "text/calendar; charset=utf-8", body)
}
