package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mohammed-ye12/Attendance-APP/internal/service"
	"github.com/Mohammed-ye12/Attendance-APP/pkg/response"
)

// errorMapping 业务错误 → HTTP 状态码 + 业务码
type errorMapping struct {
	err    error
	status int
	code   int
}

// 顺序即匹配优先级
var errorMappings = []errorMapping{
	// 通用
	{service.ErrForbidden, http.StatusForbidden, response.CodeForbidden},
	{service.ErrManagerOnly, http.StatusForbidden, response.CodeForbidden},

	// 认证
	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.CodeInvalidCredentials},
	{service.ErrNotRegistered, http.StatusUnauthorized, response.CodeNotRegistered},
	{service.ErrPendingApproval, http.StatusForbidden, response.CodePendingApproval},

	// 身份
	{service.ErrEmptyCode, http.StatusBadRequest, response.CodeValidation},
	{service.ErrIdentityNotFound, http.StatusNotFound, response.CodeIdentityNotFound},
	{service.ErrEmployeeCodeExists, http.StatusConflict, response.CodeIdentityCodeExists},
	{service.ErrInvalidRegistration, http.StatusBadRequest, response.CodeInvalidRegistration},

	// 班次登记
	{service.ErrNotApprovedEmployee, http.StatusForbidden, response.CodeNotApprovedEmployee},
	{service.ErrInvalidShiftParams, http.StatusBadRequest, response.CodeInvalidShift},
	{service.ErrPastDate, http.StatusBadRequest, response.CodePastDate},
	{service.ErrDuplicateDate, http.StatusConflict, response.CodeDuplicateDate},
	{service.ErrSubmissionBusy, http.StatusConflict, response.CodeDuplicateDate},
	{service.ErrRemarkRequired, http.StatusBadRequest, response.CodeRemarkRequired},
	{service.ErrEntryNotFound, http.StatusNotFound, response.CodeEntryNotFound},
	{service.ErrEntryOutOfScope, http.StatusForbidden, response.CodeEntryOutOfScope},
	{service.ErrEntryAlreadyDecided, http.StatusConflict, response.CodeEntryAlreadyDecided},
	{service.ErrJustificationRequired, http.StatusBadRequest, response.CodeJustificationRequired},

	// 导出
	{service.ErrExportNoEntries, http.StatusNotFound, response.CodeNothingToExport},
}

// handleServiceError 将业务错误写为统一响应；未识别的错误挂到 c.Errors 交由日志中间件记录
func handleServiceError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.code, err.Error())
			return
		}
	}
	_ = c.Error(err)
	response.InternalError(c)
}

// bindJSON 绑定 JSON 请求体，失败时写入 400 / 413 并返回 false
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

// bindQuery 绑定查询参数，失败时写入 400 并返回 false
func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		writeBindError(c, err)
		return false
	}
	return true
}

func writeBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeBodyTooLarge, "请求体过大")
		return
	}
	response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "参数校验失败", err.Error())
}
