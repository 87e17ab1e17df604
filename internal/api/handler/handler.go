package handler

import "github.com/Mohammed-ye12/Attendance-APP/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Meta      *MetaHandler
	Identity  *IdentityHandler
	Auth      *AuthHandler
	Shift     *ShiftHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Meta:      NewMetaHandler(svc.Identity, svc.Shift),
		Identity:  NewIdentityHandler(svc.Identity),
		Auth:      NewAuthHandler(svc.Auth),
		Shift:     NewShiftHandler(svc.Shift, svc.Calendar),
		Dashboard: NewDashboardHandler(svc.View),
		Export:    NewExportHandler(svc.Export),
	}
}
