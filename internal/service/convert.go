package service

import (
	"time"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

// ── 模型 → DTO 转换 ──

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toProfileResponse(p *model.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:          p.ProfileID,
		CustomID:    p.CustomID,
		FullName:    p.FullName,
		Department:  p.Department,
		Section:     p.Section,
		ShiftSystem: p.ShiftSystem,
		ShiftGroup:  p.ShiftGroup,
		Role:        p.Role,
		IsApproved:  p.IsApproved,
		ApprovedBy:  p.ApprovedBy,
		ApprovedAt:  formatTimePtr(p.ApprovedAt),
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

func toProfileResponses(profiles []model.Profile) []dto.ProfileResponse {
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, toProfileResponse(&profiles[i]))
	}
	return out
}

func toShiftEntryResponse(e *model.ShiftEntry) dto.ShiftEntryResponse {
	resp := dto.ShiftEntryResponse{
		ID:          e.EntryID,
		EmployeeID:  e.EmployeeID,
		Date:        e.DateString(),
		ShiftType:   string(e.ShiftType),
		ShiftLabel:  e.ShiftType.Label(),
		OtherRemark: e.OtherRemark,
		Status:      string(e.Status),
		Approved:    e.Status.Legacy(),
		ApprovedBy:  e.ApprovedBy,
		ApprovedAt:  formatTimePtr(e.ApprovedAt),
		CreatedAt:   formatTime(e.CreatedAt),
	}
	if e.Employee != nil {
		resp.EmployeeCode = e.Employee.CustomID
		resp.EmployeeName = e.Employee.FullName
		resp.Department = e.Employee.Department
		resp.Section = e.Employee.SectionValue()
	}
	return resp
}

func toShiftEntryResponses(entries []model.ShiftEntry) []dto.ShiftEntryResponse {
	out := make([]dto.ShiftEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toShiftEntryResponse(&entries[i]))
	}
	return out
}
