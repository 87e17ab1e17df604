package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoEntries    = errors.New("所选范围内没有班次登记")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入。
// 工作簿包含两个 Sheet：
//   - "Entries"：逐条登记明细
//   - "Summary"：按员工统计各类型天数
type ExportService interface {
	ExportEntries(ctx context.Context, caller Principal, req *dto.ExportEntriesRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var entryHeaders = []string{
	"Date", "Employee Code", "Full Name", "Department", "Section",
	"Shift Type", "Remark", "Status", "Decided By", "Decided At",
}

// ═══════════════════════════════════════════════════════════
// ExportEntries 导出班次登记为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportEntries(ctx context.Context, caller Principal, req *dto.ExportEntriesRequest) (*bytes.Buffer, string, error) {
	if !caller.HasRole(model.SessionHR, model.SessionAdmin) {
		return nil, "", ErrForbidden
	}

	f, err := entryFilter("", req.Status, "", req.DateFrom, req.DateTo)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.repo.ShiftEntry.List(ctx, f)
	if err != nil {
		s.logger.Error("查询班次登记失败", zap.Error(err))
		return nil, "", err
	}
	if len(entries) == 0 {
		return nil, "", ErrExportNoEntries
	}

	book := excelize.NewFile()
	defer book.Close()

	const entrySheet = "Entries"
	idx, _ := book.NewSheet(entrySheet)
	book.SetActiveSheet(idx)
	book.DeleteSheet("Sheet1")

	headerStyle, _ := book.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 明细表头
	for i, h := range entryHeaders {
		book.SetCellValue(entrySheet, cell(colName(i), 1), h)
	}
	book.SetCellStyle(entrySheet, "A1", cell(colName(len(entryHeaders)-1), 1), headerStyle)
	book.SetColWidth(entrySheet, "A", "A", 12)
	book.SetColWidth(entrySheet, "B", "B", 14)
	book.SetColWidth(entrySheet, "C", "C", 24)
	book.SetColWidth(entrySheet, "D", "F", 20)
	book.SetColWidth(entrySheet, "G", "G", 32)
	book.SetColWidth(entrySheet, "H", "J", 16)

	// 明细数据
	for i := range entries {
		r := toShiftEntryResponse(&entries[i])
		row := i + 2
		values := []interface{}{
			r.Date, r.EmployeeCode, r.EmployeeName, r.Department, r.Section,
			r.ShiftLabel, deref(r.OtherRemark), r.Status, deref(r.ApprovedBy), deref(r.ApprovedAt),
		}
		for col, v := range values {
			book.SetCellValue(entrySheet, cell(colName(col), row), v)
		}
	}
	book.SetPanes(entrySheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	// 汇总
	if err := writeSummarySheet(book, entries, headerStyle); err != nil {
		s.logger.Error("写入汇总 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := book.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := "shift_entries.xlsx"
	if req.DateFrom != "" || req.DateTo != "" {
		filename = fmt.Sprintf("shift_entries_%s_%s.xlsx", orAll(req.DateFrom), orAll(req.DateTo))
	}
	s.logger.Info("导出班次登记", zap.Int("rows", len(entries)), zap.String("by", caller.ID))
	return buf, filename, nil
}

// writeSummarySheet 每名员工一行，列为九种类型的天数
func writeSummarySheet(book *excelize.File, entries []model.ShiftEntry, headerStyle int) error {
	const sheet = "Summary"
	if _, err := book.NewSheet(sheet); err != nil {
		return err
	}

	type summaryRow struct {
		code, name, dept string
		counts           map[model.ShiftType]int
	}
	rows := make(map[string]*summaryRow)
	for _, e := range entries {
		r, ok := rows[e.EmployeeID]
		if !ok {
			r = &summaryRow{counts: make(map[model.ShiftType]int)}
			if e.Employee != nil {
				r.code, r.name, r.dept = e.Employee.CustomID, e.Employee.FullName, e.Employee.Department
			}
			rows[e.EmployeeID] = r
		}
		r.counts[e.ShiftType]++
	}

	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return rows[keys[i]].code < rows[keys[j]].code })

	headers := []string{"Employee Code", "Full Name", "Department"}
	for _, t := range model.ShiftTypes {
		headers = append(headers, t.Label)
	}
	for i, h := range headers {
		book.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	book.SetCellStyle(sheet, "A1", cell(colName(len(headers)-1), 1), headerStyle)
	book.SetColWidth(sheet, "A", "C", 20)

	for i, k := range keys {
		r := rows[k]
		row := i + 2
		book.SetCellValue(sheet, cell("A", row), r.code)
		book.SetCellValue(sheet, cell("B", row), r.name)
		book.SetCellValue(sheet, cell("C", row), r.dept)
		for j, t := range model.ShiftTypes {
			book.SetCellValue(sheet, cell(colName(3+j), row), r.counts[t.Value])
		}
	}
	return nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}
