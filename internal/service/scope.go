package service

import (
	"sort"
	"strings"

	"github.com/Mohammed-ye12/Attendance-APP/internal/dto"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
)

// ── 角色可见范围（纯函数） ──
//
// 经理可见范围：登记所属员工档案存在，且经理未绑定班组或员工班组与经理一致。
// HR 子类型不参与过滤，所有 HR 会话可见全部登记。

// InManagerScope 判断员工是否在经理管辖范围内
func InManagerScope(managerSection string, owner *model.Profile) bool {
	if owner == nil {
		return false
	}
	if managerSection == "" {
		return true
	}
	return owner.SectionValue() == managerSection
}

// MatchesSearch 大小写不敏感地匹配员工姓名或编号，空关键字匹配全部
func MatchesSearch(owner *model.Profile, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	if owner == nil {
		return false
	}
	return strings.Contains(strings.ToLower(owner.FullName), q) ||
		strings.Contains(strings.ToLower(owner.CustomID), q)
}

// ScopeEntries 过滤出经理可见且匹配关键字的登记，保持原顺序
func ScopeEntries(entries []model.ShiftEntry, managerSection, search string) []model.ShiftEntry {
	out := make([]model.ShiftEntry, 0, len(entries))
	for _, e := range entries {
		if !InManagerScope(managerSection, e.Employee) {
			continue
		}
		if !MatchesSearch(e.Employee, search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// PartitionEntries 按状态拆分登记
//   - pending：登记日期升序（最早的待审批在前）
//   - approved / rejected：审批时间降序，limit>0 时截断为最近 limit 条
func PartitionEntries(entries []model.ShiftEntry, limit int) (pending, approved, rejected []model.ShiftEntry) {
	pending = make([]model.ShiftEntry, 0)
	approved = make([]model.ShiftEntry, 0)
	rejected = make([]model.ShiftEntry, 0)
	for _, e := range entries {
		switch e.Status {
		case model.StatusApproved:
			approved = append(approved, e)
		case model.StatusRejected:
			rejected = append(rejected, e)
		default:
			pending = append(pending, e)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if !pending[i].EntryDate.Equal(pending[j].EntryDate) {
			return pending[i].EntryDate.Before(pending[j].EntryDate)
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	sortByDecisionDesc(approved)
	sortByDecisionDesc(rejected)

	if limit > 0 {
		if len(approved) > limit {
			approved = approved[:limit]
		}
		if len(rejected) > limit {
			rejected = rejected[:limit]
		}
	}
	return pending, approved, rejected
}

// sortByDecisionDesc 审批时间降序，缺失审批时间的排在最后
func sortByDecisionDesc(entries []model.ShiftEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].ApprovedAt, entries[j].ApprovedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
}

// CountByStatus 统计各状态数量
func CountByStatus(entries []model.ShiftEntry) dto.StatusCounts {
	var c dto.StatusCounts
	for _, e := range entries {
		switch e.Status {
		case model.StatusApproved:
			c.Approved++
		case model.StatusRejected:
			c.Rejected++
		default:
			c.Pending++
		}
	}
	c.Total = len(entries)
	return c
}
