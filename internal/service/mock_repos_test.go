package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Mohammed-ye12/Attendance-APP/config"
	"github.com/Mohammed-ye12/Attendance-APP/internal/model"
	"github.com/Mohammed-ye12/Attendance-APP/internal/repository"
	pkgerrors "github.com/Mohammed-ye12/Attendance-APP/pkg/errors"
)

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.Profile // key: profile_id
	err      error                     // 非 nil 时所有读操作返回该错误
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, p *model.Profile) error {
	for _, existing := range m.profiles {
		if existing.CustomID == p.CustomID {
			return gorm.ErrDuplicatedKey
		}
	}
	m.profiles[p.ProfileID] = p
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (*model.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByCustomID(_ context.Context, customID string) (*model.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.profiles {
		if p.CustomID == customID {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) List(_ context.Context, f repository.ProfileFilter, offset, limit int) ([]model.Profile, int64, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var result []model.Profile
	for _, p := range m.profiles {
		if f.Role != "" && p.Role != f.Role {
			continue
		}
		if f.Department != "" && p.Department != f.Department {
			continue
		}
		if f.Section != "" && p.SectionValue() != f.Section {
			continue
		}
		if f.Approved != nil && p.IsApproved != *f.Approved {
			continue
		}
		if kw := strings.ToLower(f.Keyword); kw != "" &&
			!strings.Contains(strings.ToLower(p.FullName), kw) &&
			!strings.Contains(strings.ToLower(p.CustomID), kw) {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CustomID < result[j].CustomID })

	total := int64(len(result))
	if limit > 0 {
		if offset >= len(result) {
			return []model.Profile{}, total, nil
		}
		end := offset + limit
		if end > len(result) {
			end = len(result)
		}
		result = result[offset:end]
	}
	return result, total, nil
}

func (m *mockProfileRepo) Approve(_ context.Context, id, approvedBy string, at time.Time) error {
	p, ok := m.profiles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.IsApproved = true
	p.ApprovedBy = &approvedBy
	p.ApprovedAt = &at
	return nil
}

func (m *mockProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.profiles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.profiles, id)
	return nil
}

// ── Mock ShiftEntryRepository ──

type mockShiftEntryRepo struct {
	entries  map[string]*model.ShiftEntry
	profiles *mockProfileRepo // 用于模拟 Preload("Employee")
	decides  int
}

func newMockShiftEntryRepo(profiles *mockProfileRepo) *mockShiftEntryRepo {
	return &mockShiftEntryRepo{entries: make(map[string]*model.ShiftEntry), profiles: profiles}
}

func (m *mockShiftEntryRepo) withEmployee(e *model.ShiftEntry) *model.ShiftEntry {
	cp := *e
	cp.Employee = m.profiles.profiles[e.EmployeeID]
	return &cp
}

func (m *mockShiftEntryRepo) Create(_ context.Context, e *model.ShiftEntry) error {
	for _, existing := range m.entries {
		if existing.EmployeeID == e.EmployeeID && existing.EntryDate.Equal(e.EntryDate) {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *e
	cp.Employee = nil
	m.entries[e.EntryID] = &cp
	return nil
}

func (m *mockShiftEntryRepo) GetByID(_ context.Context, id string) (*model.ShiftEntry, error) {
	if e, ok := m.entries[id]; ok {
		return m.withEmployee(e), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftEntryRepo) ExistsForDate(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, e := range m.entries {
		if e.EmployeeID == employeeID && e.EntryDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockShiftEntryRepo) List(_ context.Context, f repository.ShiftEntryFilter) ([]model.ShiftEntry, error) {
	result := make([]model.ShiftEntry, 0)
	for _, e := range m.entries {
		if f.EmployeeID != "" && e.EmployeeID != f.EmployeeID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.ShiftType != "" && e.ShiftType != f.ShiftType {
			continue
		}
		if f.DateFrom != nil && e.EntryDate.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && e.EntryDate.After(*f.DateTo) {
			continue
		}
		result = append(result, *m.withEmployee(e))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].EntryDate.Equal(result[j].EntryDate) {
			return result[i].EntryDate.Before(result[j].EntryDate)
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockShiftEntryRepo) Decide(_ context.Context, id string, d repository.Decision, onlyPending bool) error {
	e, ok := m.entries[id]
	if !ok {
		if onlyPending {
			return pkgerrors.ErrConditionalUpdate
		}
		return gorm.ErrRecordNotFound
	}
	if onlyPending && e.Status != model.StatusPending {
		return pkgerrors.ErrConditionalUpdate
	}
	by, at := d.ApprovedBy, d.ApprovedAt
	e.Status = d.Status
	e.ApprovedBy = &by
	e.ApprovedAt = &at
	e.UpdatedAt = at
	if d.Remark != nil {
		r := *d.Remark
		e.OtherRemark = &r
	}
	m.decides++
	return nil
}

// ── Mock ManagerRepository ──

type mockManagerRepo struct {
	managers map[string]*model.Manager
}

func newMockManagerRepo() *mockManagerRepo {
	return &mockManagerRepo{managers: make(map[string]*model.Manager)}
}

func (m *mockManagerRepo) GetByID(_ context.Context, id string) (*model.Manager, error) {
	if mg, ok := m.managers[id]; ok {
		return mg, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockManagerRepo) List(_ context.Context) ([]model.Manager, error) {
	var result []model.Manager
	for _, mg := range m.managers {
		result = append(result, *mg)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].SortOrder != result[j].SortOrder {
			return result[i].SortOrder < result[j].SortOrder
		}
		return result[i].ManagerID < result[j].ManagerID
	})
	return result, nil
}

func (m *mockManagerRepo) Upsert(_ context.Context, mg *model.Manager) error {
	m.managers[mg.ManagerID] = mg
	return nil
}

// ── Mock HRUserRepository ──

type mockHRUserRepo struct {
	users map[string]*model.HRUser // key: username
}

func newMockHRUserRepo() *mockHRUserRepo {
	return &mockHRUserRepo{users: make(map[string]*model.HRUser)}
}

func (m *mockHRUserRepo) List(_ context.Context) ([]model.HRUser, error) {
	var result []model.HRUser
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Username < result[j].Username })
	return result, nil
}

func (m *mockHRUserRepo) Upsert(_ context.Context, u *model.HRUser) error {
	m.users[u.Username] = u
	return nil
}

// ── 测试夹具 ──

type testEnv struct {
	profiles *mockProfileRepo
	entries  *mockShiftEntryRepo
	managers *mockManagerRepo
	hrUsers  *mockHRUserRepo
	repo     *repository.Repository
	logger   *zap.Logger
}

func newTestEnv() *testEnv {
	profiles := newMockProfileRepo()
	env := &testEnv{
		profiles: profiles,
		entries:  newMockShiftEntryRepo(profiles),
		managers: newMockManagerRepo(),
		hrUsers:  newMockHRUserRepo(),
		logger:   zap.NewNop(),
	}
	env.repo = &repository.Repository{
		Profile:    env.profiles,
		ShiftEntry: env.entries,
		Manager:    env.managers,
		HRUser:     env.hrUsers,
	}
	return env
}

func testWorkflowConfig() *config.WorkflowConfig {
	return &config.WorkflowConfig{
		StrictTransitions:  false,
		RejectPastDates:    false,
		RecentHistoryLimit: 20,
		SiteTimezone:       "UTC",
	}
}

// addProfile 写入一个员工档案，section 为空表示不设班组
func (e *testEnv) addProfile(id, code, name, dept, section string, approved bool) *model.Profile {
	p := &model.Profile{
		ProfileID:  id,
		CustomID:   code,
		FullName:   name,
		Department: dept,
		Section:    optional(section),
		Role:       model.RoleEmployee,
		IsApproved: approved,
	}
	e.profiles.profiles[id] = p
	return p
}

func (e *testEnv) addEntry(id, employeeID, date string, t model.ShiftType, status model.ApprovalStatus) *model.ShiftEntry {
	d, _ := time.Parse(model.DateLayout, date)
	entry := &model.ShiftEntry{
		EntryID:    id,
		EmployeeID: employeeID,
		EntryDate:  d,
		ShiftType:  t,
		Status:     status,
	}
	e.entries.entries[id] = entry
	return entry
}

func employeePrincipal(p *model.Profile) Principal {
	return Principal{
		ID:          p.ProfileID,
		Role:        model.SessionEmployee,
		DisplayName: p.FullName,
		Department:  p.Department,
		Section:     p.SectionValue(),
	}
}

func managerPrincipal(id, section string) Principal {
	return Principal{ID: id, Role: model.SessionManager, DisplayName: id, Section: section}
}

var (
	hrPrincipal    = Principal{ID: "hr-1", Role: model.SessionHR, DisplayName: "hr_general", HRType: model.HRTypeGeneral}
	adminPrincipal = Principal{ID: model.SessionAdmin, Role: model.SessionAdmin, DisplayName: "Administrator"}
)

func fixedClock(s string) func() time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return func() time.Time { return t }
}
