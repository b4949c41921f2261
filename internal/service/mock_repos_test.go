package service

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock ProgramRepository ──

type mockProgramRepo struct {
	programs []model.Program
}

func newMockProgramRepo() *mockProgramRepo {
	return &mockProgramRepo{}
}

func (m *mockProgramRepo) List(_ context.Context) ([]model.Program, error) {
	return m.programs, nil
}

// ── Mock FollowRepository ──

type mockFollowRepo struct {
	follows []model.CourseFollow
}

func newMockFollowRepo() *mockFollowRepo {
	return &mockFollowRepo{}
}

func (m *mockFollowRepo) Create(_ context.Context, follow *model.CourseFollow) error {
	m.follows = append(m.follows, *follow)
	return nil
}

func (m *mockFollowRepo) Delete(_ context.Context, userID, courseID string) error {
	var remaining []model.CourseFollow
	for _, f := range m.follows {
		if !(f.UserID == userID && f.CourseID == courseID) {
			remaining = append(remaining, f)
		}
	}
	m.follows = remaining
	return nil
}

func (m *mockFollowRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	for _, f := range m.follows {
		if f.UserID == userID && f.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFollowRepo) ListCourseIDs(_ context.Context, userID string) ([]string, error) {
	var ids []string
	for _, f := range m.follows {
		if f.UserID == userID {
			ids = append(ids, f.CourseID)
		}
	}
	return ids, nil
}

// ── Mock SyllabusRepository ──

type mockSyllabusRepo struct {
	syllabi   map[string]*model.Syllabus
	idCounter int
	createErr error // 注入创建失败，用于验证事务回滚路径
}

func newMockSyllabusRepo() *mockSyllabusRepo {
	return &mockSyllabusRepo{syllabi: make(map[string]*model.Syllabus)}
}

func (m *mockSyllabusRepo) Create(_ context.Context, syllabus *model.Syllabus) error {
	if m.createErr != nil {
		return m.createErr
	}
	if syllabus.SyllabusID == "" {
		m.idCounter++
		syllabus.SyllabusID = fmt.Sprintf("syl-%d", m.idCounter)
	}
	m.syllabi[syllabus.SyllabusID] = syllabus
	return nil
}

func (m *mockSyllabusRepo) GetByID(_ context.Context, id string) (*model.Syllabus, error) {
	if s, ok := m.syllabi[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSyllabusRepo) GetByIDFull(_ context.Context, id string) (*model.Syllabus, error) {
	if s, ok := m.syllabi[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSyllabusRepo) GetByCourseYear(_ context.Context, courseID, academicYear string) (*model.Syllabus, error) {
	for _, s := range m.syllabi {
		if s.CourseID == courseID && s.AcademicYear == academicYear {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSyllabusRepo) List(_ context.Context) ([]model.Syllabus, error) {
	var result []model.Syllabus
	for _, s := range m.syllabi {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSyllabusRepo) Delete(_ context.Context, id string) error {
	delete(m.syllabi, id)
	return nil
}

// ── Mock CLORepository ──

type mockCLORepo struct {
	clos      []model.CLO
	idCounter int
}

func newMockCLORepo() *mockCLORepo {
	return &mockCLORepo{}
}

func (m *mockCLORepo) CreateBatch(_ context.Context, clos []model.CLO) error {
	for i := range clos {
		m.idCounter++
		clos[i].CLOID = fmt.Sprintf("clo-%d", m.idCounter)
	}
	m.clos = append(m.clos, clos...)
	return nil
}

func (m *mockCLORepo) ListBySyllabus(_ context.Context, syllabusID string) ([]model.CLO, error) {
	var result []model.CLO
	for _, c := range m.clos {
		if c.SyllabusID == syllabusID {
			result = append(result, c)
		}
	}
	return result, nil
}

// ── Mock AssessmentRepository ──

type mockAssessmentRepo struct {
	assessments []model.Assessment
	idCounter   int
	createErr   error
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{}
}

func (m *mockAssessmentRepo) CreateBatch(_ context.Context, assessments []model.Assessment) error {
	if m.createErr != nil {
		return m.createErr
	}
	for i := range assessments {
		m.idCounter++
		assessments[i].AssessmentID = fmt.Sprintf("assess-%d", m.idCounter)
	}
	m.assessments = append(m.assessments, assessments...)
	return nil
}

func (m *mockAssessmentRepo) ListBySyllabus(_ context.Context, syllabusID string) ([]model.Assessment, error) {
	var result []model.Assessment
	for _, a := range m.assessments {
		if a.SyllabusID == syllabusID {
			result = append(result, a)
		}
	}
	return result, nil
}

// ── Mock SessionPlanRepository ──

type mockSessionPlanRepo struct {
	plans     []model.SessionPlan
	idCounter int
}

func newMockSessionPlanRepo() *mockSessionPlanRepo {
	return &mockSessionPlanRepo{}
}

func (m *mockSessionPlanRepo) CreateBatch(_ context.Context, plans []model.SessionPlan) error {
	for i := range plans {
		m.idCounter++
		plans[i].SessionPlanID = fmt.Sprintf("plan-%d", m.idCounter)
	}
	m.plans = append(m.plans, plans...)
	return nil
}

func (m *mockSessionPlanRepo) ListBySyllabus(_ context.Context, syllabusID string) ([]model.SessionPlan, error) {
	var result []model.SessionPlan
	for _, p := range m.plans {
		if p.SyllabusID == syllabusID {
			result = append(result, p)
		}
	}
	return result, nil
}

// ── Mock MaterialRepository ──

type mockMaterialRepo struct {
	materials []model.Material
	idCounter int
}

func newMockMaterialRepo() *mockMaterialRepo {
	return &mockMaterialRepo{}
}

func (m *mockMaterialRepo) CreateBatch(_ context.Context, materials []model.Material) error {
	for i := range materials {
		m.idCounter++
		materials[i].MaterialID = fmt.Sprintf("mat-%d", m.idCounter)
	}
	m.materials = append(m.materials, materials...)
	return nil
}

func (m *mockMaterialRepo) ListBySyllabus(_ context.Context, syllabusID string) ([]model.Material, error) {
	var result []model.Material
	for _, mat := range m.materials {
		if mat.SyllabusID == syllabusID {
			result = append(result, mat)
		}
	}
	return result, nil
}

// ── Mock AITaskRepository ──
//
// 任务行被后台轮询 goroutine 与测试断言并发访问，需要加锁

type mockAITaskRepo struct {
	mu        sync.Mutex
	tasks     map[string]*model.AITask
	idCounter int
}

func newMockAITaskRepo() *mockAITaskRepo {
	return &mockAITaskRepo{tasks: make(map[string]*model.AITask)}
}

func (m *mockAITaskRepo) Create(_ context.Context, task *model.AITask) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if task.TaskID == "" {
		m.idCounter++
		task.TaskID = fmt.Sprintf("task-%d", m.idCounter)
	}
	cp := *task
	m.tasks[task.TaskID] = &cp
	return nil
}

func (m *mockAITaskRepo) GetByID(_ context.Context, id string) (*model.AITask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAITaskRepo) UpdateProgress(_ context.Context, id string, status string, attempts int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	t.Attempts = attempts
	return nil
}

func (m *mockAITaskRepo) MarkTerminal(_ context.Context, id string, status string, result model.JSONB, errMsg string, attempts int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.Status = status
	t.Result = result
	t.ErrorMessage = errMsg
	t.Attempts = attempts
	return nil
}
