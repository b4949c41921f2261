package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
	"github.com/Dydymerho/SMD-Project-sub002/internal/repository"
)

// ── 测试辅助 ──

type syllabusTestMocks struct {
	course      *mockCourseRepo
	syllabus    *mockSyllabusRepo
	clo         *mockCLORepo
	assessment  *mockAssessmentRepo
	sessionPlan *mockSessionPlanRepo
	material    *mockMaterialRepo
}

func setupTestSyllabusService() (SyllabusService, *syllabusTestMocks) {
	mocks := &syllabusTestMocks{
		course:      newMockCourseRepo(),
		syllabus:    newMockSyllabusRepo(),
		clo:         newMockCLORepo(),
		assessment:  newMockAssessmentRepo(),
		sessionPlan: newMockSessionPlanRepo(),
		material:    newMockMaterialRepo(),
	}
	mocks.course.courses["course-001"] = &model.Course{
		CourseID: "course-001",
		Code:     "SE101",
		Name:     "软件工程导论",
	}

	repo := &repository.Repository{
		Course:      mocks.course,
		Syllabus:    mocks.syllabus,
		CLO:         mocks.clo,
		Assessment:  mocks.assessment,
		SessionPlan: mocks.sessionPlan,
		Material:    mocks.material,
	}
	svc := NewSyllabusService(repo, zap.NewNop())
	return svc, mocks
}

func validCreateRequest() *dto.CreateSyllabusRequest {
	return &dto.CreateSyllabusRequest{
		CourseID:     "course-001",
		Code:         "SE101",
		Name:         "软件工程导论",
		Department:   "软件学院",
		Semester:     2,
		AcademicYear: "2025-2026",
		Credits:      4,
	}
}

// ── Create 测试 ──

func TestSyllabusService_Create_Success(t *testing.T) {
	svc, mocks := setupTestSyllabusService()

	result, err := svc.Create(context.Background(), validCreateRequest(), "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.SyllabusID == "" {
		t.Error("期望返回非空 SyllabusID")
	}

	created, ok := mocks.syllabus.syllabi[result.SyllabusID]
	if !ok {
		t.Fatal("大纲未写入存储")
	}
	if created.RelationType != model.RelationText {
		t.Errorf("未指定关系类型时应默认为 text，实际=%s", created.RelationType)
	}
	if created.CreatedBy == nil || *created.CreatedBy != "user-001" {
		t.Error("期望记录创建人 user-001")
	}
}

func TestSyllabusService_Create_CourseNotChosen(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	req := validCreateRequest()
	req.AcademicYear = ""

	_, err := svc.Create(context.Background(), req, "user-001")
	if !errors.Is(err, ErrCourseNotChosen) {
		t.Errorf("期望 ErrCourseNotChosen，实际: %v", err)
	}
}

func TestSyllabusService_Create_CourseNotFound(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	req := validCreateRequest()
	req.CourseID = "course-404"

	_, err := svc.Create(context.Background(), req, "user-001")
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("期望 ErrCourseNotFound，实际: %v", err)
	}
}

func TestSyllabusService_Create_TreeRelationWithoutCodes(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	req := validCreateRequest()
	req.RelationType = model.RelationTree

	_, err := svc.Create(context.Background(), req, "user-001")
	if !errors.Is(err, ErrRelationInvalid) {
		t.Errorf("期望 ErrRelationInvalid，实际: %v", err)
	}
}

func TestSyllabusService_Create_Duplicate(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	first, err := svc.Create(context.Background(), validCreateRequest(), "user-001")
	if err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	_, err = svc.Create(context.Background(), validCreateRequest(), "user-002")
	var dup *DuplicateSyllabusError
	if !errors.As(err, &dup) {
		t.Fatalf("期望 DuplicateSyllabusError，实际: %v", err)
	}
	if dup.ExistingSyllabusID != first.SyllabusID {
		t.Errorf("期望冲突错误携带已有大纲 ID=%s，实际=%s", first.SyllabusID, dup.ExistingSyllabusID)
	}
}

func TestSyllabusService_Create_SameCourseDifferentYear(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	if _, err := svc.Create(context.Background(), validCreateRequest(), "user-001"); err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	req := validCreateRequest()
	req.AcademicYear = "2026-2027"
	if _, err := svc.Create(context.Background(), req, "user-001"); err != nil {
		t.Errorf("同课程不同学年应允许创建: %v", err)
	}
}

func TestSyllabusService_Create_WeightSumInvalid(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	req := validCreateRequest()
	req.Assessments = []dto.CreateAssessmentRequest{
		{Type: "期末考试", Weight: 10},
		{Type: "期中考试", Weight: 20},
		{Type: "实验", Weight: 30},
		{Type: "平时成绩", Weight: 41},
	}

	_, err := svc.Create(context.Background(), req, "user-001")
	var ws *WeightSumError
	if !errors.As(err, &ws) {
		t.Fatalf("期望 WeightSumError，实际: %v", err)
	}
	if ws.Total != 101 {
		t.Errorf("期望错误携带总和 101，实际=%d", ws.Total)
	}
}

func TestSyllabusService_Create_NestedChildren(t *testing.T) {
	svc, mocks := setupTestSyllabusService()

	req := validCreateRequest()
	req.CLOs = []dto.CreateCLORequest{
		{Code: "CLO1", Description: "掌握软件开发流程", PLOCodes: []string{"PLO1", "PLO3"}},
		{Code: "CLO2", Description: "能够编写需求文档"},
	}
	req.Assessments = []dto.CreateAssessmentRequest{
		{Type: "期末考试", Weight: 60},
		{Type: "平时成绩", Weight: 40},
	}
	req.SessionPlans = []dto.CreateSessionPlanRequest{
		{Week: 1, Topic: "课程概述", Method: "讲授"},
	}
	req.Materials = []dto.CreateMaterialRequest{
		{Name: "软件工程（第10版）", Author: "Ian Sommerville", Category: "教材"},
	}

	result, err := svc.Create(context.Background(), req, "user-001")
	if err != nil {
		t.Fatalf("嵌套创建应成功: %v", err)
	}

	clos, _ := mocks.clo.ListBySyllabus(context.Background(), result.SyllabusID)
	if len(clos) != 2 {
		t.Errorf("期望创建 2 条 CLO，实际=%d", len(clos))
	}
	assessments, _ := mocks.assessment.ListBySyllabus(context.Background(), result.SyllabusID)
	if len(assessments) != 2 {
		t.Errorf("期望创建 2 条考核项，实际=%d", len(assessments))
	}
	plans, _ := mocks.sessionPlan.ListBySyllabus(context.Background(), result.SyllabusID)
	if len(plans) != 1 {
		t.Errorf("期望创建 1 条教学周计划，实际=%d", len(plans))
	}
	materials, _ := mocks.material.ListBySyllabus(context.Background(), result.SyllabusID)
	if len(materials) != 1 {
		t.Errorf("期望创建 1 条教材资料，实际=%d", len(materials))
	}
}

func TestSyllabusService_Create_ChildFailurePropagates(t *testing.T) {
	svc, mocks := setupTestSyllabusService()
	mocks.assessment.createErr = errors.New("写入失败")

	req := validCreateRequest()
	req.Assessments = []dto.CreateAssessmentRequest{
		{Type: "期末考试", Weight: 100},
	}

	if _, err := svc.Create(context.Background(), req, "user-001"); err == nil {
		t.Error("子记录创建失败时 Create 应返回错误")
	}
}

// ── GetByID 测试 ──

func TestSyllabusService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	_, err := svc.GetByID(context.Background(), "syl-404")
	if !errors.Is(err, ErrSyllabusNotFound) {
		t.Errorf("期望 ErrSyllabusNotFound，实际: %v", err)
	}
}

func TestSyllabusService_GetByID_Success(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	created, err := svc.Create(context.Background(), validCreateRequest(), "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.GetByID(context.Background(), created.SyllabusID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.Code != "SE101" {
		t.Errorf("期望Code=SE101，实际=%s", result.Code)
	}
}

// ── 批量子记录测试 ──

func TestSyllabusService_AddAssessments_WeightSum(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	created, err := svc.Create(context.Background(), validCreateRequest(), "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	req := &dto.BatchAssessmentRequest{Items: []dto.CreateAssessmentRequest{
		{Type: "期末考试", Weight: 50},
		{Type: "平时成绩", Weight: 30},
	}}
	_, err = svc.AddAssessments(context.Background(), created.SyllabusID, req)
	var ws *WeightSumError
	if !errors.As(err, &ws) {
		t.Fatalf("期望 WeightSumError，实际: %v", err)
	}
	if ws.Total != 80 {
		t.Errorf("期望错误携带总和 80，实际=%d", ws.Total)
	}
}

func TestSyllabusService_AddCLOs_SyllabusNotFound(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	req := &dto.BatchCLORequest{Items: []dto.CreateCLORequest{{Code: "CLO1"}}}
	_, err := svc.AddCLOs(context.Background(), "syl-404", req)
	if !errors.Is(err, ErrSyllabusNotFound) {
		t.Errorf("期望 ErrSyllabusNotFound，实际: %v", err)
	}
}

func TestSyllabusService_AddCLOs_Success(t *testing.T) {
	svc, _ := setupTestSyllabusService()

	created, err := svc.Create(context.Background(), validCreateRequest(), "user-001")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	req := &dto.BatchCLORequest{Items: []dto.CreateCLORequest{
		{Code: "CLO1", Description: "掌握基本概念", PLOCodes: []string{"PLO1"}},
		{Code: "CLO2", Description: "能够独立建模"},
	}}
	result, err := svc.AddCLOs(context.Background(), created.SyllabusID, req)
	if err != nil {
		t.Fatalf("AddCLOs 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("期望返回 2 条，实际=%d", len(result))
	}
	if result[0].ID == "" {
		t.Error("期望返回项携带生成的 ID")
	}
}
