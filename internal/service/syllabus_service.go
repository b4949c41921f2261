package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
	"github.com/Dydymerho/SMD-Project-sub002/internal/repository"
)

// ── 教学大纲模块业务错误 ──

var (
	ErrSyllabusNotFound = errors.New("教学大纲不存在")
	ErrCourseNotChosen  = errors.New("必须选择课程与学年")
	ErrRelationInvalid  = errors.New("课程关系字段无效")
)

// DuplicateSyllabusError 同一 (课程, 学年) 已存在大纲
// 携带已存在记录的 ID，供调用方提供"跳转编辑"选项
type DuplicateSyllabusError struct {
	ExistingSyllabusID string
}

func (e *DuplicateSyllabusError) Error() string {
	return "该课程在此学年已存在教学大纲"
}

// WeightSumError 考核权重之和不为 100
type WeightSumError struct {
	Total int
}

func (e *WeightSumError) Error() string {
	return fmt.Sprintf("考核权重之和必须为 100%%，当前为 %d%%", e.Total)
}

// SyllabusService 教学大纲业务接口
type SyllabusService interface {
	Create(ctx context.Context, req *dto.CreateSyllabusRequest, callerID string) (*dto.CreateSyllabusResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SyllabusResponse, error)
	AddCLOs(ctx context.Context, syllabusID string, req *dto.BatchCLORequest) ([]dto.CLOResponse, error)
	AddAssessments(ctx context.Context, syllabusID string, req *dto.BatchAssessmentRequest) ([]dto.AssessmentResponse, error)
	AddSessionPlans(ctx context.Context, syllabusID string, req *dto.BatchSessionPlanRequest) ([]dto.SessionPlanResponse, error)
	AddMaterials(ctx context.Context, syllabusID string, req *dto.BatchMaterialRequest) ([]dto.MaterialResponse, error)
}

type syllabusService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSyllabusService 创建 SyllabusService 实例
func NewSyllabusService(repo *repository.Repository, logger *zap.Logger) SyllabusService {
	return &syllabusService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 创建教学大纲
//
// 语义要点：
//   - 提交边界校验：课程/学年必填；嵌套携带考核项时权重之和必须为 100
//   - (course_id, academic_year) 重复 → DuplicateSyllabusError（携带已有记录 ID）
//   - 嵌套子列表与主记录在同一事务中创建，部分失败整体回滚
func (s *syllabusService) Create(ctx context.Context, req *dto.CreateSyllabusRequest, callerID string) (*dto.CreateSyllabusResponse, error) {
	if req.CourseID == "" || req.AcademicYear == "" {
		return nil, ErrCourseNotChosen
	}
	if req.RelationType == model.RelationTree && len(req.RelationCodes) == 0 {
		return nil, ErrRelationInvalid
	}
	if len(req.Assessments) > 0 {
		total := 0
		for _, a := range req.Assessments {
			total += a.Weight
		}
		if total != 100 {
			return nil, &WeightSumError{Total: total}
		}
	}

	// 课程必须存在
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", req.CourseID), zap.Error(err))
		return nil, err
	}

	// 重复检测：同课程同学年只允许一份大纲
	if existing, err := s.repo.Syllabus.GetByCourseYear(ctx, req.CourseID, req.AcademicYear); err == nil {
		return nil, &DuplicateSyllabusError{ExistingSyllabusID: existing.SyllabusID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("重复检测查询失败", zap.Error(err))
		return nil, err
	}

	relationType := req.RelationType
	if relationType == "" {
		relationType = model.RelationText
	}

	syllabus := &model.Syllabus{
		CourseID:      req.CourseID,
		Code:          req.Code,
		Name:          req.Name,
		Department:    req.Department,
		Semester:      req.Semester,
		AcademicYear:  req.AcademicYear,
		Credits:       req.Credits,
		Prerequisites: req.Prerequisites,
		RelationType:  relationType,
		RelationCodes: req.RelationCodes,
		RelationText:  req.RelationText,
	}
	if callerID != "" {
		syllabus.CreatedBy = &callerID
	}

	// 主记录与子列表在同一事务中创建，部分失败整体回滚
	err := s.repo.Transaction(ctx, func(txRepo *repository.Repository) error {
		if err := txRepo.Syllabus.Create(ctx, syllabus); err != nil {
			return err
		}
		return s.createChildren(ctx, txRepo, syllabus.SyllabusID, req)
	})
	if err != nil {
		s.logger.Error("创建教学大纲失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("教学大纲已创建",
		zap.String("syllabus_id", syllabus.SyllabusID),
		zap.String("code", syllabus.Code),
		zap.String("academic_year", syllabus.AcademicYear),
	)

	return &dto.CreateSyllabusResponse{SyllabusID: syllabus.SyllabusID}, nil
}

// createChildren 在事务内批量创建四类子记录
func (s *syllabusService) createChildren(ctx context.Context, txRepo *repository.Repository, syllabusID string, req *dto.CreateSyllabusRequest) error {
	if len(req.CLOs) > 0 {
		clos := make([]model.CLO, 0, len(req.CLOs))
		for _, c := range req.CLOs {
			clos = append(clos, model.CLO{
				SyllabusID:  syllabusID,
				Code:        c.Code,
				Description: c.Description,
				PLOCodes:    c.PLOCodes,
			})
		}
		if err := txRepo.CLO.CreateBatch(ctx, clos); err != nil {
			return err
		}
	}

	if len(req.Assessments) > 0 {
		assessments := make([]model.Assessment, 0, len(req.Assessments))
		for _, a := range req.Assessments {
			assessments = append(assessments, model.Assessment{
				SyllabusID: syllabusID,
				Type:       a.Type,
				Weight:     a.Weight,
			})
		}
		if err := txRepo.Assessment.CreateBatch(ctx, assessments); err != nil {
			return err
		}
	}

	if len(req.SessionPlans) > 0 {
		plans := make([]model.SessionPlan, 0, len(req.SessionPlans))
		for _, p := range req.SessionPlans {
			plans = append(plans, model.SessionPlan{
				SyllabusID: syllabusID,
				Week:       p.Week,
				Topic:      p.Topic,
				Method:     p.Method,
			})
		}
		if err := txRepo.SessionPlan.CreateBatch(ctx, plans); err != nil {
			return err
		}
	}

	if len(req.Materials) > 0 {
		materials := make([]model.Material, 0, len(req.Materials))
		for _, m := range req.Materials {
			materials = append(materials, model.Material{
				SyllabusID: syllabusID,
				Name:       m.Name,
				Author:     m.Author,
				Category:   m.Category,
			})
		}
		if err := txRepo.Material.CreateBatch(ctx, materials); err != nil {
			return err
		}
	}

	return nil
}

// ────────────────────── GetByID ──────────────────────

func (s *syllabusService) GetByID(ctx context.Context, id string) (*dto.SyllabusResponse, error) {
	syllabus, err := s.repo.Syllabus.GetByIDFull(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSyllabusNotFound
		}
		s.logger.Error("查询教学大纲失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toSyllabusResponse(syllabus), nil
}

// ────────────────────── 子记录批量创建 ──────────────────────

func (s *syllabusService) AddCLOs(ctx context.Context, syllabusID string, req *dto.BatchCLORequest) ([]dto.CLOResponse, error) {
	if err := s.ensureSyllabus(ctx, syllabusID); err != nil {
		return nil, err
	}

	clos := make([]model.CLO, 0, len(req.Items))
	for _, c := range req.Items {
		clos = append(clos, model.CLO{
			SyllabusID:  syllabusID,
			Code:        c.Code,
			Description: c.Description,
			PLOCodes:    c.PLOCodes,
		})
	}
	if err := s.repo.CLO.CreateBatch(ctx, clos); err != nil {
		s.logger.Error("批量创建 CLO 失败", zap.String("syllabus_id", syllabusID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CLOResponse, 0, len(clos))
	for _, c := range clos {
		result = append(result, dto.CLOResponse{ID: c.CLOID, Code: c.Code, Description: c.Description, PLOCodes: c.PLOCodes})
	}
	return result, nil
}

func (s *syllabusService) AddAssessments(ctx context.Context, syllabusID string, req *dto.BatchAssessmentRequest) ([]dto.AssessmentResponse, error) {
	if err := s.ensureSyllabus(ctx, syllabusID); err != nil {
		return nil, err
	}

	// 提交边界校验：整批权重之和必须为 100
	total := 0
	for _, a := range req.Items {
		total += a.Weight
	}
	if total != 100 {
		return nil, &WeightSumError{Total: total}
	}

	assessments := make([]model.Assessment, 0, len(req.Items))
	for _, a := range req.Items {
		assessments = append(assessments, model.Assessment{
			SyllabusID: syllabusID,
			Type:       a.Type,
			Weight:     a.Weight,
		})
	}
	if err := s.repo.Assessment.CreateBatch(ctx, assessments); err != nil {
		s.logger.Error("批量创建考核项失败", zap.String("syllabus_id", syllabusID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		result = append(result, dto.AssessmentResponse{ID: a.AssessmentID, Type: a.Type, Weight: a.Weight})
	}
	return result, nil
}

func (s *syllabusService) AddSessionPlans(ctx context.Context, syllabusID string, req *dto.BatchSessionPlanRequest) ([]dto.SessionPlanResponse, error) {
	if err := s.ensureSyllabus(ctx, syllabusID); err != nil {
		return nil, err
	}

	plans := make([]model.SessionPlan, 0, len(req.Items))
	for _, p := range req.Items {
		plans = append(plans, model.SessionPlan{
			SyllabusID: syllabusID,
			Week:       p.Week,
			Topic:      p.Topic,
			Method:     p.Method,
		})
	}
	if err := s.repo.SessionPlan.CreateBatch(ctx, plans); err != nil {
		s.logger.Error("批量创建教学周计划失败", zap.String("syllabus_id", syllabusID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionPlanResponse, 0, len(plans))
	for _, p := range plans {
		result = append(result, dto.SessionPlanResponse{ID: p.SessionPlanID, Week: p.Week, Topic: p.Topic, Method: p.Method})
	}
	return result, nil
}

func (s *syllabusService) AddMaterials(ctx context.Context, syllabusID string, req *dto.BatchMaterialRequest) ([]dto.MaterialResponse, error) {
	if err := s.ensureSyllabus(ctx, syllabusID); err != nil {
		return nil, err
	}

	materials := make([]model.Material, 0, len(req.Items))
	for _, m := range req.Items {
		materials = append(materials, model.Material{
			SyllabusID: syllabusID,
			Name:       m.Name,
			Author:     m.Author,
			Category:   m.Category,
		})
	}
	if err := s.repo.Material.CreateBatch(ctx, materials); err != nil {
		s.logger.Error("批量创建教材资料失败", zap.String("syllabus_id", syllabusID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.MaterialResponse, 0, len(materials))
	for _, m := range materials {
		result = append(result, dto.MaterialResponse{ID: m.MaterialID, Name: m.Name, Author: m.Author, Category: m.Category})
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *syllabusService) ensureSyllabus(ctx context.Context, id string) error {
	if _, err := s.repo.Syllabus.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSyllabusNotFound
		}
		s.logger.Error("查询教学大纲失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *syllabusService) toSyllabusResponse(syllabus *model.Syllabus) *dto.SyllabusResponse {
	resp := &dto.SyllabusResponse{
		ID:            syllabus.SyllabusID,
		CourseID:      syllabus.CourseID,
		Code:          syllabus.Code,
		Name:          syllabus.Name,
		Department:    syllabus.Department,
		Semester:      syllabus.Semester,
		AcademicYear:  syllabus.AcademicYear,
		Credits:       syllabus.Credits,
		Prerequisites: syllabus.Prerequisites,
		RelationType:  syllabus.RelationType,
		RelationCodes: syllabus.RelationCodes,
		RelationText:  syllabus.RelationText,
	}

	for _, c := range syllabus.CLOs {
		resp.CLOs = append(resp.CLOs, dto.CLOResponse{ID: c.CLOID, Code: c.Code, Description: c.Description, PLOCodes: c.PLOCodes})
	}
	for _, a := range syllabus.Assessments {
		resp.Assessments = append(resp.Assessments, dto.AssessmentResponse{ID: a.AssessmentID, Type: a.Type, Weight: a.Weight})
	}
	for _, p := range syllabus.SessionPlans {
		resp.SessionPlans = append(resp.SessionPlans, dto.SessionPlanResponse{ID: p.SessionPlanID, Week: p.Week, Topic: p.Topic, Method: p.Method})
	}
	for _, m := range syllabus.Materials {
		resp.Materials = append(resp.Materials, dto.MaterialResponse{ID: m.MaterialID, Name: m.Name, Author: m.Author, Category: m.Category})
	}

	return resp
}
