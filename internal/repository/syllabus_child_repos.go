package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// ── 大纲子记录 Repository ──
//
// 四类子记录（CLO / 考核项 / 教学周计划 / 教材资料）接口形态一致：
// 批量创建 + 按大纲列出。原子嵌套创建时由 Repository.Transaction
// 注入事务连接。

// CLORepository CLO 数据访问接口
type CLORepository interface {
	CreateBatch(ctx context.Context, clos []model.CLO) error
	ListBySyllabus(ctx context.Context, syllabusID string) ([]model.CLO, error)
}

type cloRepo struct {
	db *gorm.DB
}

// NewCLORepo 创建 CLORepository 实例
func NewCLORepo(db *gorm.DB) CLORepository {
	return &cloRepo{db: db}
}

func (r *cloRepo) CreateBatch(ctx context.Context, clos []model.CLO) error {
	if len(clos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&clos).Error
}

func (r *cloRepo) ListBySyllabus(ctx context.Context, syllabusID string) ([]model.CLO, error) {
	var clos []model.CLO
	err := r.db.WithContext(ctx).
		Where("syllabus_id = ?", syllabusID).
		Order("code ASC").
		Find(&clos).Error
	return clos, err
}

// AssessmentRepository 考核项数据访问接口
type AssessmentRepository interface {
	CreateBatch(ctx context.Context, assessments []model.Assessment) error
	ListBySyllabus(ctx context.Context, syllabusID string) ([]model.Assessment, error)
}

type assessmentRepo struct {
	db *gorm.DB
}

// NewAssessmentRepo 创建 AssessmentRepository 实例
func NewAssessmentRepo(db *gorm.DB) AssessmentRepository {
	return &assessmentRepo{db: db}
}

func (r *assessmentRepo) CreateBatch(ctx context.Context, assessments []model.Assessment) error {
	if len(assessments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assessments).Error
}

func (r *assessmentRepo) ListBySyllabus(ctx context.Context, syllabusID string) ([]model.Assessment, error) {
	var assessments []model.Assessment
	err := r.db.WithContext(ctx).
		Where("syllabus_id = ?", syllabusID).
		Order("created_at ASC").
		Find(&assessments).Error
	return assessments, err
}

// SessionPlanRepository 教学周计划数据访问接口
type SessionPlanRepository interface {
	CreateBatch(ctx context.Context, plans []model.SessionPlan) error
	ListBySyllabus(ctx context.Context, syllabusID string) ([]model.SessionPlan, error)
}

type sessionPlanRepo struct {
	db *gorm.DB
}

// NewSessionPlanRepo 创建 SessionPlanRepository 实例
func NewSessionPlanRepo(db *gorm.DB) SessionPlanRepository {
	return &sessionPlanRepo{db: db}
}

func (r *sessionPlanRepo) CreateBatch(ctx context.Context, plans []model.SessionPlan) error {
	if len(plans) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&plans).Error
}

func (r *sessionPlanRepo) ListBySyllabus(ctx context.Context, syllabusID string) ([]model.SessionPlan, error) {
	var plans []model.SessionPlan
	err := r.db.WithContext(ctx).
		Where("syllabus_id = ?", syllabusID).
		Order("week ASC").
		Find(&plans).Error
	return plans, err
}

// MaterialRepository 教材资料数据访问接口
type MaterialRepository interface {
	CreateBatch(ctx context.Context, materials []model.Material) error
	ListBySyllabus(ctx context.Context, syllabusID string) ([]model.Material, error)
}

type materialRepo struct {
	db *gorm.DB
}

// NewMaterialRepo 创建 MaterialRepository 实例
func NewMaterialRepo(db *gorm.DB) MaterialRepository {
	return &materialRepo{db: db}
}

func (r *materialRepo) CreateBatch(ctx context.Context, materials []model.Material) error {
	if len(materials) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&materials).Error
}

func (r *materialRepo) ListBySyllabus(ctx context.Context, syllabusID string) ([]model.Material, error) {
	var materials []model.Material
	err := r.db.WithContext(ctx).
		Where("syllabus_id = ?", syllabusID).
		Order("name ASC").
		Find(&materials).Error
	return materials, err
}
