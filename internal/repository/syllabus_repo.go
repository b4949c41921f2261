package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// SyllabusRepository 教学大纲数据访问接口
type SyllabusRepository interface {
	Create(ctx context.Context, syllabus *model.Syllabus) error
	GetByID(ctx context.Context, id string) (*model.Syllabus, error)
	GetByIDFull(ctx context.Context, id string) (*model.Syllabus, error)
	GetByCourseYear(ctx context.Context, courseID, academicYear string) (*model.Syllabus, error)
	List(ctx context.Context) ([]model.Syllabus, error)
	Delete(ctx context.Context, id string) error
}

type syllabusRepo struct {
	db *gorm.DB
}

// NewSyllabusRepo 创建 SyllabusRepository 实例
func NewSyllabusRepo(db *gorm.DB) SyllabusRepository {
	return &syllabusRepo{db: db}
}

func (r *syllabusRepo) Create(ctx context.Context, syllabus *model.Syllabus) error {
	return r.db.WithContext(ctx).Create(syllabus).Error
}

func (r *syllabusRepo) GetByID(ctx context.Context, id string) (*model.Syllabus, error) {
	var syllabus model.Syllabus
	err := r.db.WithContext(ctx).
		Where("syllabus_id = ?", id).
		First(&syllabus).Error
	if err != nil {
		return nil, err
	}
	return &syllabus, nil
}

// GetByIDFull 查询大纲及全部子记录
func (r *syllabusRepo) GetByIDFull(ctx context.Context, id string) (*model.Syllabus, error) {
	var syllabus model.Syllabus
	err := r.db.WithContext(ctx).
		Preload("CLOs").
		Preload("Assessments").
		Preload("SessionPlans").
		Preload("Materials").
		Where("syllabus_id = ?", id).
		First(&syllabus).Error
	if err != nil {
		return nil, err
	}
	return &syllabus, nil
}

// GetByCourseYear 按 (course_id, academic_year) 查询，用于重复检测
func (r *syllabusRepo) GetByCourseYear(ctx context.Context, courseID, academicYear string) (*model.Syllabus, error) {
	var syllabus model.Syllabus
	err := r.db.WithContext(ctx).
		Where("course_id = ? AND academic_year = ?", courseID, academicYear).
		First(&syllabus).Error
	if err != nil {
		return nil, err
	}
	return &syllabus, nil
}

func (r *syllabusRepo) List(ctx context.Context) ([]model.Syllabus, error) {
	var syllabi []model.Syllabus
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&syllabi).Error
	return syllabi, err
}

func (r *syllabusRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("syllabus_id = ?", id).
		Delete(&model.Syllabus{}).Error
}
