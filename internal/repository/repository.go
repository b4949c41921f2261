package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User        UserRepository
	Course      CourseRepository
	Program     ProgramRepository
	Follow      FollowRepository
	Syllabus    SyllabusRepository
	CLO         CLORepository
	Assessment  AssessmentRepository
	SessionPlan SessionPlanRepository
	Material    MaterialRepository
	AITask      AITaskRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:          db,
		User:        NewUserRepo(db),
		Course:      NewCourseRepo(db),
		Program:     NewProgramRepo(db),
		Follow:      NewFollowRepo(db),
		Syllabus:    NewSyllabusRepo(db),
		CLO:         NewCLORepo(db),
		Assessment:  NewAssessmentRepo(db),
		SessionPlan: NewSessionPlanRepo(db),
		Material:    NewMaterialRepo(db),
		AITask:      NewAITaskRepo(db),
	}
}

// Transaction 在单个数据库事务中执行 fn，fn 返回错误时整体回滚。
// 未绑定数据库连接时（单元测试注入 mock 的场景）直接执行 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
