package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// ProgramRepository 培养方案数据访问接口
type ProgramRepository interface {
	List(ctx context.Context) ([]model.Program, error)
}

type programRepo struct {
	db *gorm.DB
}

// NewProgramRepo 创建 ProgramRepository 实例
func NewProgramRepo(db *gorm.DB) ProgramRepository {
	return &programRepo{db: db}
}

func (r *programRepo) List(ctx context.Context) ([]model.Program, error) {
	var programs []model.Program
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&programs).Error
	return programs, err
}
