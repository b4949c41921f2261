package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// FollowRepository 课程关注关系数据访问接口
type FollowRepository interface {
	Create(ctx context.Context, follow *model.CourseFollow) error
	Delete(ctx context.Context, userID, courseID string) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListCourseIDs(ctx context.Context, userID string) ([]string, error)
}

type followRepo struct {
	db *gorm.DB
}

// NewFollowRepo 创建 FollowRepository 实例
func NewFollowRepo(db *gorm.DB) FollowRepository {
	return &followRepo{db: db}
}

func (r *followRepo) Create(ctx context.Context, follow *model.CourseFollow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followRepo) Delete(ctx context.Context, userID, courseID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.CourseFollow{}).Error
}

func (r *followRepo) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CourseFollow{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *followRepo) ListCourseIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.CourseFollow{}).
		Where("user_id = ?", userID).
		Pluck("course_id", &ids).Error
	return ids, err
}
