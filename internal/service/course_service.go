package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
	"github.com/Dydymerho/SMD-Project-sub002/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound = errors.New("课程不存在")
)

// CourseService 课程参考数据与关注业务接口
type CourseService interface {
	ListCourses(ctx context.Context, callerID string) ([]dto.CourseResponse, error)
	ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error)
	Follow(ctx context.Context, callerID, courseID string) (*dto.FollowResponse, error)
	Unfollow(ctx context.Context, callerID, courseID string) (*dto.FollowResponse, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── ListCourses ──────────────────────

func (s *courseService) ListCourses(ctx context.Context, callerID string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("列出课程失败", zap.Error(err))
		return nil, err
	}

	followed := map[string]bool{}
	if callerID != "" {
		ids, err := s.repo.Follow.ListCourseIDs(ctx, callerID)
		if err != nil {
			s.logger.Error("查询关注课程失败", zap.Error(err))
			return nil, err
		}
		for _, id := range ids {
			followed[id] = true
		}
	}

	result := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		result = append(result, dto.CourseResponse{
			ID:         c.CourseID,
			Code:       c.Code,
			Name:       c.Name,
			Department: c.Department,
			Credits:    c.Credits,
			Followed:   followed[c.CourseID],
		})
	}
	return result, nil
}

// ────────────────────── ListPrograms ──────────────────────

func (s *courseService) ListPrograms(ctx context.Context) ([]dto.ProgramResponse, error) {
	programs, err := s.repo.Program.List(ctx)
	if err != nil {
		s.logger.Error("列出培养方案失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProgramResponse, 0, len(programs))
	for _, p := range programs {
		plos := json.RawMessage(p.PLOs)
		if len(plos) == 0 {
			plos = json.RawMessage("[]")
		}
		result = append(result, dto.ProgramResponse{
			ID:   p.ProgramID,
			Code: p.Code,
			Name: p.Name,
			PLOs: plos,
		})
	}
	return result, nil
}

// ────────────────────── Follow ──────────────────────

// Follow 关注课程；重复关注幂等成功
func (s *courseService) Follow(ctx context.Context, callerID, courseID string) (*dto.FollowResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	exists, err := s.repo.Follow.Exists(ctx, callerID, courseID)
	if err != nil {
		s.logger.Error("查询关注关系失败", zap.Error(err))
		return nil, err
	}
	if !exists {
		follow := &model.CourseFollow{UserID: callerID, CourseID: courseID}
		if err := s.repo.Follow.Create(ctx, follow); err != nil {
			s.logger.Error("创建关注关系失败", zap.Error(err))
			return nil, err
		}
	}

	return &dto.FollowResponse{CourseID: courseID, Followed: true}, nil
}

// ────────────────────── Unfollow ──────────────────────

// Unfollow 取消关注；未关注时幂等成功
func (s *courseService) Unfollow(ctx context.Context, callerID, courseID string) (*dto.FollowResponse, error) {
	if _, err := s.repo.Course.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.String("id", courseID), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Follow.Delete(ctx, callerID, courseID); err != nil {
		s.logger.Error("删除关注关系失败", zap.Error(err))
		return nil, err
	}

	return &dto.FollowResponse{CourseID: courseID, Followed: false}, nil
}
