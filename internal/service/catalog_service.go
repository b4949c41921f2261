package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Dydymerho/SMD-Project-sub002/internal/catalog"
	"github.com/Dydymerho/SMD-Project-sub002/internal/dto"
	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
	"github.com/Dydymerho/SMD-Project-sub002/internal/repository"
)

// ── 目录模块业务错误 ──

var (
	ErrSubjectNotFound = errors.New("目录中无此课程")
)

// CatalogService 教学大纲目录查询业务接口
//
// 目录是大纲表的只读内存快照：服务启动时构建一次，
// 之后所有结构化查询（先修链、学分求和等）都在快照上进行，不触发数据库。
// Rebuild 可在大纲写入后手动刷新快照。
type CatalogService interface {
	Rebuild(ctx context.Context) error
	ListSubjects(ctx context.Context) ([]dto.SubjectResponse, error)
	GetSubject(ctx context.Context, code string) (*dto.SubjectResponse, error)
	PrerequisiteChain(ctx context.Context, code string) (*dto.PrerequisiteChainResponse, error)
	RelatedSubjects(ctx context.Context, code string) (*dto.RelatedSubjectsResponse, error)
	FilterByDepartment(ctx context.Context, substr string) ([]dto.SubjectResponse, error)
	TotalCredits(ctx context.Context, codes []string) (*dto.TotalCreditsResponse, error)
	SemestersPresent(ctx context.Context) (*dto.SemestersResponse, error)
	CheckOrdering(ctx context.Context, code string) (*dto.OrderingCheckResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot *catalog.Catalog
}

// NewCatalogService 创建 CatalogService 实例（快照为空，需调用 Rebuild 加载）
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{
		repo:     repo,
		logger:   logger,
		snapshot: catalog.New(nil),
	}
}

// ────────────────────── Rebuild ──────────────────────

// Rebuild 从数据库重建目录快照
func (s *catalogService) Rebuild(ctx context.Context) error {
	records, err := s.repo.Syllabus.List(ctx)
	if err != nil {
		s.logger.Error("加载目录快照失败", zap.Error(err))
		return err
	}

	snapshot := catalog.New(records)

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.Info("目录快照已重建", zap.Int("records", snapshot.Len()))
	return nil
}

func (s *catalogService) current() *catalog.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// ────────────────────── 查询 ──────────────────────

func (s *catalogService) ListSubjects(_ context.Context) ([]dto.SubjectResponse, error) {
	c := s.current()
	result := make([]dto.SubjectResponse, 0, c.Len())
	for _, rec := range c.Records() {
		result = append(result, toSubjectResponse(&rec))
	}
	return result, nil
}

func (s *catalogService) GetSubject(_ context.Context, code string) (*dto.SubjectResponse, error) {
	rec := s.current().FindByCode(code)
	if rec == nil {
		return nil, ErrSubjectNotFound
	}
	resp := toSubjectResponse(rec)
	return &resp, nil
}

func (s *catalogService) PrerequisiteChain(_ context.Context, code string) (*dto.PrerequisiteChainResponse, error) {
	return &dto.PrerequisiteChainResponse{
		Code:  code,
		Chain: s.current().PrerequisiteChain(code),
	}, nil
}

func (s *catalogService) RelatedSubjects(_ context.Context, code string) (*dto.RelatedSubjectsResponse, error) {
	return &dto.RelatedSubjectsResponse{
		Code:    code,
		Related: s.current().RelatedSubjects(code),
	}, nil
}

func (s *catalogService) FilterByDepartment(_ context.Context, substr string) ([]dto.SubjectResponse, error) {
	matched := s.current().FilterByDepartment(substr)
	result := make([]dto.SubjectResponse, 0, len(matched))
	for _, rec := range matched {
		result = append(result, toSubjectResponse(&rec))
	}
	return result, nil
}

func (s *catalogService) TotalCredits(_ context.Context, codes []string) (*dto.TotalCreditsResponse, error) {
	return &dto.TotalCreditsResponse{
		Codes:        codes,
		TotalCredits: s.current().TotalCredits(codes),
	}, nil
}

func (s *catalogService) SemestersPresent(_ context.Context) (*dto.SemestersResponse, error) {
	return &dto.SemestersResponse{Semesters: s.current().SemestersPresent()}, nil
}

func (s *catalogService) CheckOrdering(_ context.Context, code string) (*dto.OrderingCheckResponse, error) {
	return &dto.OrderingCheckResponse{
		Code:  code,
		Valid: s.current().PrerequisitesRespectOrdering(code),
	}, nil
}

// ── 内部辅助方法 ──

func toSubjectResponse(rec *model.Syllabus) dto.SubjectResponse {
	prereqs := rec.Prerequisites
	if prereqs == nil {
		prereqs = []string{}
	}
	return dto.SubjectResponse{
		Code:          rec.Code,
		Name:          rec.Name,
		Department:    rec.Department,
		Semester:      rec.Semester,
		AcademicYear:  rec.AcademicYear,
		Credits:       rec.Credits,
		Prerequisites: prereqs,
	}
}
