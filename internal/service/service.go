package service

import (
	"go.uber.org/zap"

	"github.com/Dydymerho/SMD-Project-sub002/config"
	"github.com/Dydymerho/SMD-Project-sub002/internal/repository"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/jwt"
	"github.com/Dydymerho/SMD-Project-sub002/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Course     CourseService
	Syllabus   SyllabusService
	Catalog    CatalogService
	Extraction ExtractionService
	Draft      DraftService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Course:     NewCourseService(repo, logger),
		Syllabus:   NewSyllabusService(repo, logger),
		Catalog:    NewCatalogService(repo, logger),
		Extraction: NewExtractionService(&cfg.AI, repo, logger),
		Draft:      NewDraftService(rdb, logger),
		Export:     NewExportService(repo, logger),
	}
}
