package handler

import "github.com/Dydymerho/SMD-Project-sub002/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Course     *CourseHandler
	Syllabus   *SyllabusHandler
	Catalog    *CatalogHandler
	Extraction *ExtractionHandler
	Draft      *DraftHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Course:     NewCourseHandler(svc.Course),
		Syllabus:   NewSyllabusHandler(svc.Syllabus, svc.Catalog),
		Catalog:    NewCatalogHandler(svc.Catalog),
		Extraction: NewExtractionHandler(svc.Extraction),
		Draft:      NewDraftHandler(svc.Draft),
		Export:     NewExportHandler(svc.Export),
	}
}
