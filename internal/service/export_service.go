package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
	"github.com/Dydymerho/SMD-Project-sub002/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportDateInvalid  = errors.New("学期开始日期无效")
	ErrExportNoSessions   = errors.New("该大纲暂无教学周计划")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - Excel 导出完整大纲（基本信息 / CLO 映射 / 考核 / 教学计划 / 教材 分 Sheet）
//   - ICS 导出教学周计划：以学期开始日期推算每周上课日期
//   - 均以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSyllabusExcel 导出教学大纲为 Excel
	ExportSyllabusExcel(ctx context.Context, syllabusID string) (*bytes.Buffer, string, error)
	// ExportSessionPlanICS 导出教学周计划为 iCalendar
	ExportSessionPlanICS(ctx context.Context, syllabusID string, semesterStart string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSyllabusExcel — 导出教学大纲为 Excel
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportSyllabusExcel(ctx context.Context, syllabusID string) (*bytes.Buffer, string, error) {
	syllabus, err := s.loadSyllabus(ctx, syllabusID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	// Sheet 1: 基本信息
	info := "Overview"
	f.SetSheetName("Sheet1", info)
	infoRows := [][]interface{}{
		{"Code", syllabus.Code},
		{"Name", syllabus.Name},
		{"Department", syllabus.Department},
		{"Semester", syllabus.Semester},
		{"Academic Year", syllabus.AcademicYear},
		{"Credits", syllabus.Credits},
		{"Prerequisites", strings.Join(syllabus.Prerequisites, ", ")},
	}
	for i, row := range infoRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(info, cell, &row); err != nil {
			s.logger.Error("写入 Excel 行失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	// Sheet 2: CLO 与 PLO 映射
	if err := s.writeSheet(f, "CLOs", []interface{}{"Code", "Description", "PLOs"}, func(add func(row []interface{})) {
		for _, c := range syllabus.CLOs {
			add([]interface{}{c.Code, c.Description, strings.Join(c.PLOCodes, ", ")})
		}
	}); err != nil {
		return nil, "", err
	}

	// Sheet 3: 考核计划
	if err := s.writeSheet(f, "Assessments", []interface{}{"Type", "Weight (%)"}, func(add func(row []interface{})) {
		for _, a := range syllabus.Assessments {
			add([]interface{}{a.Type, a.Weight})
		}
	}); err != nil {
		return nil, "", err
	}

	// Sheet 4: 教学周计划
	if err := s.writeSheet(f, "Sessions", []interface{}{"Week", "Topic", "Method"}, func(add func(row []interface{})) {
		for _, p := range syllabus.SessionPlans {
			add([]interface{}{p.Week, p.Topic, p.Method})
		}
	}); err != nil {
		return nil, "", err
	}

	// Sheet 5: 教材资料
	if err := s.writeSheet(f, "Materials", []interface{}{"Name", "Author", "Category"}, func(add func(row []interface{})) {
		for _, m := range syllabus.Materials {
			add([]interface{}{m.Name, m.Author, m.Category})
		}
	}); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("syllabus_%s_%s.xlsx", syllabus.Code, syllabus.AcademicYear)
	return buf, filename, nil
}

// writeSheet 新建 Sheet 并写入表头与数据行
func (s *exportService) writeSheet(f *excelize.File, name string, header []interface{}, fill func(add func(row []interface{}))) error {
	if _, err := f.NewSheet(name); err != nil {
		s.logger.Error("创建 Sheet 失败", zap.String("sheet", name), zap.Error(err))
		return ErrExportGenerateFail
	}

	rowNum := 1
	writeErr := error(nil)
	write := func(row []interface{}) {
		if writeErr != nil {
			return
		}
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		writeErr = f.SetSheetRow(name, cell, &row)
		rowNum++
	}

	write(header)
	fill(write)

	if writeErr != nil {
		s.logger.Error("写入 Sheet 失败", zap.String("sheet", name), zap.Error(writeErr))
		return ErrExportGenerateFail
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// ExportSessionPlanICS — 导出教学周计划为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 第 N 教学周的课次映射到：学期开始日期 + (N-1)*7 天；
// 每课次生成一个 2 小时的 VEVENT，SUMMARY 为课程代码 + 主题。

func (s *exportService) ExportSessionPlanICS(ctx context.Context, syllabusID string, semesterStart string) (*bytes.Buffer, string, error) {
	start, err := time.Parse("2006-01-02", semesterStart)
	if err != nil {
		return nil, "", ErrExportDateInvalid
	}

	syllabus, err := s.loadSyllabus(ctx, syllabusID)
	if err != nil {
		return nil, "", err
	}
	if len(syllabus.SessionPlans) == 0 {
		return nil, "", ErrExportNoSessions
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SMD//Syllabus//EN")

	for _, p := range syllabus.SessionPlans {
		day := start.AddDate(0, 0, (p.Week-1)*7)
		eventStart := time.Date(day.Year(), day.Month(), day.Day(), 8, 0, 0, 0, time.UTC)

		event := cal.AddEvent(fmt.Sprintf("%s-week%d@smd", syllabus.SyllabusID, p.Week))
		event.SetCreatedTime(time.Now())
		event.SetStartAt(eventStart)
		event.SetEndAt(eventStart.Add(2 * time.Hour))
		event.SetSummary(fmt.Sprintf("%s - %s", syllabus.Code, p.Topic))
		if p.Method != "" {
			event.SetDescription("教学方式: " + p.Method)
		}
	}

	buf := &bytes.Buffer{}
	if err := cal.SerializeTo(buf); err != nil {
		s.logger.Error("生成 ICS 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("sessions_%s_%s.ics", syllabus.Code, syllabus.AcademicYear)
	return buf, filename, nil
}

// ── 内部辅助方法 ──

func (s *exportService) loadSyllabus(ctx context.Context, id string) (*model.Syllabus, error) {
	syllabus, err := s.repo.Syllabus.GetByIDFull(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSyllabusNotFound
		}
		s.logger.Error("查询教学大纲失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return syllabus, nil
}
