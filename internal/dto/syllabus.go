package dto

// ── 教学大纲模块 DTO ──

// CreateSyllabusRequest 创建教学大纲请求
// 支持两种形态：仅主记录，或携带完整子列表的嵌套负载（原子创建）
type CreateSyllabusRequest struct {
	CourseID      string   `json:"course_id"     binding:"required,uuid"`
	Code          string   `json:"code"          binding:"required,max=20"`
	Name          string   `json:"name"          binding:"required,max=200"`
	Department    string   `json:"department"    binding:"max=100"`
	Semester      int      `json:"semester"      binding:"required,min=1"`
	AcademicYear  string   `json:"academic_year" binding:"required,max=20"`
	Credits       int      `json:"credits"       binding:"min=0"`
	Prerequisites []string `json:"prerequisites"`
	RelationType  string   `json:"relation_type"  binding:"omitempty,oneof=tree text"`
	RelationCodes []string `json:"relation_codes"`
	RelationText  string   `json:"relation_text"`

	// 嵌套子列表（可选；非空时与主记录在同一事务中创建）
	CLOs         []CreateCLORequest         `json:"clos"          binding:"omitempty,dive"`
	Assessments  []CreateAssessmentRequest  `json:"assessments"   binding:"omitempty,dive"`
	SessionPlans []CreateSessionPlanRequest `json:"session_plans" binding:"omitempty,dive"`
	Materials    []CreateMaterialRequest    `json:"materials"     binding:"omitempty,dive"`
}

// CreateCLORequest CLO 创建项
type CreateCLORequest struct {
	Code        string   `json:"code"        binding:"required,max=20"`
	Description string   `json:"description"`
	PLOCodes    []string `json:"plo_codes"`
}

// CreateAssessmentRequest 考核项创建项
type CreateAssessmentRequest struct {
	Type   string `json:"type"   binding:"required,max=50"`
	Weight int    `json:"weight" binding:"min=0,max=100"`
}

// CreateSessionPlanRequest 教学周计划创建项
type CreateSessionPlanRequest struct {
	Week   int    `json:"week"   binding:"required,min=1"`
	Topic  string `json:"topic"  binding:"required,max=300"`
	Method string `json:"method" binding:"max=100"`
}

// CreateMaterialRequest 教材资料创建项
type CreateMaterialRequest struct {
	Name     string `json:"name"     binding:"required,max=300"`
	Author   string `json:"author"   binding:"max=200"`
	Category string `json:"category" binding:"max=50"`
}

// ── 批量子记录请求（POST /syllabi/:id/...） ──

// BatchCLORequest 批量创建 CLO
type BatchCLORequest struct {
	Items []CreateCLORequest `json:"items" binding:"required,min=1,dive"`
}

// BatchAssessmentRequest 批量创建考核项
type BatchAssessmentRequest struct {
	Items []CreateAssessmentRequest `json:"items" binding:"required,min=1,dive"`
}

// BatchSessionPlanRequest 批量创建教学周计划
type BatchSessionPlanRequest struct {
	Items []CreateSessionPlanRequest `json:"items" binding:"required,min=1,dive"`
}

// BatchMaterialRequest 批量创建教材资料
type BatchMaterialRequest struct {
	Items []CreateMaterialRequest `json:"items" binding:"required,min=1,dive"`
}

// ── 响应 ──

// CreateSyllabusResponse 创建成功响应
type CreateSyllabusResponse struct {
	SyllabusID string `json:"syllabus_id"`
}

// SyllabusConflictData 409 冲突响应附带数据
type SyllabusConflictData struct {
	ExistingSyllabusID string `json:"existing_syllabus_id"`
}

// SyllabusResponse 教学大纲详情响应
type SyllabusResponse struct {
	ID            string   `json:"id"`
	CourseID      string   `json:"course_id"`
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Department    string   `json:"department"`
	Semester      int      `json:"semester"`
	AcademicYear  string   `json:"academic_year"`
	Credits       int      `json:"credits"`
	Prerequisites []string `json:"prerequisites"`
	RelationType  string   `json:"relation_type"`
	RelationCodes []string `json:"relation_codes,omitempty"`
	RelationText  string   `json:"relation_text,omitempty"`

	CLOs         []CLOResponse         `json:"clos,omitempty"`
	Assessments  []AssessmentResponse  `json:"assessments,omitempty"`
	SessionPlans []SessionPlanResponse `json:"session_plans,omitempty"`
	Materials    []MaterialResponse    `json:"materials,omitempty"`
}

// CLOResponse CLO 响应
type CLOResponse struct {
	ID          string   `json:"id"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	PLOCodes    []string `json:"plo_codes"`
}

// AssessmentResponse 考核项响应
type AssessmentResponse struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Weight int    `json:"weight"`
}

// SessionPlanResponse 教学周计划响应
type SessionPlanResponse struct {
	ID     string `json:"id"`
	Week   int    `json:"week"`
	Topic  string `json:"topic"`
	Method string `json:"method"`
}

// MaterialResponse 教材资料响应
type MaterialResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Author   string `json:"author"`
	Category string `json:"category"`
}
