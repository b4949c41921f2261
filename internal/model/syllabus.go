package model

// 课程关系变体
const (
	RelationTree = "tree" // 结构化关联课程代码列表
	RelationText = "text" // 自由文本描述
)

// Syllabus 教学大纲表 — 对应 syllabi
// (course_id, academic_year) 唯一：同一课程同一学年只允许一份大纲
type Syllabus struct {
	SyllabusID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"syllabus_id"`
	CourseID      string      `gorm:"type:uuid;not null;uniqueIndex:uniq_course_year" json:"course_id"`
	Code          string      `gorm:"type:varchar(20);not null;index"                json:"code"`
	Name          string      `gorm:"type:varchar(200);not null"                     json:"name"`
	Department    string      `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Semester      int         `gorm:"type:smallint;not null;default:1"               json:"semester"` // 1 起始
	AcademicYear  string      `gorm:"type:varchar(20);not null;uniqueIndex:uniq_course_year" json:"academic_year"`
	Credits       int         `gorm:"type:smallint;not null;default:0"               json:"credits"`
	Prerequisites StringArray `gorm:"type:text[];not null;default:'{}'"              json:"prerequisites"` // 代码列表，允许悬空引用
	RelationType  string      `gorm:"type:varchar(10);not null;default:'text'"       json:"relation_type"` // tree | text
	RelationCodes StringArray `gorm:"type:text[];not null;default:'{}'"              json:"relation_codes"`
	RelationText  string      `gorm:"type:text;not null;default:''"                  json:"relation_text"`
	CreatedBy     *string     `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel

	// 关联
	Course       *Course       `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	CLOs         []CLO         `gorm:"foreignKey:SyllabusID"                   json:"clos,omitempty"`
	Assessments  []Assessment  `gorm:"foreignKey:SyllabusID"                   json:"assessments,omitempty"`
	SessionPlans []SessionPlan `gorm:"foreignKey:SyllabusID"                   json:"session_plans,omitempty"`
	Materials    []Material    `gorm:"foreignKey:SyllabusID"                   json:"materials,omitempty"`
}

// TableName 指定表名
func (Syllabus) TableName() string { return "syllabi" }

// CLO 课程学习产出表 — 对应 clos
// PLOCodes 为该 CLO 映射到的 PLO 代码集合
type CLO struct {
	CLOID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:clo_id" json:"clo_id"`
	SyllabusID  string      `gorm:"type:uuid;not null;index"              json:"syllabus_id"`
	Code        string      `gorm:"type:varchar(20);not null"             json:"code"`
	Description string      `gorm:"type:text;not null;default:''"         json:"description"`
	PLOCodes    StringArray `gorm:"type:text[];not null;default:'{}';column:plo_codes" json:"plo_codes"`
	BaseModel
}

// TableName 指定表名
func (CLO) TableName() string { return "clos" }

// Assessment 考核项表 — 对应 assessments
type Assessment struct {
	AssessmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assessment_id"`
	SyllabusID   string `gorm:"type:uuid;not null;index"                       json:"syllabus_id"`
	Type         string `gorm:"type:varchar(50);not null"                      json:"type"`
	Weight       int    `gorm:"type:smallint;not null;default:0"               json:"weight"` // 百分比
	BaseModel
}

// TableName 指定表名
func (Assessment) TableName() string { return "assessments" }

// SessionPlan 教学周计划表 — 对应 session_plans
type SessionPlan struct {
	SessionPlanID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_plan_id"`
	SyllabusID    string `gorm:"type:uuid;not null;index"                       json:"syllabus_id"`
	Week          int    `gorm:"type:smallint;not null"                         json:"week"`
	Topic         string `gorm:"type:varchar(300);not null"                     json:"topic"`
	Method        string `gorm:"type:varchar(100);not null;default:''"          json:"method"`
	BaseModel
}

// TableName 指定表名
func (SessionPlan) TableName() string { return "session_plans" }

// Material 教材资料表 — 对应 materials
type Material struct {
	MaterialID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"material_id"`
	SyllabusID string `gorm:"type:uuid;not null;index"                       json:"syllabus_id"`
	Name       string `gorm:"type:varchar(300);not null"                     json:"name"`
	Author     string `gorm:"type:varchar(200);not null;default:''"          json:"author"`
	Category   string `gorm:"type:varchar(50);not null;default:''"           json:"category"`
	BaseModel
}

// TableName 指定表名
func (Material) TableName() string { return "materials" }
