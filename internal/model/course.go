package model

// Course 课程表 — 对应 courses
// 创建教学大纲向导中的课程参考数据
type Course struct {
	CourseID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code       string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name       string `gorm:"type:varchar(200);not null"                     json:"name"`
	Department string `gorm:"type:varchar(100);not null;default:''"          json:"department"`
	Credits    int    `gorm:"type:smallint;not null;default:0"               json:"credits"`
	ProgramID  *string `gorm:"type:uuid"                                     json:"program_id,omitempty"`
	BaseModel

	// 关联
	Program *Program `gorm:"foreignKey:ProgramID;references:ProgramID" json:"program,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// CourseFollow 课程关注关系表 — 对应 course_follows
type CourseFollow struct {
	UserID   string `gorm:"type:uuid;primaryKey" json:"user_id"`
	CourseID string `gorm:"type:uuid;primaryKey" json:"course_id"`
	BaseModel
}

// TableName 指定表名
func (CourseFollow) TableName() string { return "course_follows" }
