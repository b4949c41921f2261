package model

// Program 培养方案表 — 对应 programs
// PLOs 以 JSONB 存储：[{"code":"PLO1","description":"..."}]
type Program struct {
	ProgramID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"program_id"`
	Code      string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"`
	Name      string `gorm:"type:varchar(200);not null"                     json:"name"`
	PLOs      JSONB  `gorm:"type:jsonb;not null;default:'[]'"               json:"plos"`
	BaseModel
}

// TableName 指定表名
func (Program) TableName() string { return "programs" }
