package dto

// ── 目录查询模块 DTO ──

// SubjectResponse 目录中的课程条目（轻量视图）
type SubjectResponse struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Department    string   `json:"department"`
	Semester      int      `json:"semester"`
	AcademicYear  string   `json:"academic_year"`
	Credits       int      `json:"credits"`
	Prerequisites []string `json:"prerequisites"`
}

// PrerequisiteChainResponse 先修链响应
type PrerequisiteChainResponse struct {
	Code  string   `json:"code"`
	Chain []string `json:"chain"`
}

// RelatedSubjectsResponse 关联课程响应
type RelatedSubjectsResponse struct {
	Code    string   `json:"code"`
	Related []string `json:"related"`
}

// OrderingCheckResponse 先修学期顺序校验响应
type OrderingCheckResponse struct {
	Code  string `json:"code"`
	Valid bool   `json:"valid"`
}

// TotalCreditsResponse 学分求和响应
type TotalCreditsResponse struct {
	Codes        []string `json:"codes"`
	TotalCredits int      `json:"total_credits"`
}

// SemestersResponse 学期列表响应
type SemestersResponse struct {
	Semesters []int `json:"semesters"`
}
