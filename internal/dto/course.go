package dto

import "encoding/json"

// ── 课程 / 培养方案参考数据 DTO ──

// CourseResponse 课程条目（创建大纲向导的参考数据）
type CourseResponse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Credits    int    `json:"credits"`
	Followed   bool   `json:"followed"` // 当前用户是否已关注
}

// ProgramResponse 培养方案条目
type ProgramResponse struct {
	ID   string          `json:"id"`
	Code string          `json:"code"`
	Name string          `json:"name"`
	PLOs json.RawMessage `json:"plos"`
}

// FollowResponse 关注操作响应
type FollowResponse struct {
	CourseID string `json:"course_id"`
	Followed bool   `json:"followed"`
}
