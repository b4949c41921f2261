package draft

import (
	"errors"
	"time"
)

// ── 草稿模块错误 ──

var (
	ErrUnknownList     = errors.New("未知的草稿列表")
	ErrIndexOutOfRange = errors.New("草稿列表下标越界")
)

// 向导中可独立编辑的四个列表
const (
	ListCLOs         = "clos"
	ListAssessments  = "assessments"
	ListSessionPlans = "session_plans"
	ListMaterials    = "materials"
)

var knownLists = map[string]bool{
	ListCLOs:         true,
	ListAssessments:  true,
	ListSessionPlans: true,
	ListMaterials:    true,
}

// Item 草稿列表项：字段名 → 值，结构由前端向导表单决定
type Item map[string]interface{}

// Draft 创建教学大纲向导的聚合草稿
//
// 设计说明：
//   - 向导的多步表单状态收敛为单一聚合值，四个子列表只能通过
//     AddItem / RemoveItem / UpdateItem 三个操作修改，
//     避免散落在各处的临时字段修改
//   - 草稿整体以 JSON 序列化后暂存于 Redis，TTL 到期即废弃
type Draft struct {
	DraftID      string `json:"draft_id"`
	CourseID     string `json:"course_id"`
	AcademicYear string `json:"academic_year"`
	Semester     int    `json:"semester"`

	CLOs         []Item `json:"clos"`
	Assessments  []Item `json:"assessments"`
	SessionPlans []Item `json:"session_plans"`
	Materials    []Item `json:"materials"`

	UpdatedAt time.Time `json:"updated_at"`
}

// New 创建空草稿
func New(draftID string) *Draft {
	return &Draft{
		DraftID:      draftID,
		CLOs:         []Item{},
		Assessments:  []Item{},
		SessionPlans: []Item{},
		Materials:    []Item{},
		UpdatedAt:    time.Now(),
	}
}

// list 返回指定列表的指针；未知列表名返回 ErrUnknownList
func (d *Draft) list(name string) (*[]Item, error) {
	switch name {
	case ListCLOs:
		return &d.CLOs, nil
	case ListAssessments:
		return &d.Assessments, nil
	case ListSessionPlans:
		return &d.SessionPlans, nil
	case ListMaterials:
		return &d.Materials, nil
	}
	return nil, ErrUnknownList
}

// AddItem 向指定列表追加一项，返回新项下标
func (d *Draft) AddItem(listName string, item Item) (int, error) {
	l, err := d.list(listName)
	if err != nil {
		return 0, err
	}
	if item == nil {
		item = Item{}
	}
	*l = append(*l, item)
	d.UpdatedAt = time.Now()
	return len(*l) - 1, nil
}

// RemoveItem 删除指定列表中下标为 index 的项
func (d *Draft) RemoveItem(listName string, index int) error {
	l, err := d.list(listName)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*l) {
		return ErrIndexOutOfRange
	}
	*l = append((*l)[:index], (*l)[index+1:]...)
	d.UpdatedAt = time.Now()
	return nil
}

// UpdateItem 更新指定列表中某项的单个字段
func (d *Draft) UpdateItem(listName string, index int, field string, value interface{}) error {
	l, err := d.list(listName)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*l) {
		return ErrIndexOutOfRange
	}
	if (*l)[index] == nil {
		(*l)[index] = Item{}
	}
	(*l)[index][field] = value
	d.UpdatedAt = time.Now()
	return nil
}

// ValidLists 返回全部合法列表名（供参数校验使用）
func ValidLists() []string {
	return []string{ListCLOs, ListAssessments, ListSessionPlans, ListMaterials}
}

// IsValidList 判断列表名是否合法
func IsValidList(name string) bool {
	return knownLists[name]
}
