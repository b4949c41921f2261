package catalog

import (
	"sort"
	"strings"

	"github.com/Dydymerho/SMD-Project-sub002/internal/model"
)

// Catalog 教学大纲目录的只读快照
//
// 设计说明：
//   - 快照一经构建即不可变，所有查询均为纯函数，可被任意多个调用方并发使用
//   - 先修课程代码允许悬空引用（指向目录外的课程），遍历时视为叶子节点
//   - code 理论上唯一；若数据源出现重复，查询按目录顺序取首个匹配
type Catalog struct {
	records []model.Syllabus
}

// New 从大纲记录列表构建目录快照（复制切片，调用方后续修改不影响快照）
func New(records []model.Syllabus) *Catalog {
	snapshot := make([]model.Syllabus, len(records))
	copy(snapshot, records)
	return &Catalog{records: snapshot}
}

// Len 返回目录中的记录数
func (c *Catalog) Len() int { return len(c.records) }

// Records 返回目录记录（快照内部切片，调用方不得修改）
func (c *Catalog) Records() []model.Syllabus { return c.records }

// FindByCode 按课程代码查找大纲，未找到返回 nil
func (c *Catalog) FindByCode(code string) *model.Syllabus {
	for i := range c.records {
		if c.records[i].Code == code {
			return &c.records[i]
		}
	}
	return nil
}

// PrerequisiteChain 计算先修课程的传递闭包
//
// 遍历规则：
//   - 深度优先，后序：先递归进入每个直接先修，再将其追加到结果
//   - visited 集合按 code 去重，保证环状或重复引用下必然终止
//   - 起始课程本身不出现在自己的链中
//   - 悬空引用（目录中不存在的代码）作为叶子保留在链中
func (c *Catalog) PrerequisiteChain(code string) []string {
	visited := map[string]bool{code: true}
	chain := []string{}

	var walk func(cur string)
	walk = func(cur string) {
		rec := c.FindByCode(cur)
		if rec == nil {
			return // 悬空引用：无先修可递归
		}
		for _, pre := range rec.Prerequisites {
			if visited[pre] {
				continue
			}
			visited[pre] = true
			walk(pre)
			chain = append(chain, pre)
		}
	}
	walk(code)

	return chain
}

// RelatedSubjects 返回 tree 变体的关联课程代码；text 变体或未找到时返回空列表
func (c *Catalog) RelatedSubjects(code string) []string {
	rec := c.FindByCode(code)
	if rec == nil || rec.RelationType != model.RelationTree {
		return []string{}
	}
	return rec.RelationCodes
}

// FilterByDepartment 按院系名称做大小写不敏感的子串匹配
func (c *Catalog) FilterByDepartment(substr string) []model.Syllabus {
	needle := strings.ToLower(substr)
	result := []model.Syllabus{}
	for _, rec := range c.records {
		if strings.Contains(strings.ToLower(rec.Department), needle) {
			result = append(result, rec)
		}
	}
	return result
}

// TotalCredits 累加给定课程代码的学分；悬空代码计 0
func (c *Catalog) TotalCredits(codes []string) int {
	total := 0
	for _, code := range codes {
		if rec := c.FindByCode(code); rec != nil {
			total += rec.Credits
		}
	}
	return total
}

// SemestersPresent 返回目录中出现过的学期号，升序去重
func (c *Catalog) SemestersPresent() []int {
	seen := map[int]bool{}
	semesters := []int{}
	for _, rec := range c.records {
		if !seen[rec.Semester] {
			seen[rec.Semester] = true
			semesters = append(semesters, rec.Semester)
		}
	}
	sort.Ints(semesters)
	return semesters
}

// PrerequisitesRespectOrdering 校验先修课程的学期先后关系
//
// 任一可解析的直接先修课学期 ≥ 本课程学期 → false；
// 悬空先修跳过不判；无先修（或课程不存在）视为通过。
func (c *Catalog) PrerequisitesRespectOrdering(code string) bool {
	rec := c.FindByCode(code)
	if rec == nil {
		return true
	}
	for _, pre := range rec.Prerequisites {
		preRec := c.FindByCode(pre)
		if preRec == nil {
			continue // 悬空引用：无学期信息可比较
		}
		if preRec.Semester >= rec.Semester {
			return false
		}
	}
	return true
}
