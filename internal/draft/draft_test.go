package draft

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDraft_AddItem(t *testing.T) {
	d := New("draft-001")

	idx, err := d.AddItem(ListCLOs, Item{"code": "CLO1", "description": "掌握面向对象设计"})
	if err != nil {
		t.Fatalf("AddItem 应成功: %v", err)
	}
	if idx != 0 {
		t.Errorf("首项下标期望 0，实际=%d", idx)
	}
	if len(d.CLOs) != 1 || d.CLOs[0]["code"] != "CLO1" {
		t.Errorf("CLO 列表内容异常: %v", d.CLOs)
	}

	// nil 模板追加为空项
	idx, err = d.AddItem(ListAssessments, nil)
	if err != nil {
		t.Fatalf("AddItem(nil) 应成功: %v", err)
	}
	if d.Assessments[idx] == nil {
		t.Error("nil 模板应初始化为空 Item")
	}
}

func TestDraft_AddItem_UnknownList(t *testing.T) {
	d := New("draft-001")

	_, err := d.AddItem("grades", Item{})
	if !errors.Is(err, ErrUnknownList) {
		t.Errorf("期望 ErrUnknownList，实际: %v", err)
	}
}

func TestDraft_RemoveItem(t *testing.T) {
	d := New("draft-001")
	d.AddItem(ListMaterials, Item{"name": "教材A"})
	d.AddItem(ListMaterials, Item{"name": "教材B"})
	d.AddItem(ListMaterials, Item{"name": "教材C"})

	if err := d.RemoveItem(ListMaterials, 1); err != nil {
		t.Fatalf("RemoveItem 应成功: %v", err)
	}
	if len(d.Materials) != 2 {
		t.Fatalf("期望剩余 2 项，实际=%d", len(d.Materials))
	}
	if d.Materials[0]["name"] != "教材A" || d.Materials[1]["name"] != "教材C" {
		t.Errorf("删除后列表内容异常: %v", d.Materials)
	}
}

func TestDraft_RemoveItem_OutOfRange(t *testing.T) {
	d := New("draft-001")
	d.AddItem(ListSessionPlans, Item{"week": 1})

	if err := d.RemoveItem(ListSessionPlans, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("期望 ErrIndexOutOfRange，实际: %v", err)
	}
	if err := d.RemoveItem(ListSessionPlans, -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("负下标期望 ErrIndexOutOfRange，实际: %v", err)
	}
}

func TestDraft_UpdateItem(t *testing.T) {
	d := New("draft-001")
	d.AddItem(ListAssessments, Item{"type": "quiz", "weight": 10})

	if err := d.UpdateItem(ListAssessments, 0, "weight", 20); err != nil {
		t.Fatalf("UpdateItem 应成功: %v", err)
	}
	if d.Assessments[0]["weight"] != 20 {
		t.Errorf("期望 weight=20，实际=%v", d.Assessments[0]["weight"])
	}
	if d.Assessments[0]["type"] != "quiz" {
		t.Error("未更新的字段不应改变")
	}
}

func TestDraft_JSONRoundTrip(t *testing.T) {
	d := New("draft-001")
	d.CourseID = "course-001"
	d.AcademicYear = "2026-2027"
	d.AddItem(ListCLOs, Item{"code": "CLO1"})
	d.AddItem(ListAssessments, Item{"type": "final", "weight": 60})

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("序列化草稿失败: %v", err)
	}

	var got Draft
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("反序列化草稿失败: %v", err)
	}
	if got.DraftID != "draft-001" || got.CourseID != "course-001" {
		t.Errorf("草稿头信息丢失: %+v", got)
	}
	if len(got.CLOs) != 1 || len(got.Assessments) != 1 {
		t.Errorf("草稿列表丢失: clos=%d assessments=%d", len(got.CLOs), len(got.Assessments))
	}
}

func TestIsValidList(t *testing.T) {
	for _, name := range ValidLists() {
		if !IsValidList(name) {
			t.Errorf("合法列表名 %s 校验失败", name)
		}
	}
	if IsValidList("grades") {
		t.Error("未知列表名不应通过校验")
	}
}
