package objectid

import (
	"testing"
	"time"
)

// TestNew_Format 测试生成的ID格式
func TestNew_Format(t *testing.T) {
	id := New()

	if len(id) != 24 {
		t.Fatalf("期望ID长度24，实际%d: %s", len(id), id)
	}

	if _, err := Parse(string(id)); err != nil {
		t.Errorf("生成的ID应该能通过Parse校验: %v", err)
	}
}

// TestNew_Unique 测试ID唯一性
func TestNew_Unique(t *testing.T) {
	seen := make(map[ID]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("第%d次生成出现重复ID: %s", i, id)
		}
		seen[id] = true
	}
}

// TestParse_Invalid 测试非法ID被拒绝
func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"空字符串", ""},
		{"长度不足", "abc123"},
		{"长度超出", "68a1b2c3d4e5f6a7b8c9d0e1f2"},
		{"非十六进制字符", "zzzzzzzzzzzzzzzzzzzzzzzz"},
		{"中间混入非法字符", "68a1b2c3d4e5f6a7b8c9d0g1"},
		{"23位", "68a1b2c3d4e5f6a7b8c9d0e"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.input); err == nil {
				t.Errorf("期望拒绝非法ID %q，实际通过", tc.input)
			}
		})
	}
}

// TestParse_Valid 测试合法ID通过校验
func TestParse_Valid(t *testing.T) {
	input := "68a1b2c3d4e5f6a7b8c9d0e1"
	id, err := Parse(input)
	if err != nil {
		t.Fatalf("合法ID被拒绝: %v", err)
	}
	if id.String() != input {
		t.Errorf("Parse不应该改变ID内容: %s", id)
	}
}

// TestTimestamp 测试时间戳提取
func TestTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	id := New()
	after := time.Now().Add(time.Second)

	ts := id.Timestamp()
	if ts.Before(before) || ts.After(after) {
		t.Errorf("时间戳超出合理范围: %v", ts)
	}
}
