package saga

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestSaga_Execute_Success 测试所有步骤成功的场景
func TestSaga_Execute_Success(t *testing.T) {
	executed := make([]string, 0)

	saga := NewSaga(5 * time.Second)

	// 步骤1：上传图片
	saga.AddStep("上传图片",
		func(ctx context.Context) error {
			executed = append(executed, "上传图片")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除对象")
			return nil
		},
	)

	// 步骤2：更新书籍images字段
	saga.AddStep("更新书籍",
		func(ctx context.Context) error {
			executed = append(executed, "更新书籍")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "回滚书籍")
			return nil
		},
	)

	// 执行Saga
	err := saga.Execute(context.Background())
	if err != nil {
		t.Fatalf("Saga执行失败: %v", err)
	}

	// 验证执行顺序
	if len(executed) != 2 {
		t.Errorf("期望执行2个步骤，实际执行%d个", len(executed))
	}

	if executed[0] != "上传图片" || executed[1] != "更新书籍" {
		t.Errorf("执行顺序错误: %v", executed)
	}
}

// TestSaga_Execute_FailureAndCompensate 测试步骤失败触发补偿
func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	executed := make([]string, 0)

	saga := NewSaga(5 * time.Second)

	// 步骤1：上传图片（成功）
	saga.AddStep("上传图片",
		func(ctx context.Context) error {
			executed = append(executed, "上传图片")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除对象")
			return nil
		},
	)

	// 步骤2：更新书籍（失败）
	saga.AddStep("更新书籍",
		func(ctx context.Context) error {
			executed = append(executed, "更新书籍")
			return errors.New("数据库写入失败") // 模拟落库失败
		},
		func(ctx context.Context) error {
			executed = append(executed, "回滚书籍")
			return nil
		},
	)

	// 执行Saga（应该失败）
	err := saga.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该失败但返回成功")
	}

	// 验证执行顺序：失败步骤本身未进入已执行列表，只补偿之前的步骤
	// 期望：上传图片 → 更新书籍（失败） → 删除对象
	expected := []string{"上传图片", "更新书籍", "删除对象"}

	if len(executed) != len(expected) {
		t.Errorf("期望执行%d个步骤，实际执行%d个: %v", len(expected), len(executed), executed)
	}

	for i, step := range expected {
		if executed[i] != step {
			t.Errorf("步骤%d期望'%s'，实际'%s'", i, step, executed[i])
		}
	}
}

// TestSaga_Execute_Timeout 测试超时触发补偿
func TestSaga_Execute_Timeout(t *testing.T) {
	executed := make([]string, 0)

	saga := NewSaga(100 * time.Millisecond) // 设置100ms超时

	// 步骤1：快速执行
	saga.AddStep("快速步骤",
		func(ctx context.Context) error {
			executed = append(executed, "快速步骤")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "快速步骤补偿")
			return nil
		},
	)

	// 步骤2：慢速执行（超过超时时间）
	saga.AddStep("慢速步骤",
		func(ctx context.Context) error {
			select {
			case <-time.After(200 * time.Millisecond):
				executed = append(executed, "慢速步骤")
				return nil
			case <-ctx.Done():
				// Context超时，返回错误
				return ctx.Err()
			}
		},
		func(ctx context.Context) error {
			executed = append(executed, "慢速步骤补偿")
			return nil
		},
	)

	// 执行Saga（应该超时）
	err := saga.Execute(context.Background())
	if err == nil {
		t.Fatal("Saga应该超时但返回成功")
	}

	// 验证触发了补偿
	if len(executed) < 2 {
		t.Errorf("超时后应该触发补偿，实际执行: %v", executed)
	}

	if executed[len(executed)-1] != "快速步骤补偿" {
		t.Errorf("期望最后一步是补偿，实际: %v", executed)
	}
}

// TestSaga_CompensateIdempotency 测试补偿幂等性示例
func TestSaga_CompensateIdempotency(t *testing.T) {
	// 模拟已执行补偿的记录
	compensateLog := make(map[string]bool)

	// 幂等的补偿函数
	createIdempotentCompensate := func(objectKey string) func(ctx context.Context) error {
		return func(ctx context.Context) error {
			idempotencyKey := "compensate-upload-" + objectKey

			// 检查是否已执行
			if compensateLog[idempotencyKey] {
				// 已执行过，直接返回成功
				return nil
			}

			// 执行补偿操作（删除对象）
			compensateLog[idempotencyKey] = true
			return nil
		}
	}

	saga := NewSaga(5 * time.Second)
	saga.AddStep("上传图片",
		func(ctx context.Context) error {
			return nil
		},
		createIdempotentCompensate("listings/abc/cover.jpg"),
	)

	// 第一次执行补偿
	saga.executed = saga.steps // 模拟步骤已执行
	saga.compensate(context.Background())

	if len(compensateLog) != 1 {
		t.Errorf("期望记录1条幂等日志，实际%d条", len(compensateLog))
	}

	// 第二次执行补偿（模拟重试）
	saga.executed = saga.steps
	saga.compensate(context.Background())

	// 验证幂等键只记录一次
	if len(compensateLog) != 1 {
		t.Errorf("幂等性失败：期望记录1条日志，实际%d条", len(compensateLog))
	}
}

// ==================== 实战示例：上传书籍图片Saga ====================

// 模拟真实的图片上传场景
type uploadSagaExample struct {
	bookID    string
	objectKey string
	uploaded  bool
	recorded  bool
}

func (u *uploadSagaExample) buildSaga() *Saga {
	saga := NewSaga(30 * time.Second)

	// 步骤1：上传对象到存储
	saga.AddStep("上传图片",
		func(ctx context.Context) error {
			u.uploaded = true
			u.objectKey = "listings/" + u.bookID + "/cover.jpg"
			return nil
		},
		func(ctx context.Context) error {
			u.uploaded = false
			return nil
		},
	)

	// 步骤2：把URL写入书籍images字段
	saga.AddStep("更新书籍",
		func(ctx context.Context) error {
			u.recorded = true
			return nil
		},
		func(ctx context.Context) error {
			u.recorded = false
			return nil
		},
	)

	return saga
}

func TestUploadSagaExample_Success(t *testing.T) {
	example := &uploadSagaExample{bookID: "68a1b2c3d4e5f6a7b8c9d0e1"}

	saga := example.buildSaga()
	err := saga.Execute(context.Background())

	if err != nil {
		t.Fatalf("上传Saga执行失败: %v", err)
	}

	if !example.uploaded || !example.recorded {
		t.Error("上传Saga未完全执行")
	}
}

func TestUploadSagaExample_RecordFailed(t *testing.T) {
	example := &uploadSagaExample{bookID: "68a1b2c3d4e5f6a7b8c9d0e1"}

	saga := example.buildSaga()

	// 修改落库步骤，模拟失败
	saga.steps[1].Action = func(ctx context.Context) error {
		return errors.New("数据库写入失败")
	}

	err := saga.Execute(context.Background())

	if err == nil {
		t.Fatal("落库失败应该触发Saga失败")
	}

	// 验证补偿已执行（已上传的对象被删除）
	if example.uploaded || example.recorded {
		t.Error("补偿未执行，数据状态错误")
	}
}

// BenchmarkSaga_Execute 性能基准测试
func BenchmarkSaga_Execute(b *testing.B) {
	saga := NewSaga(5 * time.Second)

	saga.AddStep("步骤1", func(ctx context.Context) error { return nil }, nil)
	saga.AddStep("步骤2", func(ctx context.Context) error { return nil }, nil)
	saga.AddStep("步骤3", func(ctx context.Context) error { return nil }, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = saga.Execute(context.Background())
		// 重置执行状态
		saga.executed = nil
	}
}
