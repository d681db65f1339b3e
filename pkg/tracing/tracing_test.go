package tracing

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// TestInitTracer 测试Tracer初始化
func TestInitTracer(t *testing.T) {
	shutdown, err := InitTracer("bookmarket-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	// Collector不在线时flush会失败，不作为测试失败处理
	defer func() { _ = shutdown(context.Background()) }()

	// 验证全局TracerProvider已设置
	tracer := otel.Tracer("test")
	if tracer == nil {
		t.Error("全局TracerProvider未设置")
	}
}

// TestStartSpan 测试Span创建
func TestStartSpan(t *testing.T) {
	shutdown, err := InitTracer("bookmarket-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	t.Run("创建根Span", func(t *testing.T) {
		ctx := context.Background()

		// 创建根Span
		_, span := StartSpan(ctx, "bookmarket-test", "TestOperation")
		defer span.End()

		// 验证Span有效
		if !span.SpanContext().IsValid() {
			t.Error("Span无效")
		}

		// 验证TraceID存在
		traceID := span.SpanContext().TraceID().String()
		if traceID == "" || traceID == "00000000000000000000000000000000" {
			t.Errorf("TraceID无效: %s", traceID)
		}
	})

	t.Run("创建子Span", func(t *testing.T) {
		ctx := context.Background()

		// 创建根Span
		ctx, rootSpan := StartSpan(ctx, "bookmarket-test", "RootOperation")
		defer rootSpan.End()

		rootTraceID := rootSpan.SpanContext().TraceID().String()
		rootSpanID := rootSpan.SpanContext().SpanID().String()

		// 创建子Span
		_, childSpan := StartSpan(ctx, "bookmarket-test", "ChildOperation")
		defer childSpan.End()

		childTraceID := childSpan.SpanContext().TraceID().String()

		// 验证子Span继承了根Span的TraceID
		if childTraceID != rootTraceID {
			t.Errorf("子Span的TraceID不匹配: root=%s, child=%s", rootTraceID, childTraceID)
		}

		// 验证子Span有不同的SpanID
		childSpanID := childSpan.SpanContext().SpanID().String()
		if childSpanID == rootSpanID {
			t.Error("子Span的SpanID不应与根Span相同")
		}
	})
}

// TestExtractTraceID 测试TraceID提取
func TestExtractTraceID(t *testing.T) {
	shutdown, err := InitTracer("bookmarket-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	t.Run("从有效Context提取TraceID", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := StartSpan(ctx, "bookmarket-test", "TestExtract")
		defer span.End()

		traceID := ExtractTraceID(ctx)

		if traceID == "" {
			t.Error("TraceID为空")
		}

		// TraceID是32位十六进制
		if len(traceID) != 32 {
			t.Errorf("TraceID长度错误: expected=32, got=%d", len(traceID))
		}
	})

	t.Run("从无效Context提取TraceID", func(t *testing.T) {
		ctx := context.Background()

		traceID := ExtractTraceID(ctx)

		if traceID != "" {
			t.Errorf("期望空字符串，实际: %s", traceID)
		}
	})
}

// TestExtractSpanID 测试SpanID提取
func TestExtractSpanID(t *testing.T) {
	shutdown, err := InitTracer("bookmarket-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	t.Run("从有效Context提取SpanID", func(t *testing.T) {
		ctx := context.Background()
		ctx, span := StartSpan(ctx, "bookmarket-test", "TestExtractSpanID")
		defer span.End()

		spanID := ExtractSpanID(ctx)

		if spanID == "" {
			t.Error("SpanID为空")
		}

		// SpanID是16位十六进制
		if len(spanID) != 16 {
			t.Errorf("SpanID长度错误: expected=16, got=%d", len(spanID))
		}
	})

	t.Run("从无效Context提取SpanID", func(t *testing.T) {
		ctx := context.Background()

		spanID := ExtractSpanID(ctx)

		if spanID != "" {
			t.Errorf("期望空字符串，实际: %s", spanID)
		}
	})
}

// TestRealWorldScenario 真实场景：模拟结账流程的追踪
func TestRealWorldScenario(t *testing.T) {
	shutdown, err := InitTracer("bookmarket-test", "localhost:4317")
	if err != nil {
		t.Fatalf("初始化Tracer失败: %v", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	ctx := context.Background()

	if err := checkout(ctx, "68a1b2c3d4e5f6a7b8c9d0e1", 2); err != nil {
		t.Errorf("结账失败: %v", err)
	}
}

// 模拟业务函数：结账
func checkout(ctx context.Context, buyerID string, itemCount int) error {
	// 创建根Span
	ctx, span := StartSpan(ctx, "bookmarket-test", "Checkout")
	defer span.End()

	// 添加业务属性
	span.SetAttributes(
		attribute.String("buyer_id", buyerID),
		attribute.Int("item_count", itemCount),
	)

	// 步骤1：快照购物车
	if err := snapshotCart(ctx, buyerID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	// 步骤2：扣减库存
	if err := decrementStock(ctx, itemCount); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	// 步骤3：删除购物车
	if err := deleteCart(ctx, buyerID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "结账成功")
	return nil
}

// 模拟业务函数：快照购物车
func snapshotCart(ctx context.Context, buyerID string) error {
	_, span := StartSpan(ctx, "bookmarket-test", "SnapshotCart")
	defer span.End()

	span.SetAttributes(attribute.String("buyer_id", buyerID))

	// 模拟数据库查询耗时
	time.Sleep(10 * time.Millisecond)

	span.SetStatus(codes.Ok, "快照完成")
	return nil
}

// 模拟业务函数：扣减库存
func decrementStock(ctx context.Context, itemCount int) error {
	_, span := StartSpan(ctx, "bookmarket-test", "DecrementStock")
	defer span.End()

	span.SetAttributes(attribute.Int("item_count", itemCount))

	// 模拟数据库写入耗时
	time.Sleep(20 * time.Millisecond)

	span.SetStatus(codes.Ok, "库存扣减成功")
	return nil
}

// 模拟业务函数：删除购物车
func deleteCart(ctx context.Context, buyerID string) error {
	_, span := StartSpan(ctx, "bookmarket-test", "DeleteCart")
	defer span.End()

	span.SetAttributes(attribute.String("buyer_id", buyerID))

	time.Sleep(5 * time.Millisecond)

	span.SetStatus(codes.Ok, "购物车已删除")
	return nil
}
