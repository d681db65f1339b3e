// Package tracing 提供基于OpenTelemetry的分布式追踪
//
// 核心概念：
// 1. Trace（追踪）：一个完整的请求链路，如一次结账从开始到结束
// 2. Span（跨度）：一个操作单元，如"扣减库存"，包含开始/结束时间与状态
// 3. SpanContext：跨调用传递的元数据（TraceID、SpanID、ParentSpanID）
//
// 使用示例：
//
//	shutdown, err := tracing.InitTracer("bookmarket-api", "localhost:4317")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer shutdown(context.Background())
//
//	func Checkout(ctx context.Context) error {
//	    ctx, span := tracing.StartSpan(ctx, "bookmarket-api", "Checkout")
//	    defer span.End()
//	    // 下游调用传ctx，自动构建调用树
//	    return decrementStock(ctx)
//	}
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
//   - serviceName: 服务名称（在Jaeger UI中显示）
//   - collectorEndpoint: OTLP gRPC端点（如 localhost:4317）
//
// 返回：
//   - shutdown: 关闭函数（程序退出时调用，确保数据刷新）
//
// 设计要点：
// 1. 使用OTLP协议而非Jaeger原生协议（厂商中立，可切换Zipkin、Datadog）
// 2. 采样策略：AlwaysSample适合开发/测试环境，
//    生产环境建议TraceIDRatioBased（如1%采样）
func InitTracer(serviceName, collectorEndpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter（默认端口4317）
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(collectorEndpoint),
		otlptracegrpc.WithInsecure(), // 禁用TLS（生产环境应启用）
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（资源属性）
	// 这些属性会附加到所有Span上，便于在Jaeger UI中筛选和分组
	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			// service.name是必需属性，用于在Jaeger UI中标识服务
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	tp := sdktrace.NewTracerProvider(
		// 采样策略：AlwaysSample表示100%采样
		sdktrace.WithSampler(sdktrace.AlwaysSample()),

		// BatchSpanProcessor批量发送Span（性能优于SimpleSpanProcessor）
		sdktrace.WithBatcher(exporter),

		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider
	// 业务代码无需传递Provider，直接使用otel.Tracer()获取
	otel.SetTracerProvider(tp)

	// 5. 设置全局TextMapPropagator（上下文传播器）
	// 跨服务调用时通过W3C Trace Context Header传递TraceID/SpanID
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},      // Baggage
		),
	)

	// 6. 返回关闭函数
	// 必须在程序退出前调用，否则可能丢失最后一批Span
	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建一个新的Span（便捷函数）
//
// 参数：
//   - ctx: 父Context（包含父Span信息）
//   - tracerName: Tracer名称（通常是服务名或模块名）
//   - spanName: Span名称（操作名称，如"Checkout"）
//
// Span命名使用操作名而非动态值：GetBook（对）、GetBook-123（错，
// 动态值应放属性里）。必须使用返回的ctx调用下游函数，否则无法构建调用树。
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(tracerName)

	// 如果ctx包含父Span，新Span自动成为子Span；否则成为根Span
	return tracer.Start(ctx, spanName)
}

// ExtractTraceID 从Context提取TraceID（用于关联日志）
//
// 在日志中记录TraceID，便于从日志快速定位到Jaeger追踪：
//
//	traceID := tracing.ExtractTraceID(ctx)
//	log.Printf("TraceID=%s, 结账成功, TransactionID=%s", traceID, txnID)
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
