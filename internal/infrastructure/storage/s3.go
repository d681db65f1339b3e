// Package storage 提供基于S3兼容对象存储的文件存取（书籍图片）
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/xiebiao/bookmarket/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookmarket/pkg/errors"
)

// ObjectStorage S3对象存储封装
// 设计说明：
// 1. 使用aws-sdk-go-v2，Endpoint非空时走自定义端点（MinIO/本地模拟）
// 2. 上传成功返回可公开访问的URL，由PublicBaseURL拼接（通常是CDN域名）
// 3. 删除用于Saga补偿：DB写入失败时回收已上传的对象
type ObjectStorage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewObjectStorage 创建对象存储客户端
func NewObjectStorage(ctx context.Context, cfg appconfig.StorageConfig) (*ObjectStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	// 静态凭证（留空则走默认凭证链：环境变量、IAM角色等）
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// MinIO等自建存储通常不支持虚拟主机风格的bucket寻址
			o.UsePathStyle = true
		}
	})

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		if cfg.Endpoint != "" {
			publicBaseURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
		} else {
			publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &ObjectStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Upload 上传对象，返回公开访问URL
func (s *ObjectStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", apperrors.Wrap(err, "上传文件失败")
	}

	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}

// Delete 删除对象（Saga补偿用）
func (s *ObjectStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return apperrors.Wrap(err, "删除文件失败")
	}
	return nil
}
