package book

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xiebiao/bookmarket/internal/domain/book"
	"github.com/xiebiao/bookmarket/internal/infrastructure/storage"
	"github.com/xiebiao/bookmarket/pkg/objectid"
	"github.com/xiebiao/bookmarket/pkg/saga"
)

// UploadImageUseCase 上传书籍图片用例
// 设计说明：
// S3和MySQL无法共享一个事务，所以用Saga补偿模式：
//   步骤1：上传图片到S3（补偿：删除S3对象）
//   步骤2：把图片URL追加到书籍记录（失败则触发步骤1的补偿）
// 最终要么"对象在S3且URL在库里"，要么两者都不存在
type UploadImageUseCase struct {
	bookService book.Service
	bookRepo    book.Repository
	store       *storage.ObjectStorage
}

// NewUploadImageUseCase 创建上传图片用例
func NewUploadImageUseCase(
	bookService book.Service,
	bookRepo book.Repository,
	store *storage.ObjectStorage,
) *UploadImageUseCase {
	return &UploadImageUseCase{
		bookService: bookService,
		bookRepo:    bookRepo,
		store:       store,
	}
}

// UploadImageRequest 上传图片请求DTO
type UploadImageRequest struct {
	SellerID    string    // 从JWT中提取
	BookID      string    // 路径参数
	FileName    string    // 原始文件名（仅用于推断扩展名）
	ContentType string    // MIME类型
	Body        io.Reader // 文件内容
}

// Execute 执行上传
func (uc *UploadImageUseCase) Execute(ctx context.Context, req UploadImageRequest) (*BookItem, error) {
	sellerID, err := objectid.Parse(req.SellerID)
	if err != nil {
		return nil, err
	}

	// 1. 查书并校验卖家身份
	b, err := uc.bookService.Get(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(sellerID) {
		return nil, book.ErrNotOwner
	}

	// 对象Key：books/{bookID}/{唯一ID}，避免同名文件互相覆盖
	key := fmt.Sprintf("books/%s/%s", b.ID, objectid.New())

	var imageURL string
	s := saga.NewSaga(30 * time.Second)

	// 步骤1：上传到S3
	s.AddStep("上传图片",
		func(ctx context.Context) error {
			url, err := uc.store.Upload(ctx, key, req.Body, req.ContentType)
			if err != nil {
				return err
			}
			imageURL = url
			return nil
		},
		func(ctx context.Context) error {
			return uc.store.Delete(ctx, key)
		},
	)

	// 步骤2：URL写入书籍记录（最后一步，无需补偿）
	s.AddStep("更新书籍",
		func(ctx context.Context) error {
			b.AddImage(imageURL)
			return uc.bookRepo.Update(ctx, b)
		},
		func(ctx context.Context) error { return nil },
	)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}

	item := toBookItem(b)
	return &item, nil
}
