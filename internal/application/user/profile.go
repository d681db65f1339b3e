package user

import (
	"context"

	"github.com/xiebiao/bookmarket/internal/domain/user"
)

// GetProfileUseCase 查询当前用户信息用例
type GetProfileUseCase struct {
	userService user.Service
}

// NewGetProfileUseCase 创建查询用户信息用例
func NewGetProfileUseCase(userService user.Service) *GetProfileUseCase {
	return &GetProfileUseCase{userService: userService}
}

// Execute 执行查询
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID string) (*UserInfo, error) {
	u, err := uc.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:       string(u.ID),
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}, nil
}
