package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// fakeUserRepo 内存版仓储实现
type fakeUserRepo struct {
	byID map[objectid.ID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[objectid.ID]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return ErrUsernameDuplicate
		}
		if existing.Email == u.Email {
			return ErrEmailDuplicate
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id objectid.ID) (*User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return ErrUserNotFound
	}
	r.byID[u.ID] = u
	return nil
}

func TestService_Register(t *testing.T) {
	svc := NewService(newFakeUserRepo())

	u, err := svc.Register(context.Background(), "bookworm", "reader@example.com", "passw0rd")
	require.NoError(t, err)
	assert.Equal(t, "bookworm", u.Username)
	assert.False(t, u.IsAdmin)
	// 密码必须是加密后的
	assert.NotEqual(t, "passw0rd", u.Password)
}

func TestService_Register_Validation(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	// 用户名过短
	_, err := svc.Register(ctx, "ab", "reader@example.com", "passw0rd")
	assert.Error(t, err)

	// 邮箱格式错误
	_, err = svc.Register(ctx, "bookworm", "not-an-email", "passw0rd")
	assert.Error(t, err)

	// 密码无数字
	_, err = svc.Register(ctx, "bookworm", "reader@example.com", "password")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "bookworm", "first@example.com", "passw0rd")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "bookworm", "second@example.com", "passw0rd")
	assert.ErrorIs(t, err, ErrUsernameDuplicate)
}

func TestService_Login(t *testing.T) {
	svc := NewService(newFakeUserRepo())
	ctx := context.Background()

	registered, err := svc.Register(ctx, "bookworm", "reader@example.com", "passw0rd")
	require.NoError(t, err)

	// 正确密码
	u, err := svc.Login(ctx, "bookworm", "passw0rd")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)

	// 错误密码
	_, err = svc.Login(ctx, "bookworm", "wrongpass1")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	// 不存在的用户
	_, err = svc.Login(ctx, "nobody", "passw0rd")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
