package author

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

// fakeAuthorRepo 内存版仓储实现（模拟唯一索引）
type fakeAuthorRepo struct {
	byName map[string]*Author
}

func newFakeAuthorRepo() *fakeAuthorRepo {
	return &fakeAuthorRepo{byName: make(map[string]*Author)}
}

func (r *fakeAuthorRepo) Create(ctx context.Context, a *Author) error {
	if _, ok := r.byName[a.Name]; ok {
		return ErrAuthorDuplicate
	}
	r.byName[a.Name] = a
	return nil
}

func (r *fakeAuthorRepo) FindByID(ctx context.Context, id objectid.ID) (*Author, error) {
	for _, a := range r.byName {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAuthorNotFound
}

func (r *fakeAuthorRepo) FindByIDs(ctx context.Context, ids []objectid.ID) ([]*Author, error) {
	var result []*Author
	for _, id := range ids {
		if a, err := r.FindByID(ctx, id); err == nil {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *fakeAuthorRepo) FindByName(ctx context.Context, name string) (*Author, error) {
	if a, ok := r.byName[name]; ok {
		return a, nil
	}
	return nil, ErrAuthorNotFound
}

func (r *fakeAuthorRepo) SearchByName(ctx context.Context, keyword string) ([]*Author, error) {
	return nil, nil
}

func (r *fakeAuthorRepo) Update(ctx context.Context, a *Author) error {
	for name, existing := range r.byName {
		if existing.ID == a.ID {
			delete(r.byName, name)
			r.byName[a.Name] = a
			return nil
		}
	}
	return ErrAuthorNotFound
}

func (r *fakeAuthorRepo) List(ctx context.Context) ([]*Author, error) {
	result := make([]*Author, 0, len(r.byName))
	for _, a := range r.byName {
		result = append(result, a)
	}
	return result, nil
}

func TestService_Resolve_CreatesWhenAbsent(t *testing.T) {
	svc := NewService(newFakeAuthorRepo())

	a, err := svc.Resolve(context.Background(), "Jack London")
	require.NoError(t, err)
	assert.Equal(t, "Jack London", a.Name)
	assert.True(t, objectid.IsValid(a.ID.String()))
}

func TestService_Resolve_ReturnsExisting(t *testing.T) {
	svc := NewService(newFakeAuthorRepo())
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "Jack London")
	require.NoError(t, err)

	// 再次解析同名作者，必须得到同一个ID
	second, err := svc.Resolve(ctx, "Jack London")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestService_Resolve_TrimsWhitespace(t *testing.T) {
	svc := NewService(newFakeAuthorRepo())
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "Jack London")
	require.NoError(t, err)

	second, err := svc.Resolve(ctx, "  Jack London  ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestService_Resolve_NameBounds(t *testing.T) {
	svc := NewService(newFakeAuthorRepo())
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidName)

	// 2字符太短
	_, err = svc.Resolve(ctx, "ab")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Resolve(ctx, strings.Repeat("x", 256))
	assert.ErrorIs(t, err, ErrInvalidName)

	// 边界值允许
	_, err = svc.Resolve(ctx, "abc")
	assert.NoError(t, err)
	_, err = svc.Resolve(ctx, strings.Repeat("y", 255))
	assert.NoError(t, err)
}

func TestService_ResolveAll_DeduplicatesNames(t *testing.T) {
	svc := NewService(newFakeAuthorRepo())

	ids, err := svc.ResolveAll(context.Background(), []string{
		"Jack London", "Mark Twain", "Jack London",
	})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}

func TestService_Rename(t *testing.T) {
	repo := newFakeAuthorRepo()
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Resolve(ctx, "J. London")
	require.NoError(t, err)

	renamed, err := svc.Rename(ctx, a.ID, "Jack London")
	require.NoError(t, err)
	assert.Equal(t, "Jack London", renamed.Name)

	// 旧名字应该查不到了
	_, err = repo.FindByName(ctx, "J. London")
	assert.ErrorIs(t, err, ErrAuthorNotFound)
}
