package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookmarket/pkg/objectid"
)

func TestCart_AddItem(t *testing.T) {
	c := NewCart(objectid.New())
	bookID := objectid.New()

	item, err := c.AddItem(bookID, 3, 12.5)
	require.NoError(t, err)
	assert.Equal(t, bookID, item.BookID)
	assert.Equal(t, 12.5, item.UnitPrice, "加购时单价被锁定在条目上")
	assert.Equal(t, 37.5, item.TotalAmount)
	assert.Len(t, c.Items, 1)
}

func TestCart_AddItem_QuantityBounds(t *testing.T) {
	c := NewCart(objectid.New())
	bookID := objectid.New()

	_, err := c.AddItem(bookID, 0, 10)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = c.AddItem(bookID, 201, 10)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	// 边界值允许
	_, err = c.AddItem(bookID, 1, 10)
	assert.NoError(t, err)
	_, err = c.AddItem(bookID, 200, 10)
	assert.NoError(t, err)
}

func TestCart_UpdateItemQuantity_RecomputesTotal(t *testing.T) {
	c := NewCart(objectid.New())
	item, err := c.AddItem(objectid.New(), 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 20.0, item.TotalAmount)

	// 数量变化后按加购时锁定的单价重算小计
	updated, err := c.UpdateItemQuantity(item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, 50.0, updated.TotalAmount)
}

func TestCart_UpdateItemQuantity_NotFound(t *testing.T) {
	c := NewCart(objectid.New())

	_, err := c.UpdateItemQuantity(objectid.New(), 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart(objectid.New())
	first, _ := c.AddItem(objectid.New(), 1, 5)
	second, _ := c.AddItem(objectid.New(), 2, 5)

	c.RemoveItem(first.ID)
	assert.Len(t, c.Items, 1)
	assert.Equal(t, second.ID, c.Items[0].ID)

	// 宽松语义：重复移除同一条目不报错
	c.RemoveItem(first.ID)
	assert.Len(t, c.Items, 1)
}

func TestCart_TotalAmount(t *testing.T) {
	c := NewCart(objectid.New())
	assert.Equal(t, 0.0, c.TotalAmount())
	assert.True(t, c.IsEmpty())

	c.AddItem(objectid.New(), 2, 10) // 20
	c.AddItem(objectid.New(), 3, 5)  // 15
	assert.Equal(t, 35.0, c.TotalAmount())
	assert.False(t, c.IsEmpty())
}

func TestCart_BookIDs(t *testing.T) {
	c := NewCart(objectid.New())
	b1 := objectid.New()
	b2 := objectid.New()
	c.AddItem(b1, 1, 5)
	c.AddItem(b2, 1, 5)

	assert.Equal(t, []objectid.ID{b1, b2}, c.BookIDs())
}
