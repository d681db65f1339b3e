package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：书籍模块集成测试
//
// 测试场景覆盖：
// 1. 发布书籍（需要认证，作者自动登记）
// 2. 目录分页（每页5条，页码越界报错）
// 3. 排序、赠书、详情、高级搜索（公开接口）
// 4. 卖家修改库存与下架

// TestBookPublish 测试发布书籍功能
func TestBookPublish(t *testing.T) {
	_, token := RegisterTestUser(t, "book_seller")

	t.Run("正常发布书籍", func(t *testing.T) {
		name := fmt.Sprintf("Go语言实战_%s", GenerateTestUsername("bk"))
		bookReq := map[string]interface{}{
			"name":           name,
			"authors":        []string{"威廉·肯尼迪"},
			"quantity":       3,
			"unit_price":     45.5,
			"book_condition": "used",
			"tags":           []string{"Programming", "GOLANG"},
			"description":    "深入理解Go语言",
		}

		resp := PostJSON(t, BaseURL+"/books", bookReq, token)

		assert.Equal(t, 0, resp.Code, "发布应该成功: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.Len(t, data.ID, 24, "书籍ID应该是24位十六进制")
		assert.Equal(t, name, data.Name, "书名应该一致")
		assert.Equal(t, 3, data.Quantity, "库存应该一致")
		assert.Len(t, data.Authors, 1, "作者应该被自动登记")
		// 标签入库前统一转小写
		assert.Equal(t, []string{"programming", "golang"}, data.Tags, "标签应该转成小写")

		t.Logf("✓ 发布成功，书籍ID: %s", data.ID)
	})

	t.Run("未登录不能发布", func(t *testing.T) {
		bookReq := map[string]interface{}{
			"name":     "不该出现的书",
			"authors":  []string{"无名氏"},
			"quantity": 1,
		}

		resp := PostJSON(t, BaseURL+"/books", bookReq, "")

		assert.NotEqual(t, 0, resp.Code, "未登录发布应该失败")
	})

	t.Run("同卖家重复书名应失败", func(t *testing.T) {
		_, sellerToken := RegisterTestUser(t, "dup_seller")
		name := fmt.Sprintf("重复书名_%s", GenerateTestUsername("bk"))
		bookReq := map[string]interface{}{
			"name":     name,
			"authors":  []string{"某作者"},
			"quantity": 1,
		}

		resp1 := PostJSON(t, BaseURL+"/books", bookReq, sellerToken)
		require.Equal(t, 0, resp1.Code, "第一次发布应该成功")

		resp2 := PostJSON(t, BaseURL+"/books", bookReq, sellerToken)
		assert.NotEqual(t, 0, resp2.Code, "同卖家重复书名应该失败")
		assert.Contains(t, resp2.Message, "already exists", "错误信息应该说明书名冲突")
	})
}

// TestBookCatalog 测试目录分页与排序
func TestBookCatalog(t *testing.T) {
	// 准备数据：一个卖家发6本书，保证至少2页
	_, token := RegisterTestUser(t, "catalog_seller")
	for i := 0; i < 6; i++ {
		PublishTestBook(t, token, fmt.Sprintf("目录书_%d", i), 2, float64(10+i))
	}

	t.Run("第一页返回5条", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page=1", "")
		require.Equal(t, 0, resp.Code, "查询第一页应该成功: %s", resp.Message)

		var data BookListData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析列表响应失败")

		assert.Len(t, data.List, 5, "每页固定5条")
		assert.Equal(t, 5, data.PageSize)
		assert.GreaterOrEqual(t, data.Total, int64(6), "总数应该至少6条")

		// 目录条目带解析后的名称
		for _, item := range data.List {
			assert.NotEmpty(t, item.SellerName, "目录条目应该带卖家用户名")
			assert.NotEmpty(t, item.AuthorNames, "目录条目应该带作者名")
		}
	})

	t.Run("页码越界应报Invalid page number", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page=99999", "")

		assert.NotEqual(t, 0, resp.Code, "越界页码应该失败")
		assert.Contains(t, resp.Message, "Invalid page number")
	})

	t.Run("页码为0应报Invalid page number", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?page=0", "")

		assert.NotEqual(t, 0, resp.Code)
		assert.Contains(t, resp.Message, "Invalid page number")
	})

	t.Run("按价格升序排序返回前10条", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/sort?by=unitPrice&order=ascending", "")
		require.Equal(t, 0, resp.Code, "排序查询应该成功: %s", resp.Message)

		var list []BookData
		err := json.Unmarshal(resp.Data, &list)
		require.NoError(t, err, "解析排序响应失败")

		assert.LessOrEqual(t, len(list), 10, "排序接口最多返回10条")
		for i := 1; i < len(list); i++ {
			assert.LessOrEqual(t, list[i-1].UnitPrice, list[i].UnitPrice, "价格应该升序")
		}
	})

	t.Run("非法排序字段应失败", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/sort?by=isbn", "")

		assert.NotEqual(t, 0, resp.Code, "非法字段应该失败")
	})
}

// TestBookGiveaways 测试免费赠书列表
func TestBookGiveaways(t *testing.T) {
	_, token := RegisterTestUser(t, "giveaway_seller")
	PublishTestBook(t, token, "免费赠书", 1, 0)

	resp := GetJSON(t, BaseURL+"/books/giveaways", "")
	require.Equal(t, 0, resp.Code, "赠书查询应该成功: %s", resp.Message)

	var list []BookData
	err := json.Unmarshal(resp.Data, &list)
	require.NoError(t, err, "解析赠书响应失败")

	assert.LessOrEqual(t, len(list), 10, "赠书列表最多10条")
	for _, b := range list {
		assert.Zero(t, b.UnitPrice, "赠书单价必须为0")
	}
}

// TestBookDetail 测试详情与非法ID
func TestBookDetail(t *testing.T) {
	sellerName, token := RegisterTestUser(t, "detail_seller")
	bookID := PublishTestBook(t, token, "详情书", 2, 20)

	t.Run("正常查询详情", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/"+bookID, "")
		require.Equal(t, 0, resp.Code, "详情查询应该成功: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, bookID, data.ID)
		assert.Equal(t, sellerName, data.SellerName, "详情应该带卖家用户名")
	})

	t.Run("非法ID应报Invalid ID", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/not-a-hex-id", "")

		assert.NotEqual(t, 0, resp.Code)
		assert.Contains(t, resp.Message, "Invalid ID")
	})
}

// TestBookStockAndDelete 测试修改库存与下架
func TestBookStockAndDelete(t *testing.T) {
	_, token := RegisterTestUser(t, "stock_seller")
	bookID := PublishTestBook(t, token, "库存书", 2, 30)

	t.Run("修改库存与价格", func(t *testing.T) {
		updateReq := map[string]interface{}{
			"quantity":   7,
			"unit_price": 25.5,
		}

		resp := PatchJSON(t, BaseURL+"/books/"+bookID, updateReq, token)
		require.Equal(t, 0, resp.Code, "修改应该成功: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, 7, data.Quantity)
		assert.Equal(t, 25.5, data.UnitPrice)
	})

	t.Run("别人不能改我的书", func(t *testing.T) {
		_, otherToken := RegisterTestUser(t, "other_user")
		updateReq := map[string]interface{}{"quantity": 0}

		resp := PatchJSON(t, BaseURL+"/books/"+bookID, updateReq, otherToken)
		assert.NotEqual(t, 0, resp.Code, "非卖家修改应该失败")
	})

	t.Run("下架返回被删书籍快照", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/books/"+bookID, token)
		require.Equal(t, 0, resp.Code, "下架应该成功: %s", resp.Message)

		var data BookData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.Equal(t, bookID, data.ID, "快照应该是被删的那本书")

		// 再查详情应该404
		detailResp := GetJSON(t, BaseURL+"/books/"+bookID, "")
		assert.NotEqual(t, 0, detailResp.Code, "下架后详情查询应该失败")
	})
}

// TestAdvancedSearch 测试高级搜索
func TestAdvancedSearch(t *testing.T) {
	_, token := RegisterTestUser(t, "search_seller")
	bookID := PublishTestBook(t, token, "搜索目标书", 2, 50)

	t.Run("按标签搜索", func(t *testing.T) {
		searchReq := map[string]interface{}{
			// 大写标签也能命中（匹配前转小写）
			"tags":      []string{"INTEGRATION"},
			"min_price": 1,
			"max_price": 100,
		}

		resp := PostJSON(t, BaseURL+"/search", searchReq, "")
		require.Equal(t, 0, resp.Code, "搜索应该成功: %s", resp.Message)

		var list []BookData
		err := json.Unmarshal(resp.Data, &list)
		require.NoError(t, err)

		found := false
		for _, b := range list {
			if b.ID == bookID {
				found = true
			}
		}
		assert.True(t, found, "刚发布的书应该能搜到")
	})

	t.Run("价格区间外搜不到", func(t *testing.T) {
		searchReq := map[string]interface{}{
			"tags":      []string{"integration"},
			"min_price": 9000,
			"max_price": 9999,
		}

		resp := PostJSON(t, BaseURL+"/search", searchReq, "")
		require.Equal(t, 0, resp.Code)

		var list []BookData
		err := json.Unmarshal(resp.Data, &list)
		require.NoError(t, err)

		for _, b := range list {
			assert.NotEqual(t, bookID, b.ID, "价格区间外不应该搜到这本书")
		}
	})
}
