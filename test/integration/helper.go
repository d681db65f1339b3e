package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：测试辅助工具
// 这个文件包含集成测试的通用辅助函数，遵循DRY原则（Don't Repeat Yourself）
// 将重复的代码（HTTP请求、JSON解析）封装成可复用的函数

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 书籍响应数据
// 目录和详情接口额外返回解析后的名称字段，其余接口这些字段为空
type BookData struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Genres        []string `json:"genres"`
	Authors       []string `json:"authors"`
	Quantity      int      `json:"quantity"`
	UnitPrice     float64  `json:"unit_price"`
	BookCondition string   `json:"book_condition"`
	SellerID      string   `json:"seller_id"`
	SellerName    string   `json:"seller_name"`
	AuthorNames   []string `json:"author_names"`
	GenreNames    []string `json:"genre_names"`
	Tags          []string `json:"tags"`
	Images        []string `json:"images"`
}

// BookListData 书籍目录分页响应数据
type BookListData struct {
	List       []BookData `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// CartItemData 购物车条目响应数据
type CartItemData struct {
	ID          string  `json:"id"`
	BookID      string  `json:"bookId"`
	BookName    string  `json:"bookName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalAmount float64 `json:"totalAmount"`
}

// CartData 购物车响应数据
type CartData struct {
	ID          string         `json:"id"`
	OwnerID     string         `json:"ownerId"`
	Items       []CartItemData `json:"items"`
	TotalAmount float64        `json:"totalAmount"`
}

// CheckoutData 结账响应数据
type CheckoutData struct {
	ID          string  `json:"id"`
	TotalAmount float64 `json:"totalAmount"`
}

// TransactionData 交易记录响应数据
type TransactionData struct {
	ID                string   `json:"id"`
	BuyerID           string   `json:"buyerId"`
	Books             []string `json:"books"`
	TotalAmount       float64  `json:"totalAmount"`
	TransactionRating int      `json:"transactionRating"`
	ReportText        string   `json:"reportText"`
}

// doJSON 发送带JSON体的请求并解析响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
//
// 教学说明：
// - 使用*testing.T参数，可以在失败时立即终止测试
// - 使用require包进行断言，失败会立即停止（不继续执行）
// - 返回*Response而非error，简化调用方代码
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// PatchJSON 发送PATCH请求并解析JSON响应
func PatchJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPatch, url, data, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// GenerateTestUsername 生成唯一的测试用户名
//
// 教学说明：
// 使用纳秒时间戳确保唯一性，避免测试重复运行时用户名冲突
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano()%1000000000)
}

// RegisterTestUser 注册测试用户并返回Token
//
// 教学说明：
// 这是一个"高阶"辅助函数，封装了注册+登录的完整流程
// 简化了测试代码，让测试更关注业务逻辑而非基础设施
func RegisterTestUser(t *testing.T, prefix string) (username string, token string) {
	// 1. 注册
	username = GenerateTestUsername(prefix)
	registerReq := map[string]string{
		"username": username,
		"email":    username + "@test.com",
		"password": "Test12345",
	}

	registerResp := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	// 2. 登录
	loginReq := map[string]string{
		"username": username,
		"password": "Test12345",
	}

	loginResp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return username, loginData.AccessToken
}

// PublishTestBook 发布测试书籍并返回书籍ID
//
// 教学说明：
// 封装了发书流程，返回bookID供后续测试使用
// 书名带时间戳，避免同一卖家书名冲突
func PublishTestBook(t *testing.T, token string, name string, quantity int, unitPrice float64) string {
	bookReq := map[string]interface{}{
		"name":           fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000000),
		"authors":        []string{"测试作者"},
		"quantity":       quantity,
		"unit_price":     unitPrice,
		"book_condition": "used",
		"tags":           []string{"integration"},
		"description":    "集成测试用书籍",
	}

	bookResp := PostJSON(t, BaseURL+"/books", bookReq, token)
	require.Equal(t, 0, bookResp.Code, "发布书籍失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析书籍响应失败")

	return bookData.ID
}
