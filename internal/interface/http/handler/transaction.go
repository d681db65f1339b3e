package handler

import (
	"github.com/gin-gonic/gin"

	apptxn "github.com/xiebiao/bookmarket/internal/application/transaction"
	"github.com/xiebiao/bookmarket/internal/interface/http/dto"
	"github.com/xiebiao/bookmarket/internal/interface/http/middleware"
	"github.com/xiebiao/bookmarket/pkg/response"
)

// TransactionHandler 交易HTTP处理器
type TransactionHandler struct {
	checkoutUseCase *apptxn.CheckoutUseCase
	historyUseCase  *apptxn.HistoryUseCase
	rateUseCase     *apptxn.RateUseCase
	reportUseCase   *apptxn.ReportUseCase
	buyUseCase      *apptxn.BuyUseCase
}

// NewTransactionHandler 创建交易处理器
func NewTransactionHandler(
	checkoutUseCase *apptxn.CheckoutUseCase,
	historyUseCase *apptxn.HistoryUseCase,
	rateUseCase *apptxn.RateUseCase,
	reportUseCase *apptxn.ReportUseCase,
	buyUseCase *apptxn.BuyUseCase,
) *TransactionHandler {
	return &TransactionHandler{
		checkoutUseCase: checkoutUseCase,
		historyUseCase:  historyUseCase,
		rateUseCase:     rateUseCase,
		reportUseCase:   reportUseCase,
		buyUseCase:      buyUseCase,
	}
}

// Checkout 购物车结算
// @Summary      结算
// @Description  整车结算：校验并扣减每本书的库存、生成交易、删除购物车（一个事务里），使用悲观锁防止超卖
// @Tags         交易
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest false "支付与配送信息（可选）"
// @Success      200 {object} response.Response{data=apptxn.CheckoutResponse} "结算成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购物车为空"
// @Router       /api/v1/transactions/checkout [post]
//
// 教学说明：防超卖的核心逻辑
// 1. 开启数据库事务
// 2. 对每个条目SELECT FOR UPDATE锁定库存行并校验余量
// 3. 写入交易记录（书籍ID快照+总金额）
// 4. 逐条扣减库存
// 5. 删除购物车
// 6. 提交事务；任何一步失败全部回滚，购物车原样保留
func (h *TransactionHandler) Checkout(c *gin.Context) {
	// 请求体可选：旧客户端不传body
	var req dto.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
			return
		}
	}

	buyerID := middleware.MustGetUserID(c)

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apptxn.CheckoutRequest{
		BuyerID:         buyerID,
		PaymentMethod:   req.PaymentMethod,
		DeliveryType:    req.DeliveryType,
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// History 交易历史
// @Summary      交易历史
// @Description  当前用户的全部交易，书籍ID快照解析成概要（已下架的书只保留ID）
// @Tags         交易
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]apptxn.TransactionResponse}
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/transactions [get]
func (h *TransactionHandler) History(c *gin.Context) {
	buyerID := middleware.MustGetUserID(c)

	result, err := h.historyUseCase.Execute(c.Request.Context(), buyerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Rate 交易评分
// @Summary      交易评分
// @Description  买家对自己的交易打分（1-5，只能评一次）
// @Tags         交易
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "交易ID"
// @Param        request body dto.RateTransactionRequest true "评分"
// @Success      200 {object} response.Response{data=apptxn.TransactionResponse}
// @Failure      400 {object} response.Response "评分越界或已评过"
// @Failure      404 {object} response.Response "交易不存在或不属于当前用户"
// @Router       /api/v1/transactions/{id}/rate [post]
func (h *TransactionHandler) Rate(c *gin.Context) {
	var req dto.RateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	buyerID := middleware.MustGetUserID(c)

	result, err := h.rateUseCase.Execute(c.Request.Context(), apptxn.RateRequest{
		BuyerID:       buyerID,
		TransactionID: c.Param("id"),
		Rating:        req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Report 提交交易报告
// @Summary      交易报告
// @Description  买家对自己的交易提交问题报告（只能提交一次）
// @Tags         交易
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "交易ID"
// @Param        request body dto.ReportTransactionRequest true "报告内容"
// @Success      200 {object} response.Response{data=apptxn.TransactionResponse}
// @Failure      400 {object} response.Response "已提交过报告"
// @Failure      404 {object} response.Response "交易不存在或不属于当前用户"
// @Router       /api/v1/transactions/{id}/report [post]
func (h *TransactionHandler) Report(c *gin.Context) {
	var req dto.ReportTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	buyerID := middleware.MustGetUserID(c)

	result, err := h.reportUseCase.Execute(c.Request.Context(), apptxn.ReportRequest{
		BuyerID:       buyerID,
		TransactionID: c.Param("id"),
		Text:          req.Text,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Buy 直接购买（旧版客户端接口）
// @Summary      直接购买
// @Description  不经购物车直接买一本书；数量和单价可随单上报，不传按数量1、当前标价成交；售罄与不存在统一按"书不存在"返回
// @Tags         交易
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path string true "书籍ID"
// @Param        request body dto.BuyRequest false "数量与单价（可选）"
// @Success      200 {object} response.Response{data=apptxn.TransactionResponse}
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "书籍不存在或已售罄"
// @Router       /api/v1/buy/{bookId} [post]
func (h *TransactionHandler) Buy(c *gin.Context) {
	// 请求体可选：旧客户端不传body
	var req dto.BuyRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
			return
		}
	}

	buyerID := middleware.MustGetUserID(c)

	result, err := h.buyUseCase.Execute(c.Request.Context(), apptxn.BuyRequest{
		BuyerID:   buyerID,
		BookID:    c.Param("bookId"),
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
