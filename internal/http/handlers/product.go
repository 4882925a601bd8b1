package handlers

import (
	"strconv"
	"strings"

	"loyalty_app/internal/domain"

	"github.com/gin-gonic/gin"
)

type exchangeRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=1000"`
}

type donateRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) ListProducts(c *gin.Context) {
	kind := domain.TransactionKind(strings.ToUpper(c.Query("kind")))
	products, err := h.Reward.ListProducts(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "products", products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.Reward.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "product", p)
}

func (h *Handler) ExchangeProduct(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req exchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidAmount)
		return
	}

	receipt, err := h.Reward.Exchange(c.Request.Context(), accountID, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, receipt.Message, receipt)
}

func (h *Handler) Donate(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req donateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.ErrInvalidAmount)
		return
	}

	receipt, err := h.Reward.Donate(c.Request.Context(), accountID, productID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, receipt.Message, receipt)
}

func (h *Handler) MyDonations(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	list, err := h.Reward.DonationHistory(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "donations", list)
}

func (h *Handler) MyExchanges(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	list, err := h.Reward.ExchangeHistory(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "exchanges", list)
}

func (h *Handler) ToggleAccepted(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	exchangeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.Reward.ToggleAccepted(c.Request.Context(), accountID, exchangeID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "exchange updated", e)
}

func (h *Handler) CompleteWatching(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	receipt, err := h.Reward.CompleteWatching(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, receipt.Message, receipt)
}

func (h *Handler) WatchStatus(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	watched, err := h.Reward.WatchStatus(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "watch status", gin.H{"watched": watched})
}
