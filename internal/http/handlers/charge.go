package handlers

import (
	"strconv"
	"strings"

	"loyalty_app/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ChargeTypes(c *gin.Context) {
	respondOK(c, "charge types", h.Charge.Types())
}

func (h *Handler) ChargePoints(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	chargeType := domain.ChargeType(strings.ToUpper(c.Param("chargeType")))
	receipt, err := h.Charge.Charge(c.Request.Context(), accountID, chargeType)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, receipt.Message, receipt)
}

// History returns the point ledger, optionally filtered by ?type=.
func (h *Handler) History(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	txs, err := h.Charge.Ledger(c.Request.Context(), accountID, c.Query("type"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "history", txs)
}

// AuditHistory returns the account's audit trail, optionally filtered by ?action=.
func (h *Handler) AuditHistory(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	logs, err := h.Audit.AccountLogs(c.Request.Context(), accountID, c.Query("action"), 100)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "audit log", logs)
}
