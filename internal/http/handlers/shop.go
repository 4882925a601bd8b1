package handlers

import (
	"strings"

	"loyalty_app/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ShopItems(c *gin.Context) {
	category := domain.ItemCategory(strings.ToUpper(c.Query("category")))
	items, err := h.Shop.Items(category)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "shop items", items)
}

func (h *Handler) Purchase(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	kind := domain.ItemKind(strings.ToUpper(c.Param("itemType")))
	receipt, err := h.Shop.Purchase(c.Request.Context(), accountID, kind)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, receipt.Message, receipt)
}

func (h *Handler) GetInventory(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	view, err := h.Inventory.Get(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "inventory", view)
}
