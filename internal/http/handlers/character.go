package handlers

import (
	"context"

	"loyalty_app/internal/domain"
	"loyalty_app/internal/service"

	"github.com/gin-gonic/gin"
)

type equipRequest struct {
	ItemType string `json:"item_type" binding:"required"`
}

func (h *Handler) GetCharacter(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	snap, err := h.Character.Get(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "character", snap)
}

func (h *Handler) CompleteGame(c *gin.Context) {
	h.activity(c, h.Character.CompleteGame, "game completed")
}

func (h *Handler) Pet(c *gin.Context) {
	h.activity(c, h.Character.Pet, "petted")
}

func (h *Handler) Feed(c *gin.Context) {
	h.activity(c, h.Character.Feed, "fed")
}

func (h *Handler) activity(c *gin.Context, run func(context.Context, int64) (*service.ActivityResult, error), message string) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	res, err := run(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	if res.Evolved {
		message += ", character evolved"
	} else if res.LevelsGained > 0 {
		message += ", level up"
	}
	respondOK(c, message, res)
}

func (h *Handler) Remaining(c *gin.Context) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	view, err := h.Character.Remaining(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "remaining activities", view)
}

func (h *Handler) Equip(c *gin.Context) {
	h.setEquipped(c, true)
}

func (h *Handler) Unequip(c *gin.Context) {
	h.setEquipped(c, false)
}

func (h *Handler) setEquipped(c *gin.Context, equip bool) {
	accountID, ok := getAccountID(c)
	if !ok {
		return
	}
	var req equipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "item_type is required")
		return
	}

	snap, err := h.Character.Equip(c.Request.Context(), accountID, domain.ItemKind(req.ItemType), equip)
	if err != nil {
		respondError(c, err)
		return
	}
	msg := "equipped"
	if !equip {
		msg = "unequipped"
	}
	respondOK(c, msg, snap)
}
