package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appreturns "github.com/posadmin/backend/internal/application/returns"
	"github.com/posadmin/backend/internal/interfaces/http/dto"
)

// ReturnDraftHandler serves the sales return form sessions. Every
// mutation responds with the full draft including its validation state,
// so the form can re-render after each discrete event.
type ReturnDraftHandler struct {
	BaseHandler
	service *appreturns.DraftService
}

// NewReturnDraftHandler creates a return draft handler
func NewReturnDraftHandler(service *appreturns.DraftService) *ReturnDraftHandler {
	return &ReturnDraftHandler{service: service}
}

// RegisterRoutes registers return draft routes
func (h *ReturnDraftHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/trade/return-drafts")
	{
		drafts.POST("", h.Open)
		drafts.GET("/:id", h.Get)
		drafts.DELETE("/:id", h.Cancel)
		drafts.PUT("/:id/fields/:name", h.SetField)
		drafts.PUT("/:id/sale-selection", h.SelectSale)
		drafts.POST("/:id/items", h.AddItem)
		drafts.PUT("/:id/items/:index", h.UpdateItem)
		drafts.DELETE("/:id/items/:index", h.RemoveItem)
		drafts.POST("/:id/submit", h.Submit)
	}
}

func (h *ReturnDraftHandler) draftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid draft id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *ReturnDraftHandler) itemIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		h.BadRequest(c, "Invalid item index")
		return 0, false
	}
	return index, true
}

// Open starts a new return form session
// POST /api/v1/trade/return-drafts
func (h *ReturnDraftHandler) Open(c *gin.Context) {
	draft, err := h.service.Open(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, draft)
}

// Get returns the current draft state
// GET /api/v1/trade/return-drafts/:id
func (h *ReturnDraftHandler) Get(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	draft, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// Cancel discards the draft
// DELETE /api/v1/trade/return-drafts/:id
func (h *ReturnDraftHandler) Cancel(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

type setFieldRequest struct {
	Value string `json:"value"`
}

// SetField overwrites one header field
// PUT /api/v1/trade/return-drafts/:id/fields/:name
func (h *ReturnDraftHandler) SetField(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req setFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.service.SetField(c.Request.Context(), id, c.Param("name"), req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

type selectSaleRequest struct {
	SaleID string `json:"saleId" binding:"required"`
}

// SelectSale records the original sale and derives the default refund
// PUT /api/v1/trade/return-drafts/:id/sale-selection
func (h *ReturnDraftHandler) SelectSale(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var req selectSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.service.SelectSale(c.Request.Context(), id, req.SaleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// AddItem appends a line item. An empty body appends the default line.
// POST /api/v1/trade/return-drafts/:id/items
func (h *ReturnDraftHandler) AddItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	var input *appreturns.ItemInput
	if c.Request.ContentLength > 0 {
		input = &appreturns.ItemInput{}
		if err := c.ShouldBindJSON(input); err != nil {
			h.Error(c, 400, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
			return
		}
	}

	draft, err := h.service.AddItem(c.Request.Context(), id, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// UpdateItem overwrites the line item at the given index
// PUT /api/v1/trade/return-drafts/:id/items/:index
func (h *ReturnDraftHandler) UpdateItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.itemIndex(c)
	if !ok {
		return
	}

	var input appreturns.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.Error(c, 400, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.service.UpdateItem(c.Request.Context(), id, index, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// RemoveItem removes the line item at the given index
// DELETE /api/v1/trade/return-drafts/:id/items/:index
func (h *ReturnDraftHandler) RemoveItem(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}
	index, ok := h.itemIndex(c)
	if !ok {
		return
	}

	draft, err := h.service.RemoveItem(c.Request.Context(), id, index)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, draft)
}

// Submit validates the draft and pushes it upstream
// POST /api/v1/trade/return-drafts/:id/submit
func (h *ReturnDraftHandler) Submit(c *gin.Context) {
	id, ok := h.draftID(c)
	if !ok {
		return
	}

	result, err := h.service.Submit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
