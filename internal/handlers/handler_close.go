package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
	"github.com/hotelnest/shift_ledger_app/internal/middleware"
)

// closeHandler handles HTTP requests related to shift close settlements.
type closeHandler struct {
	closeService portssvc.CloseSvcFacade
}

// newCloseHandler creates a new closeHandler.
func newCloseHandler(closeService portssvc.CloseSvcFacade) *closeHandler {
	return &closeHandler{closeService: closeService}
}

// closeBatch godoc
// @Summary Close a branch's pending transactions
// @Description Settles every pending transaction of a branch into one close log
// @Tags closes
// @Accept json
// @Produce json
// @Param close body dto.CloseBatchRequest true "Close details"
// @Success 201 {object} dto.CloseLogResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /closes [post]
func (h *closeHandler) closeBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CloseBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closeBatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	log, err := h.closeService.CloseBatch(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.ToCloseLogResponse(log)
	c.JSON(http.StatusCreated, resp)
}

// getCloseDetails godoc
// @Summary Get a close log with its member transactions
// @Tags closes
// @Produce json
// @Param closeID path int true "Close log ID"
// @Success 200 {object} dto.CloseDetailsResponse
// @Failure 404 {object} map[string]string "Close log not found"
// @Router /closes/{closeID} [get]
func (h *closeHandler) getCloseDetails(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "closeID")
	if !ok {
		return
	}

	details, err := h.closeService.GetCloseDetails(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// undoClose godoc
// @Summary Undo a close
// @Description Reverts every member transaction to pending and removes the close log
// @Tags closes
// @Produce json
// @Param closeID path int true "Close log ID"
// @Success 204 "Close undone"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Close log not found"
// @Router /closes/{closeID}/undo [post]
func (h *closeHandler) undoClose(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "closeID")
	if !ok {
		return
	}

	if err := h.closeService.UndoClose(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// undoMember godoc
// @Summary Undo one member of a close
// @Description Reverts a single transaction to pending and recomputes the close log
// @Tags closes
// @Produce json
// @Param closeID path int true "Close log ID"
// @Param transactionID path int true "Transaction ID"
// @Success 200 {object} dto.CloseLogResponse "Updated close log"
// @Success 204 "Close log removed because it became empty"
// @Failure 400 {object} map[string]string "Transaction is not a member"
// @Router /closes/{closeID}/transactions/{transactionID}/undo [post]
func (h *closeHandler) undoMember(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	closeID, ok := pathID(c, "closeID")
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "transactionID")
	if !ok {
		return
	}

	log, err := h.closeService.UndoMember(c.Request.Context(), actor, closeID, transactionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if log == nil {
		c.Status(http.StatusNoContent)
		return
	}
	resp := dto.ToCloseLogResponse(log)
	c.JSON(http.StatusOK, resp)
}

// purgeMember godoc
// @Summary Permanently remove one member of a close
// @Description Erases a single transaction and recomputes the close log
// @Tags closes
// @Produce json
// @Param closeID path int true "Close log ID"
// @Param transactionID path int true "Transaction ID"
// @Success 200 {object} dto.CloseLogResponse "Updated close log"
// @Success 204 "Close log removed because it became empty"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /closes/{closeID}/transactions/{transactionID} [delete]
func (h *closeHandler) purgeMember(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	closeID, ok := pathID(c, "closeID")
	if !ok {
		return
	}
	transactionID, ok := pathID(c, "transactionID")
	if !ok {
		return
	}

	log, err := h.closeService.PurgeMember(c.Request.Context(), actor, closeID, transactionID)
	if err != nil {
		respondError(c, err)
		return
	}
	if log == nil {
		c.Status(http.StatusNoContent)
		return
	}
	resp := dto.ToCloseLogResponse(log)
	c.JSON(http.StatusOK, resp)
}

// deleteClose godoc
// @Summary Permanently erase a close log and its members
// @Tags closes
// @Produce json
// @Param closeID path int true "Close log ID"
// @Success 204 "Close log erased"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Close log not found"
// @Router /closes/{closeID} [delete]
func (h *closeHandler) deleteClose(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "closeID")
	if !ok {
		return
	}

	if err := h.closeService.DeleteClose(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// registerCloseRoutes registers close settlement specific routes
func registerCloseRoutes(group *gin.RouterGroup, closeService portssvc.CloseSvcFacade) {
	h := newCloseHandler(closeService)

	closes := group.Group("/closes")
	{
		closes.POST("", h.closeBatch)
		closes.GET("/:closeID", h.getCloseDetails)
		closes.DELETE("/:closeID", h.deleteClose)
		closes.POST("/:closeID/undo", h.undoClose)
		closes.POST("/:closeID/transactions/:transactionID/undo", h.undoMember)
		closes.DELETE("/:closeID/transactions/:transactionID", h.purgeMember)
	}
}
