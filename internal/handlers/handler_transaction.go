package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
	"github.com/hotelnest/shift_ledger_app/internal/middleware"
)

// transactionHandler handles HTTP requests related to shift transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(transactionService portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{transactionService: transactionService}
}

// createTransaction godoc
// @Summary Record a shift transaction
// @Description Records a new pending transaction for a branch
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusCreated, resp)
}

// listTransactions godoc
// @Summary List shift transactions
// @Description Retrieves a filtered, paginated listing of transactions
// @Tags transactions
// @Produce json
// @Param branch query string false "Branch code"
// @Param status query string false "PENDING, CLOSED or DELETED"
// @Param transactionType query string false "Transaction type"
// @Param search query string false "Full-text or amount search"
// @Param createdDate query string false "YYYY-MM-DD"
// @Param sortBy query string false "Sort key"
// @Param limit query int false "Page size"
// @Param page query int false "Page number (offset mode)"
// @Param nextToken query string false "Keyset cursor (default ordering only)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get one shift transaction
// @Tags transactions
// @Produce json
// @Param transactionID path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "transactionID")
	if !ok {
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusOK, resp)
}

// updateTransaction godoc
// @Summary Edit a pending transaction
// @Description Updates the editable fields of a pending transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path int true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 409 {object} map[string]string "Transaction is not pending"
// @Router /transactions/{transactionID} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "transactionID")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := dto.ToTransactionResponse(txn)
	c.JSON(http.StatusOK, resp)
}

// deleteTransaction godoc
// @Summary Soft-delete a transaction
// @Description Marks one transaction deleted, repairing any settlement membership
// @Tags transactions
// @Produce json
// @Param transactionID path int true "Transaction ID"
// @Success 204 "Deleted"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "transactionID")
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// batchDeleteTransactions godoc
// @Summary Soft-delete several transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.BatchDeleteRequest true "Transaction IDs"
// @Success 200 {object} dto.BatchDeleteResponse
// @Router /transactions/batch-delete [post]
func (h *transactionHandler) batchDeleteTransactions(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	resp, err := h.transactionService.BatchDeleteTransactions(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// purgeTransactions godoc
// @Summary Permanently erase soft-deleted transactions
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body dto.BatchDeleteRequest true "Transaction IDs"
// @Success 200 {object} dto.BatchDeleteResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /transactions/purge [post]
func (h *transactionHandler) purgeTransactions(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.BatchDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingErrorMessage(err)})
		return
	}

	resp, err := h.transactionService.PurgeTransactions(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// registerTransactionRoutes registers transaction specific routes
func registerTransactionRoutes(group *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(transactionService)

	transactions := group.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:transactionID", h.getTransaction)
		transactions.PUT("/:transactionID", h.updateTransaction)
		transactions.DELETE("/:transactionID", h.deleteTransaction)
		transactions.POST("/batch-delete", h.batchDeleteTransactions)
		transactions.POST("/purge", h.purgeTransactions)
	}
}
