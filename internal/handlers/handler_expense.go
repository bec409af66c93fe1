package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests for expense postings.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expenses.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.postExpense)
		expenses.GET("", h.listExpenses)
		expenses.GET("/:expenseID", h.getExpense)
		expenses.PUT("/:expenseID", h.updateExpense)
		expenses.DELETE("/:expenseID", h.deleteExpense)
	}
}

// postExpense godoc
// @Summary Post an expense
// @Description Records an expense and debits capital for each currency amount. Nothing is written if any currency lacks capital or funds.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.APIResponse{data=dto.ExpenseResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input, missing capital, or not enough capital"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Failed to post expense"
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) postExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to post expense",
		slog.String("category_id", req.CategoryID),
		slog.Int("lines", len(req.Amounts)))

	expense, err := h.expenseService.PostExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to post expense")
		return
	}

	c.JSON(http.StatusCreated, dto.Success("Expense posted", dto.ToExpenseResponse(expense)))
}

// listExpenses godoc
// @Summary List expenses
// @Description Lists expenses, most recent date first
// @Tags expenses
// @Produce  json
// @Param   limit  query int false "Page size" default(15)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]dto.ExpenseResponse}
// @Failure 400 {object} dto.APIResponse "Invalid query"
// @Failure 500 {object} dto.APIResponse "Failed to list expenses"
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ListExpensesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list expenses")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Expenses", dto.ToListExpenseResponse(expenses)))
}

// getExpense godoc
// @Summary Get an expense
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.APIResponse{data=dto.ExpenseResponse}
// @Failure 404 {object} dto.APIResponse "Expense not found"
// @Failure 500 {object} dto.APIResponse "Failed to get expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expense, err := h.expenseService.GetExpense(c.Request.Context(), c.Param("expenseID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get expense")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Expense", dto.ToExpenseResponse(expense)))
}

// updateExpense godoc
// @Summary Update an expense
// @Description Refunds the expense's current amounts, then debits the new ones. Amounts of zero are dropped.
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Param   expense   body dto.UpdateExpenseRequest true "Expense details"
// @Success 200 {object} dto.APIResponse{data=dto.ExpenseResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input, missing capital, or not enough capital"
// @Failure 404 {object} dto.APIResponse "Expense not found"
// @Failure 500 {object} dto.APIResponse "Failed to update expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to update expense",
		slog.String("expense_id", expenseID),
		slog.Int("lines", len(req.Amounts)))

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), expenseID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Expense updated", dto.ToExpenseResponse(expense)))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Refunds every amount of the expense to capital and removes it
// @Tags expenses
// @Produce  json
// @Param   expenseID path string true "Expense ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Expense not found"
// @Failure 500 {object} dto.APIResponse "Failed to delete expense"
// @Security BearerAuth
// @Router /expenses/{expenseID} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete expense")
		return
	}

	logger.Info("Expense deleted", slog.String("expense_id", expenseID))
	c.JSON(http.StatusOK, dto.Success("Expense deleted", nil))
}
