package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// capitalHandler handles HTTP requests for capital balances.
type capitalHandler struct {
	capitalService portssvc.CapitalSvcFacade
}

func newCapitalHandler(cs portssvc.CapitalSvcFacade) *capitalHandler {
	return &capitalHandler{capitalService: cs}
}

// registerCapitalRoutes registers routes related to capital balances.
func registerCapitalRoutes(rg *gin.RouterGroup, capitalService portssvc.CapitalSvcFacade) {
	h := newCapitalHandler(capitalService)

	capitals := rg.Group("/capitals")
	{
		capitals.POST("", h.createCapital)
		capitals.GET("", h.listCapitals)
		capitals.GET("/:currency/balance", h.getBalance)
		capitals.GET("/:currency/reconcile", h.reconcile)
		capitals.PUT("/:currency", h.adjustCapital)
		capitals.DELETE("/:currency", h.deleteCapital)
	}
}

// createCapital godoc
// @Summary Open a capital balance
// @Description Creates the capital balance of a currency with remaining = initial
// @Tags capitals
// @Accept  json
// @Produce  json
// @Param   capital body dto.CreateCapitalRequest true "Capital details"
// @Success 201 {object} dto.APIResponse{data=dto.CapitalResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 409 {object} dto.APIResponse "Capital already exists for the currency"
// @Failure 500 {object} dto.APIResponse "Failed to create capital"
// @Security BearerAuth
// @Router /capitals [post]
func (h *capitalHandler) createCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	capital, err := h.capitalService.CreateCapital(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create capital")
		return
	}

	formatted := h.capitalService.FormatAmount(c.Request.Context(), capital.RemainingAmount, capital.CurrencyCode)
	c.JSON(http.StatusCreated, dto.Success("Capital created", dto.ToCapitalResponse(capital, formatted)))
}

// listCapitals godoc
// @Summary List capital balances
// @Tags capitals
// @Produce  json
// @Success 200 {object} dto.APIResponse{data=[]dto.CapitalResponse}
// @Failure 500 {object} dto.APIResponse "Failed to list capitals"
// @Security BearerAuth
// @Router /capitals [get]
func (h *capitalHandler) listCapitals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	capitals, err := h.capitalService.ListCapitals(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list capitals")
		return
	}

	res := make([]dto.CapitalResponse, len(capitals))
	for i := range capitals {
		formatted := h.capitalService.FormatAmount(c.Request.Context(), capitals[i].RemainingAmount, capitals[i].CurrencyCode)
		res[i] = dto.ToCapitalResponse(&capitals[i], formatted)
	}
	c.JSON(http.StatusOK, dto.Success("Capitals", res))
}

// getBalance godoc
// @Summary Get the remaining capital of a currency
// @Tags capitals
// @Produce  json
// @Param   currency path string true "Currency code"
// @Success 200 {object} dto.APIResponse{data=dto.BalanceResponse}
// @Failure 400 {object} dto.APIResponse "Invalid currency code"
// @Failure 404 {object} dto.APIResponse "No capital for the currency"
// @Failure 500 {object} dto.APIResponse "Failed to get balance"
// @Security BearerAuth
// @Router /capitals/{currency}/balance [get]
func (h *capitalHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := strings.ToUpper(c.Param("currency"))

	balance, err := h.capitalService.GetBalance(c.Request.Context(), code)
	if err != nil {
		respondError(c, logger, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Capital balance", dto.BalanceResponse{
		CurrencyCode:       code,
		RemainingAmount:    balance,
		FormattedRemaining: h.capitalService.FormatAmount(c.Request.Context(), balance, code),
	}))
}

// reconcile godoc
// @Summary Reconcile a capital balance
// @Description Compares the remaining balance with the expense lines posted against the currency
// @Tags capitals
// @Produce  json
// @Param   currency path string true "Currency code"
// @Success 200 {object} dto.APIResponse{data=domain.CapitalReconciliation}
// @Failure 404 {object} dto.APIResponse "No capital for the currency"
// @Failure 500 {object} dto.APIResponse "Failed to reconcile capital"
// @Security BearerAuth
// @Router /capitals/{currency}/reconcile [get]
func (h *capitalHandler) reconcile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	result, err := h.capitalService.Reconcile(c.Request.Context(), c.Param("currency"))
	if err != nil {
		respondError(c, logger, err, "Failed to reconcile capital")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Capital reconciliation", result))
}

// adjustCapital godoc
// @Summary Adjust a capital balance
// @Description Sets a new initial amount; the amount already spent is carried over
// @Tags capitals
// @Accept  json
// @Produce  json
// @Param   currency path string true "Currency code"
// @Param   capital  body dto.AdjustCapitalRequest true "New initial amount"
// @Success 200 {object} dto.APIResponse{data=dto.CapitalResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 404 {object} dto.APIResponse "No capital for the currency"
// @Failure 500 {object} dto.APIResponse "Failed to adjust capital"
// @Security BearerAuth
// @Router /capitals/{currency} [put]
func (h *capitalHandler) adjustCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AdjustCapitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to adjust capital",
		slog.String("currency_code", c.Param("currency")),
		slog.String("initial_amount", req.InitialAmount.String()))

	capital, err := h.capitalService.AdjustCapital(c.Request.Context(), c.Param("currency"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to adjust capital")
		return
	}

	formatted := h.capitalService.FormatAmount(c.Request.Context(), capital.RemainingAmount, capital.CurrencyCode)
	c.JSON(http.StatusOK, dto.Success("Capital adjusted", dto.ToCapitalResponse(capital, formatted)))
}

// deleteCapital godoc
// @Summary Delete a capital balance
// @Tags capitals
// @Produce  json
// @Param   currency path string true "Currency code"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "No capital for the currency"
// @Failure 500 {object} dto.APIResponse "Failed to delete capital"
// @Security BearerAuth
// @Router /capitals/{currency} [delete]
func (h *capitalHandler) deleteCapital(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.capitalService.DeleteCapital(c.Request.Context(), c.Param("currency")); err != nil {
		respondError(c, logger, err, "Failed to delete capital")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Capital deleted", nil))
}
