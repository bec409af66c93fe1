package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests for the rate history ledger.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.submitExchangeRate)
		exchangeRates.GET("/history", h.listExchangeRateHistory)
		exchangeRates.GET("/current/:base/:quote", h.getCurrentExchangeRate)
		exchangeRates.DELETE("/:exchangeRateID", h.deleteExchangeRate)
	}
}

// submitExchangeRate godoc
// @Summary Submit an exchange rate
// @Description Records a rate for a currency pair. An active rate closes the pair's previous active rate at its effectiveFrom and becomes the current rate.
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.SubmitExchangeRateRequest true "Exchange rate details"
// @Success 201 {object} dto.APIResponse{data=dto.ExchangeRateResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input or validation error"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 409 {object} dto.APIResponse "Concurrent submission for the same pair"
// @Failure 500 {object} dto.APIResponse "Failed to submit exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) submitExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SubmitExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to submit exchange rate",
		slog.String("base", req.BaseCurrency),
		slog.String("quote", req.QuoteCurrency),
		slog.String("rate", req.Rate.String()),
		slog.String("status", string(req.Status)),
		slog.Time("effective_from", req.EffectiveFrom),
	)

	record, err := h.exchangeRateService.SubmitRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to submit exchange rate")
		return
	}

	c.JSON(http.StatusCreated, dto.Success("Exchange rate submitted", dto.ToExchangeRateResponse(record)))
}

// listExchangeRateHistory godoc
// @Summary List exchange rate history
// @Description Lists rate records newest first, optionally for one base and/or quote currency
// @Tags exchange rates
// @Produce  json
// @Param   base   query string false "Base currency code"
// @Param   quote  query string false "Quote currency code"
// @Param   limit  query int    false "Page size" default(50)
// @Param   offset query int    false "Offset" default(0)
// @Success 200 {object} dto.APIResponse{data=[]dto.ExchangeRateResponse}
// @Failure 400 {object} dto.APIResponse "Invalid query"
// @Failure 500 {object} dto.APIResponse "Failed to list exchange rates"
// @Security BearerAuth
// @Router /exchange-rates/history [get]
func (h *exchangeRateHandler) listExchangeRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ExchangeRateHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}

	records, err := h.exchangeRateService.ListHistory(c.Request.Context(), domain.ExchangeRateFilter{
		BaseCurrency:  q.BaseCurrency,
		QuoteCurrency: q.QuoteCurrency,
		Limit:         q.Limit,
		Offset:        q.Offset,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Exchange rate history", dto.ToListExchangeRateResponse(records)))
}

// getCurrentExchangeRate godoc
// @Summary Get the current exchange rate
// @Description Returns the record the pair's current pointer references
// @Tags exchange rates
// @Produce  json
// @Param   base  path string true "Base currency code (3 letters)" MinLength(3) MaxLength(3)
// @Param   quote path string true "Quote currency code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.APIResponse{data=dto.ExchangeRateResponse}
// @Failure 400 {object} dto.APIResponse "Invalid currency code"
// @Failure 404 {object} dto.APIResponse "No current rate for the pair"
// @Failure 500 {object} dto.APIResponse "Failed to retrieve exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/current/{base}/{quote} [get]
func (h *exchangeRateHandler) getCurrentExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("base", c.Param("base")),
		slog.String("quote", c.Param("quote")),
	)

	record, err := h.exchangeRateService.GetCurrentRate(c.Request.Context(), c.Param("base"), c.Param("quote"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Current exchange rate", dto.ToExchangeRateResponse(record)))
}

// deleteExchangeRate godoc
// @Summary Delete an exchange rate record
// @Description Removes a history record. A current pointer referencing it is removed as well.
// @Tags exchange rates
// @Produce  json
// @Param   exchangeRateID path string true "Exchange rate ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Exchange rate not found"
// @Failure 500 {object} dto.APIResponse "Failed to delete exchange rate"
// @Security BearerAuth
// @Router /exchange-rates/{exchangeRateID} [delete]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("exchangeRateID")

	if err := h.exchangeRateService.DeleteRate(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Exchange rate deleted", nil))
}
