package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/pos_backoffice/internal/core/ports/services"
	"github.com/SscSPs/pos_backoffice/internal/dto"
	"github.com/SscSPs/pos_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxHandler handles HTTP requests for the tax version ledger.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{taxService: ts}
}

// registerTaxRoutes registers routes related to taxes.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	taxes := rg.Group("/taxes")
	{
		taxes.POST("", h.createTax)
		taxes.GET("", h.listTaxes)
		taxes.GET("/history", h.listTaxHistory)
		taxes.PUT("/:taxID", h.reviseTax)
		taxes.DELETE("/:taxID", h.deleteTax)
	}
}

// createTax godoc
// @Summary Create a tax
// @Description Creates a tax with its first active version
// @Tags taxes
// @Accept  json
// @Produce  json
// @Param   tax body dto.CreateTaxRequest true "Tax details"
// @Success 201 {object} dto.APIResponse{data=dto.TaxResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 500 {object} dto.APIResponse "Failed to create tax"
// @Security BearerAuth
// @Router /taxes [post]
func (h *taxHandler) createTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	tax, err := h.taxService.CreateInitialVersion(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create tax")
		return
	}

	c.JSON(http.StatusCreated, dto.Success("Tax created", dto.ToTaxResponse(tax)))
}

// listTaxes godoc
// @Summary List taxes
// @Description Lists every tax with the version currently in force
// @Tags taxes
// @Produce  json
// @Success 200 {object} dto.APIResponse{data=[]dto.TaxResponse}
// @Failure 500 {object} dto.APIResponse "Failed to list taxes"
// @Security BearerAuth
// @Router /taxes [get]
func (h *taxHandler) listTaxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	taxes, err := h.taxService.ListTaxes(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list taxes")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Taxes", dto.ToListTaxResponse(taxes)))
}

// listTaxHistory godoc
// @Summary List tax versions
// @Description Lists tax versions newest first, optionally for one tax
// @Tags taxes
// @Produce  json
// @Param   taxId query string false "Tax ID"
// @Param   limit query int    false "Page size" default(20)
// @Success 200 {object} dto.APIResponse{data=[]dto.TaxVersionResponse}
// @Failure 400 {object} dto.APIResponse "Invalid query"
// @Failure 500 {object} dto.APIResponse "Failed to list tax history"
// @Security BearerAuth
// @Router /taxes/history [get]
func (h *taxHandler) listTaxHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.TaxHistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, err)
		return
	}

	versions, err := h.taxService.ListTaxHistory(c.Request.Context(), q.TaxID, q.Limit)
	if err != nil {
		respondError(c, logger, err, "Failed to list tax history")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Tax history", dto.ToListTaxVersionResponse(versions)))
}

// reviseTax godoc
// @Summary Revise a tax
// @Description Closes the version in force and opens a new one at the same instant
// @Tags taxes
// @Accept  json
// @Produce  json
// @Param   taxID path string true "Tax ID"
// @Param   tax   body dto.ReviseTaxRequest true "New version details"
// @Success 200 {object} dto.APIResponse{data=dto.TaxResponse}
// @Failure 400 {object} dto.APIResponse "Invalid input"
// @Failure 404 {object} dto.APIResponse "Tax not found"
// @Failure 500 {object} dto.APIResponse "Failed to revise tax"
// @Security BearerAuth
// @Router /taxes/{taxID} [put]
func (h *taxHandler) reviseTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxID := c.Param("taxID")
	var req dto.ReviseTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to revise tax", slog.String("tax_id", taxID), slog.String("tax_rate", req.TaxRate.String()))

	tax, err := h.taxService.ReviseTax(c.Request.Context(), taxID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to revise tax")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Tax revised", dto.ToTaxResponse(tax)))
}

// deleteTax godoc
// @Summary Delete a tax
// @Description Removes the tax. Its version history is kept.
// @Tags taxes
// @Produce  json
// @Param   taxID path string true "Tax ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse "Tax not found"
// @Failure 500 {object} dto.APIResponse "Failed to delete tax"
// @Security BearerAuth
// @Router /taxes/{taxID} [delete]
func (h *taxHandler) deleteTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.taxService.DeleteTax(c.Request.Context(), c.Param("taxID")); err != nil {
		respondError(c, logger, err, "Failed to delete tax")
		return
	}

	c.JSON(http.StatusOK, dto.Success("Tax deleted", nil))
}
