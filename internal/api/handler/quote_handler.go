package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/finquote/quoting-portal/internal/api/metrics"
	"github.com/finquote/quoting-portal/internal/core/ports"
)

// QuoteHandler handles HTTP requests for quote requests.
type QuoteHandler struct {
	service ports.QuoteService
}

func NewQuoteHandler(service ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// Submit handles POST /api/quote-requests. The client is always the caller.
//
// @Summary      Submit a quote request
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Key that makes retries of the same submission safe"
// @Param        body             body      submitQuoteRequest  true   "Quote request"
// @Success      201              {object}  submitQuoteResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /quote-requests [post]
func (h *QuoteHandler) Submit(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req submitQuoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), identity, ports.SubmitQuoteInput{
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		Message:        req.Message,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	outcome := "created"
	if result.AlreadyExisted {
		outcome = "replayed"
	}
	metrics.QuoteRequestsSubmittedTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusCreated, submitQuoteResponse{
		ID:      result.ID,
		Message: "Quote request submitted successfully",
	})
}

// List handles GET /api/quote-requests. Admins see every request, clients their own.
//
// @Summary      List quote requests
// @Tags         quote-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   quoteResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /quote-requests [get]
func (h *QuoteHandler) List(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}

	resp := make([]quoteResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toQuoteResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// UpdateStatus handles PUT /api/quote-requests/:id/status.
//
// @Summary      Set the status of a quote request
// @Tags         quote-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Quote request ID"
// @Param        body  body      updateQuoteStatusRequest  true  "pending, approved or rejected"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /quote-requests/{id}/status [put]
func (h *QuoteHandler) UpdateStatus(c echo.Context) error {
	var req updateQuoteStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}

	metrics.QuoteStatusChangesTotal.WithLabelValues(strings.TrimSpace(req.Status)).Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Quote request status updated successfully"})
}
