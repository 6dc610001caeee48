package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-backend/internal/api/middleware"
	service "github.com/aaravmahajanofficial/storefront-backend/internal/services"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils"
	"github.com/aaravmahajanofficial/storefront-backend/internal/utils/response"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// IssueInvoice godoc
//	@Summary		Issue the invoice for an order
//	@Description	Idempotent: an order keeps the invoice id it was first issued.
//	@Tags			Invoices
//	@Produce		json
//	@Param			id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success		201	{object}	models.InvoiceData
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		409	{object}	response.ErrorResponse	"Order is cancelled"
//	@Security		BearerAuth
//	@Router			/admin/orders/{id}/invoice [post]
func (h *InvoiceHandler) IssueInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, logger, ok := requireClaims(w, r, "issue invoice")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		invoice, err := h.invoiceService.IssueInvoice(r.Context(), id)
		if err != nil {
			logger.Error("Failed to issue invoice", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Invoice issued", slog.String("orderId", id.String()), slog.String("invoiceId", invoice.InvoiceID))
		response.Success(w, http.StatusCreated, invoice)
	}
}

// GetOrderInvoice godoc
//	@Summary	Get the invoice of an order
//	@Tags		Invoices
//	@Produce	json
//	@Param		id	path		string	true	"Order ID (UUID)"	Format(uuid)
//	@Success	200	{object}	models.InvoiceData
//	@Failure	404	{object}	response.ErrorResponse	"Order not found or invoice not issued"
//	@Security	BearerAuth
//	@Router		/orders/{id}/invoice [get]
func (h *InvoiceHandler) GetOrderInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, logger, ok := requireClaims(w, r, "get invoice")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		invoice, err := h.invoiceService.GetOrderInvoice(r.Context(), claims, id)
		if err != nil {
			logger.Error("Failed to get invoice", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, invoice)
	}
}

// VerifyInvoice godoc
//	@Summary		Verify an invoice
//	@Description	Public lookup behind the QR code printed on invoices. Line items are omitted.
//	@Tags			Invoices
//	@Produce		json
//	@Param			invoiceId	path		string	true	"Invoice ID"
//	@Success		200			{object}	models.InvoiceData
//	@Failure		404			{object}	response.ErrorResponse	"Invoice not found"
//	@Router			/invoices/{invoiceId} [get]
func (h *InvoiceHandler) VerifyInvoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())
		invoiceID := r.PathValue("invoiceId")

		invoice, err := h.invoiceService.VerifyInvoice(r.Context(), invoiceID)
		if err != nil {
			logger.Warn("Invoice lookup failed", slog.String("invoiceId", invoiceID), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, invoice)
	}
}
