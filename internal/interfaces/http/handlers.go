package http

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vreb/brokerage-workflow/internal/application/service"
	"github.com/vreb/brokerage-workflow/internal/domain/entity"
	"github.com/vreb/brokerage-workflow/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DeliveryLister reads logged notification attempts
type DeliveryLister interface {
	GetByInvoiceNumber(invoiceNumber string) ([]*entity.Delivery, error)
	GetRecent(limit int) ([]*entity.Delivery, error)
	CountByStatus() (map[string]int, error)
}

const defaultRecentDeliveries = 50

// Handlers contains all HTTP request handlers
type Handlers struct {
	invoices   service.InvoiceService
	customers  service.KYCService
	deliveries DeliveryLister
	logger     *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	invoices service.InvoiceService,
	customers service.KYCService,
	deliveries DeliveryLister,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		invoices:   invoices,
		customers:  customers,
		deliveries: deliveries,
		logger:     logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Version   string         `json:"version"`
	Invoices  map[string]int `json:"invoices,omitempty"`
}

// InvoiceRequest is the invoice form submission
type InvoiceRequest struct {
	InvoiceNumber  string          `json:"invoice_number"`
	BillToName     string          `json:"bill_to_party_name"`
	BillToEmail    string          `json:"bill_to_party_email"`
	BillToAddress1 string          `json:"bill_to_party_address_1"`
	BillToAddress2 string          `json:"bill_to_party_address_2"`
	BillToTRN      string          `json:"bill_to_party_trn"`
	TenantName     string          `json:"tenant_name"`
	InvoiceDate    string          `json:"invoice_date"`
	PropertyName   string          `json:"property_name"`
	RentalPrice    decimal.Decimal `json:"rental_price"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Terms          string          `json:"terms"`
}

func (r InvoiceRequest) toRecord() *entity.Record {
	return &entity.Record{
		InvoiceNumber:  r.InvoiceNumber,
		BillToName:     r.BillToName,
		BillToEmail:    r.BillToEmail,
		BillToAddress1: r.BillToAddress1,
		BillToAddress2: r.BillToAddress2,
		BillToTRN:      r.BillToTRN,
		TenantName:     r.TenantName,
		InvoiceDate:    r.InvoiceDate,
		PropertyName:   r.PropertyName,
		RentalPrice:    r.RentalPrice,
		CommissionRate: r.CommissionRate,
		Terms:          r.Terms,
	}
}

// PaymentRequest records a payment; an empty date means today
type PaymentRequest struct {
	PaymentDate string `json:"payment_date"`
}

// StatusRequest overwrites a status
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PaymentResponse is returned after a payment is recorded
type PaymentResponse struct {
	Record      *entity.Record `json:"record"`
	ReceiptPath string         `json:"receipt_path"`
}

// DeliveriesResponse lists recent notification attempts with per-status totals
type DeliveriesResponse struct {
	Deliveries []*entity.Delivery `json:"deliveries"`
	Counts     map[string]int     `json:"counts"`
}

// ArtifactResponse points to a rendered document
type ArtifactResponse struct {
	FilePath string `json:"file_path"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	if stats, err := h.invoices.Stats(); err != nil {
		h.logger.Warn("Record store unavailable", zap.Error(err))
		response.Status = "degraded"
	} else {
		response.Invoices = make(map[string]int, len(stats))
		for status, n := range stats {
			response.Invoices[status.String()] = n
		}
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: response})
}

// ListInvoices handles GET /api/v1/invoices?q=
func (h *Handlers) ListInvoices(c *gin.Context) {
	records, err := h.invoices.List(c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

// GetInvoice handles GET /api/v1/invoices/:number
func (h *Handlers) GetInvoice(c *gin.Context) {
	rec, err := h.invoices.Get(c.Param("number"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: rec})
}

// SubmitInvoice handles POST /api/v1/invoices
func (h *Handlers) SubmitInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	saved, err := h.invoices.Submit(req.toRecord())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: saved})
}

// GenerateInvoice handles POST /api/v1/invoices/:number/generate
func (h *Handlers) GenerateInvoice(c *gin.Context) {
	rs, err := h.invoices.Generate(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.fail(c, err)
		return
	}

	status := http.StatusOK
	if !rs.Completed {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, Response{Success: rs.Completed, Data: rs, Error: rs.Error})
}

// RecordPayment handles POST /api/v1/invoices/:number/payment
func (h *Handlers) RecordPayment(c *gin.Context) {
	var req PaymentRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.badRequest(c, err)
			return
		}
	}

	rec, path, err := h.invoices.RecordPayment(c.Param("number"), req.PaymentDate)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: PaymentResponse{Record: rec, ReceiptPath: path}})
}

// SetInvoiceStatus handles PUT /api/v1/invoices/:number/status
func (h *Handlers) SetInvoiceStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	rec, err := h.invoices.SetStatus(c.Param("number"), entity.RecordStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: rec})
}

// ListDeliveries handles GET /api/v1/invoices/:number/deliveries
func (h *Handlers) ListDeliveries(c *gin.Context) {
	deliveries, err := h.deliveries.GetByInvoiceNumber(c.Param("number"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: deliveries})
}

// RecentDeliveries handles GET /api/v1/deliveries
func (h *Handlers) RecentDeliveries(c *gin.Context) {
	limit := defaultRecentDeliveries
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	deliveries, err := h.deliveries.GetRecent(limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	counts, err := h.deliveries.CountByStatus()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: DeliveriesResponse{Deliveries: deliveries, Counts: counts}})
}

// ExportInvoices handles GET /api/v1/invoices/export
func (h *Handlers) ExportInvoices(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.invoices.Export(&buf); err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="invoice_records.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListCustomers handles GET /api/v1/kyc?q=
func (h *Handlers) ListCustomers(c *gin.Context) {
	apps, err := h.customers.List(c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: apps})
}

// GetCustomer handles GET /api/v1/kyc/:id
func (h *Handlers) GetCustomer(c *gin.Context) {
	app, err := h.customers.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: app})
}

// CreateCustomer handles POST /api/v1/kyc
func (h *Handlers) CreateCustomer(c *gin.Context) {
	var app entity.KYCApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		h.badRequest(c, err)
		return
	}

	saved, err := h.customers.Save(&app, false)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: saved})
}

// UpdateCustomer handles PUT /api/v1/kyc/:id
func (h *Handlers) UpdateCustomer(c *gin.Context) {
	var app entity.KYCApplication
	if err := c.ShouldBindJSON(&app); err != nil {
		h.badRequest(c, err)
		return
	}
	app.CustomerID = c.Param("id")

	saved, err := h.customers.Save(&app, true)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: saved})
}

// SetCustomerStatus handles PUT /api/v1/kyc/:id/status
func (h *Handlers) SetCustomerStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	app, err := h.customers.SetStatus(c.Param("id"), entity.KYCStatus(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: app})
}

// RenderApplication handles POST /api/v1/kyc/:id/application
func (h *Handlers) RenderApplication(c *gin.Context) {
	path, err := h.customers.RenderApplication(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: ArtifactResponse{FilePath: path}})
}

func (h *Handlers) badRequest(c *gin.Context, err error) {
	h.logger.Info("Invalid request body",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid request body: " + err.Error()})
}

// fail maps service and store errors to HTTP status codes
func (h *Handlers) fail(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Error: "validation failed", Errors: vErr.Errors})
		return
	case errors.Is(err, store.ErrRecordNotFound), errors.Is(err, store.ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	case errors.Is(err, store.ErrDuplicateCustomer), errors.Is(err, service.ErrRecordRejected):
		c.JSON(http.StatusConflict, Response{Success: false, Error: err.Error()})
		return
	case errors.Is(err, service.ErrInvalidPaymentDate), errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.logger.Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
}
