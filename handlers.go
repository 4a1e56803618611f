package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StoreUseCaseInterface defines the interface for the use case.
type StoreUseCaseInterface interface {
	ListProducts(ctx context.Context) ([]ProductListing, error)
	InitiatePurchase(ctx context.Context, productID string, quantity int) (*PurchaseReceipt, error)
	CheckStatus(ctx context.Context, reference string) (*StatusResult, error)
	SalesSummary(ctx context.Context) (*SalesSummary, error)
}

// PurchaseRequest is the body of POST /beli.
type PurchaseRequest struct {
	ProductID string `json:"idProduk" binding:"required"`
	Quantity  int    `json:"jumlah" binding:"required,gt=0"`
}

// StoreHandler contains the HTTP handlers.
type StoreHandler struct {
	useCase StoreUseCaseInterface
	tracer  trace.Tracer
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(useCase StoreUseCaseInterface, tracer trace.Tracer) *StoreHandler {
	return &StoreHandler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// ListProducts handles GET /produk.
func (h *StoreHandler) ListProducts(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "list_products")
	defer span.End()

	listings, err := h.useCase.ListProducts(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memuat produk"})
		return
	}
	if listings == nil {
		listings = []ProductListing{}
	}

	c.JSON(http.StatusOK, listings)
}

// CreatePurchase handles POST /beli.
func (h *StoreHandler) CreatePurchase(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "create_purchase")
	defer span.End()

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Param idProduk/jumlah tidak valid"})
		return
	}

	span.SetAttributes(
		attribute.String("product_id", req.ProductID),
		attribute.Int("quantity", req.Quantity),
	)

	receipt, err := h.useCase.InitiatePurchase(ctx, req.ProductID, req.Quantity)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Param idProduk/jumlah tidak valid"})
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Produk tidak ditemukan"})
		case errors.Is(err, ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stok tidak cukup"})
		case errors.Is(err, ErrGateway):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Gagal membuat QRIS: " + err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Terjadi kesalahan server saat membuat QRIS"})
		}
		return
	}

	span.SetAttributes(attribute.String("reference", receipt.Reference))
	c.JSON(http.StatusOK, receipt)
}

// CheckStatus handles GET /status/:reff.
func (h *StoreHandler) CheckStatus(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "check_status")
	defer span.End()

	reference := c.Param("reff")
	span.SetAttributes(attribute.String("reference", reference))

	result, err := h.useCase.CheckStatus(ctx, reference)
	if err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, ErrTransactionMissing):
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaksi tidak ditemukan"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal cek status"})
		}
		return
	}

	span.SetAttributes(attribute.String("status", result.Status))
	c.JSON(http.StatusOK, result)
}

// SalesRecap handles GET /rekap.
func (h *StoreHandler) SalesRecap(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "sales_recap")
	defer span.End()

	summary, err := h.useCase.SalesSummary(ctx)
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gagal memuat rekap"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// HealthCheck verifies the service is up.
func (h *StoreHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "qris-store",
	})
}
