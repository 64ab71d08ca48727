package handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/store"
)

var (
	transactionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paysim_transactions_created_total",
		Help: "Number of transactions created.",
	})
	statusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paysim_status_updates_total",
		Help: "Number of status updates applied, by target status.",
	}, []string{"status"})
)

// Transaction IDs are uppercase alphanumeric tokens; anything else on GET /:id
// is a static asset path.
var transactionIDPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

type TransactionHandler struct {
	Store  store.TransactionStore
	Static *StaticHandler
}

func NewTransactionHandler(s store.TransactionStore, static *StaticHandler) *TransactionHandler {
	return &TransactionHandler{Store: s, Static: static}
}

func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req models.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Store.Create(ctx, req)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to create transaction"))
	}

	transactionsCreated.Inc()
	return c.JSON(http.StatusCreated, models.Response{
		Status:        "success",
		Message:       "Transaction created successfully",
		TransactionID: tx.ID,
		Data:          tx,
	})
}

func (h *TransactionHandler) UpdateTransactionStatus(c echo.Context) error {
	var req models.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse("Invalid request body"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Store.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTransactionNotFound):
			return c.JSON(http.StatusNotFound, models.ErrorResponse("Transaction not found"))
		case errors.Is(err, store.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, models.ErrorResponse("Status must be 'success' or 'failed'"))
		case errors.Is(err, store.ErrAlreadyFinal):
			return c.JSON(http.StatusConflict, models.ErrorResponse("Transaction is already finalized"))
		default:
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to update transaction"))
		}
	}

	statusUpdates.WithLabelValues(string(tx.Status)).Inc()
	return c.JSON(http.StatusOK, models.Response{
		Status:  "success",
		Message: "Transaction status updated successfully",
		Data:    tx,
	})
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id := c.Param("id")
	if !transactionIDPattern.MatchString(id) {
		// Single-segment paths that are not transaction IDs (favicon.ico and
		// friends) fall through to the static file handler.
		return h.Static.Serve(c)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	tx, err := h.Store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTransactionNotFound) {
			return c.JSON(http.StatusNotFound, models.ErrorResponse("Transaction not found"))
		}
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse("Failed to fetch transaction"))
	}

	return c.JSON(http.StatusOK, models.Response{
		Status: "success",
		Data:   tx,
	})
}

// PaymentSuccess is the mock success endpoint polled by the demo UI.
func PaymentSuccess(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  "success",
		Message: "Payment Successful",
	})
}

// PaymentFailure is the mock failure endpoint polled by the demo UI.
func PaymentFailure(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  "failed",
		Message: "Payment Failed",
	})
}
