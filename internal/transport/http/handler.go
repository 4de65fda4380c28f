package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports"
	"github.com/Gunvolt24/order_queue/pkg/httpx"
	"github.com/Gunvolt24/order_queue/pkg/validate"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Handler struct {
	service ports.OrderService
	log     ports.Logger
	timeout time.Duration
}

// NewHandler - timeout ограничивает обращения к сервису; 0 - без ограничения.
func NewHandler(service ports.OrderService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *Handler) createOrder(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, "cannot read request body")
		return
	}
	draft, err := validate.DecodeDraft(raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, "malformed order json", err.Error())
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.service.CreateOrder(ctx, draft)
	if err != nil {
		h.createFailed(c, order, err)
		return
	}

	c.Header("Location", "/api/orders/"+strconv.FormatInt(order.ID, 10))
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// createFailed - перевод ошибок CreateOrder в HTTP.
func (h *Handler) createFailed(c *gin.Context, order *domain.Order, err error) {
	var fieldErrs *validate.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeError(c, http.StatusBadRequest, strings.Join(fieldErrs.Details, "; "), fieldErrs.Details...)
	case errors.Is(err, validate.ErrInvalidOrder):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrQueueFull) && order != nil:
		// запись уже в БД, но в очередь не попала
		h.log.Errorf(c.Request.Context(), "order id=%d saved without queueing: %v", order.ID, err)
		writeError(c, http.StatusConflict, "order saved but the order queue is full",
			fmt.Sprintf("order_id=%d", order.ID))
	case errors.Is(err, domain.ErrQueueFull):
		writeError(c, http.StatusConflict, "order queue is full")
	default:
		h.internalError(c, "CreateOrder", err)
	}
}

func (h *Handler) listOrders(c *gin.Context) {
	page := httpx.ParsePage(c, defaultPageLimit, maxPageLimit)
	customer := c.Query("customer")

	ctx, cancel := h.requestContext(c)
	defer cancel()

	orders, err := h.service.SearchOrders(ctx, customer, page.Limit, page.Offset)
	if err != nil {
		h.internalError(c, "SearchOrders", err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) getOrderByID(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error(), "id="+c.Param("id"))
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	order, err := h.service.GetOrder(ctx, id)
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(c, http.StatusNotFound, fmt.Sprintf("order %d not found", id))
	case err != nil:
		h.internalError(c, "GetOrder", err)
	default:
		c.JSON(http.StatusOK, toOrderResponse(order))
	}
}

// processNext - снять вершину очереди; 204, если очередь пуста.
func (h *Handler) processNext(c *gin.Context) {
	order, ok := h.service.ProcessNext(c.Request.Context())
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) peekNext(c *gin.Context) {
	order, ok := h.service.PeekNext(c.Request.Context())
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (h *Handler) queueStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.QueueStatus())
}

func (h *Handler) queueMessages(c *gin.Context) {
	c.JSON(http.StatusOK, toOrderResponses(h.service.ListQueueContents(c.Request.Context())))
}

func (h *Handler) internalError(c *gin.Context, op string, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		h.log.Warnf(c.Request.Context(), "%s timed out: %v", op, err)
		writeError(c, http.StatusGatewayTimeout, "request timed out")
		return
	}
	h.log.Errorf(c.Request.Context(), "%s failed err=%v", op, err)
	writeError(c, http.StatusInternalServerError, "internal server error")
}
