package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
	"hakim-livs-backend/internal/service"
	"hakim-livs-backend/internal/util"
)

type orderRequest struct {
	Lines      []service.OrderLineRequest `json:"produkter"`
	FirstName  string                     `json:"fornamn"`
	LastName   string                     `json:"efternamn"`
	Street     string                     `json:"gatuadress"`
	PostalCode string                     `json:"postnr"`
	City       string                     `json:"postort"`
	Phone      string                     `json:"mobil"`
	Email      string                     `json:"mejl"`
	Note       string                     `json:"anmarkning"`
}

func (r *orderRequest) validate() error {
	var missing []string
	for _, field := range []struct {
		name  string
		empty bool
	}{
		{"fornamn", r.FirstName == ""},
		{"efternamn", r.LastName == ""},
		{"gatuadress", r.Street == ""},
		{"postnr", r.PostalCode == ""},
		{"postort", r.City == ""},
		{"mobil", r.Phone == ""},
		{"mejl", r.Email == ""},
	} {
		if field.empty {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return apperr.New(apperr.ValidationFailed, "Följande fält saknas: "+strings.Join(missing, ", "))
	}
	return nil
}

// createOrder handles checkout. Guests order with contact details only; a
// valid bearer token additionally ties the order to the caller.
func (h *Handler) createOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.ValidationFailed, "Ogiltig förfrågan", err))
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, err)
		return
	}

	lines, total, err := service.BuildOrderLines(c.Request.Context(), h.store, req.Lines)
	if err != nil {
		respondError(c, err)
		return
	}

	order := models.Order{
		Lines:         lines,
		Total:         total,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Street:        req.Street,
		PostalCode:    req.PostalCode,
		City:          req.City,
		Phone:         req.Phone,
		Email:         req.Email,
		Note:          req.Note,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	if user, err := h.authenticate(c); err == nil {
		order.User = &user.ID
	}

	if err := h.store.InsertOrder(c.Request.Context(), &order); err != nil {
		respondError(c, err)
		return
	}
	util.OrdersCreatedTotal.Inc()

	view, err := h.store.ExpandOrder(c.Request.Context(), &order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Tack för din beställning! Vänligen swisha %.2f kr till 123 456. Vi levererar snarast och sms:ar innan.", total),
		"order":   view,
	})
}

func (h *Handler) myOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, apperr.New(apperr.Unauthorized, "Ogiltig token"))
		return
	}
	orders, err := h.store.ListOrdersByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := h.store.ExpandOrders(c.Request.Context(), orders)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// getOrder serves a single order to its owner or to an admin.
func (h *Handler) getOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondError(c, apperr.New(apperr.Unauthorized, "Ogiltig token"))
		return
	}
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.NotFound, "Beställningen hittades inte"))
		return
	}
	order, err := h.store.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !user.IsAdmin && (order.User == nil || *order.User != user.ID) {
		respondError(c, apperr.New(apperr.Forbidden, "Åtkomst nekad"))
		return
	}
	view, err := h.store.ExpandOrder(c.Request.Context(), order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type statusUpdateRequest struct {
	Status        string `json:"status"`
	PaymentStatus string `json:"betalningsStatus"`
}

// updateOrderStatus validates the new values against the fixed enums before
// anything is written; an invalid value leaves the stored order unchanged.
func (h *Handler) updateOrderStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.ValidationFailed, "Ogiltig förfrågan", err))
		return
	}
	if err := service.ValidateStatusUpdate(req.Status, req.PaymentStatus); err != nil {
		respondError(c, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.NotFound, "Beställningen hittades inte"))
		return
	}
	order, err := h.store.SetOrderStatus(c.Request.Context(), id, req.Status, req.PaymentStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.store.ExpandOrder(c.Request.Context(), order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.store.ListOrders(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := h.store.ExpandOrders(c.Request.Context(), orders)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}
