package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
)

var orderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusConfirmed: true,
	models.OrderStatusShipped:   true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCancelled: true,
}

var paymentStatuses = map[string]bool{
	models.PaymentStatusPending:  true,
	models.PaymentStatusPaid:     true,
	models.PaymentStatusRefunded: true,
}

// ValidateStatusUpdate checks a status update against the fixed enums before
// anything is persisted. Empty fields mean "leave unchanged"; both empty is
// an error. Status and payment status are deliberately uncorrelated.
func ValidateStatusUpdate(status, paymentStatus string) error {
	if status == "" && paymentStatus == "" {
		return apperr.New(apperr.ValidationFailed, "Ingen status angiven")
	}
	if status != "" && !orderStatuses[status] {
		return apperr.New(apperr.ValidationFailed, "Ogiltig status: "+status)
	}
	if paymentStatus != "" && !paymentStatuses[paymentStatus] {
		return apperr.New(apperr.ValidationFailed, "Ogiltig betalningsstatus: "+paymentStatus)
	}
	return nil
}

// OrderLineRequest is one requested line: a product id and a quantity.
type OrderLineRequest struct {
	Product  string `json:"produkt"`
	Quantity int    `json:"antal"`
}

// ProductGetter is the slice of the store order building needs.
type ProductGetter interface {
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// BuildOrderLines validates the requested lines, snapshots each product's
// current price and computes the order total. The client-side total is never
// trusted.
func BuildOrderLines(ctx context.Context, products ProductGetter, requests []OrderLineRequest) ([]models.OrderLine, float64, error) {
	if len(requests) == 0 {
		return nil, 0, apperr.New(apperr.ValidationFailed, "Beställningen innehåller inga produkter")
	}

	lines := make([]models.OrderLine, 0, len(requests))
	total := 0.0
	for _, req := range requests {
		if req.Quantity < 1 {
			return nil, 0, apperr.New(apperr.ValidationFailed, "Antal måste vara minst 1")
		}
		id, err := primitive.ObjectIDFromHex(req.Product)
		if err != nil {
			return nil, 0, apperr.New(apperr.ValidationFailed, "Ogiltigt produkt-id: "+req.Product)
		}
		product, err := products.GetProduct(ctx, id)
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				return nil, 0, apperr.New(apperr.ValidationFailed, "Produkten hittades inte: "+req.Product)
			}
			return nil, 0, err
		}
		lines = append(lines, models.OrderLine{
			Product:  product.ID,
			Quantity: req.Quantity,
			Price:    product.Price,
		})
		total += product.Price * float64(req.Quantity)
	}
	return lines, total, nil
}
