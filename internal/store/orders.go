package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
)

const orderNotFound = "Beställningen hittades inte"

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	res, err := s.db.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		return apperr.Wrap(apperr.StoreError, "Kunde inte skapa beställning", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Store) GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.db.Collection("orders").FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, orderNotFound)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta beställningen", err)
	}
	return &order, nil
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{})
}

// ListOrdersByUser returns one user's orders, newest first.
func (s *Store) ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{"anvandare": userID})
}

func (s *Store) findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.db.Collection("orders").Find(ctx, filter, opts)
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta beställningar", err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta beställningar", err)
	}
	return orders, nil
}

// SetOrderStatus persists validated status fields and returns the updated
// order. Empty values leave the stored field untouched.
func (s *Store) SetOrderStatus(ctx context.Context, id primitive.ObjectID, status, paymentStatus string) (*models.Order, error) {
	set := bson.M{"updatedAt": time.Now()}
	if status != "" {
		set["status"] = status
	}
	if paymentStatus != "" {
		set["betalningsStatus"] = paymentStatus
	}
	res, err := s.db.Collection("orders").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte uppdatera beställningen", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperr.New(apperr.NotFound, orderNotFound)
	}
	return s.GetOrder(ctx, id)
}

// ExpandOrders replaces line product ids with full product documents and the
// user id with a trimmed user reference.
func (s *Store) ExpandOrders(ctx context.Context, orders []models.Order) ([]models.OrderView, error) {
	var productIDs []primitive.ObjectID
	var userIDs []primitive.ObjectID
	for _, o := range orders {
		for _, line := range o.Lines {
			productIDs = append(productIDs, line.Product)
		}
		if o.User != nil {
			userIDs = append(userIDs, *o.User)
		}
	}

	products, err := s.getProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	users, err := s.getUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.OrderView, 0, len(orders))
	for _, o := range orders {
		view := models.OrderView{
			ID:            o.ID,
			Lines:         []models.OrderLineView{},
			Total:         o.Total,
			FirstName:     o.FirstName,
			LastName:      o.LastName,
			Street:        o.Street,
			PostalCode:    o.PostalCode,
			City:          o.City,
			Phone:         o.Phone,
			Email:         o.Email,
			Note:          o.Note,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
		}
		if o.User != nil {
			if u, ok := users[*o.User]; ok {
				view.User = &models.UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
			}
		}
		for _, line := range o.Lines {
			lineView := models.OrderLineView{Quantity: line.Quantity, Price: line.Price}
			if p, ok := products[line.Product]; ok {
				product := p
				lineView.Product = &product
			}
			view.Lines = append(view.Lines, lineView)
		}
		views = append(views, view)
	}
	return views, nil
}

// ExpandOrder is the single-document form of ExpandOrders.
func (s *Store) ExpandOrder(ctx context.Context, order *models.Order) (*models.OrderView, error) {
	views, err := s.ExpandOrders(ctx, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *Store) getProductsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	result := map[primitive.ObjectID]models.Product{}
	if len(ids) == 0 {
		return result, nil
	}
	cur, err := s.db.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta produkter", err)
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta produkter", err)
	}
	for _, p := range products {
		result[p.ID] = p
	}
	return result, nil
}
