package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
)

const productNotFound = "Produkten hittades inte."

// ListProducts returns all products, unexpanded.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := s.db.Collection("products").Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta produkter", err)
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta produkter", err)
	}
	return products, nil
}

func (s *Store) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.db.Collection("products").FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return nil, apperr.New(apperr.NotFound, productNotFound)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte hämta produkten", err)
	}
	return &product, nil
}

func (s *Store) InsertProduct(ctx context.Context, product *models.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	res, err := s.db.Collection("products").InsertOne(ctx, product)
	if err != nil {
		return apperr.Wrap(apperr.StoreError, "Kunde inte skapa produkten", err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateProduct overwrites the payload fields of an existing product and
// returns the updated document.
func (s *Store) UpdateProduct(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error) {
	update := bson.M{"$set": bson.M{
		"namn":                 product.Name,
		"beskrivning":          product.Description,
		"pris":                 product.Price,
		"kategorier":           product.Categories,
		"varumarke":            product.Brand,
		"leverantor":           product.Supplier,
		"jamforpris":           product.ComparePrice,
		"innehallsforteckning": product.Ingredients,
		"bild":                 product.Image,
		"mangd":                product.Quantity,
		"updatedAt":            time.Now(),
	}}
	res, err := s.db.Collection("products").UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, apperr.Wrap(apperr.StoreError, "Kunde inte uppdatera produkten", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperr.New(apperr.NotFound, productNotFound)
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.db.Collection("products").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Wrap(apperr.StoreError, "Kunde inte ta bort produkten", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, productNotFound)
	}
	return nil
}

// ExpandProducts replaces catalog ids with {_id, namn} references.
// References to records that no longer exist are dropped from the view.
func (s *Store) ExpandProducts(ctx context.Context, products []models.Product) ([]models.ProductView, error) {
	var categoryIDs, brandIDs, supplierIDs []primitive.ObjectID
	for _, p := range products {
		categoryIDs = append(categoryIDs, p.Categories...)
		if p.Brand != nil {
			brandIDs = append(brandIDs, *p.Brand)
		}
		if p.Supplier != nil {
			supplierIDs = append(supplierIDs, *p.Supplier)
		}
	}

	categories, err := s.GetCatalogByIDs(ctx, models.KindCategory, categoryIDs)
	if err != nil {
		return nil, err
	}
	brands, err := s.GetCatalogByIDs(ctx, models.KindBrand, brandIDs)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.GetCatalogByIDs(ctx, models.KindSupplier, supplierIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		view := models.ProductView{
			ID:           p.ID,
			Name:         p.Name,
			Description:  p.Description,
			Price:        p.Price,
			Categories:   []models.CatalogRef{},
			ComparePrice: p.ComparePrice,
			Ingredients:  p.Ingredients,
			Image:        p.Image,
			Quantity:     p.Quantity,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		}
		for _, id := range p.Categories {
			if c, ok := categories[id]; ok {
				view.Categories = append(view.Categories, models.CatalogRef{ID: c.ID, Name: c.Name})
			}
		}
		if p.Brand != nil {
			if b, ok := brands[*p.Brand]; ok {
				view.Brand = &models.CatalogRef{ID: b.ID, Name: b.Name}
			}
		}
		if p.Supplier != nil {
			if sup, ok := suppliers[*p.Supplier]; ok {
				view.Supplier = &models.CatalogRef{ID: sup.ID, Name: sup.Name}
			}
		}
		views = append(views, view)
	}
	return views, nil
}

// ExpandProduct is the single-document form of ExpandProducts.
func (s *Store) ExpandProduct(ctx context.Context, product *models.Product) (*models.ProductView, error) {
	views, err := s.ExpandProducts(ctx, []models.Product{*product})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
