package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hakim-livs-backend/internal/apperr"
	"hakim-livs-backend/internal/models"
	"hakim-livs-backend/internal/util"
)

// productPayload is a product write request. Category, brand and supplier
// values may each be an existing id or a free-text name; the resolver sorts
// that out.
type productPayload struct {
	Name         string   `json:"namn"`
	Description  string   `json:"beskrivning"`
	Price        float64  `json:"pris"`
	Image        string   `json:"bild"`
	Quantity     string   `json:"mangd"`
	Ingredients  string   `json:"innehallsforteckning"`
	ComparePrice string   `json:"jamforpris"`
	Categories   []string `json:"kategorier"`
	Brand        string   `json:"varumarke"`
	Supplier     string   `json:"leverantor"`
}

// validate checks the fixed required-field set and the image URL. A zero
// price counts as missing.
func (p *productPayload) validate() error {
	var missing []string
	for _, field := range []struct {
		name  string
		empty bool
	}{
		{"namn", p.Name == ""},
		{"pris", p.Price == 0},
		{"beskrivning", p.Description == ""},
		{"bild", p.Image == ""},
		{"mangd", p.Quantity == ""},
		{"innehallsforteckning", p.Ingredients == ""},
		{"jamforpris", p.ComparePrice == ""},
	} {
		if field.empty {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return apperr.New(apperr.ValidationFailed, "Följande fält saknas: "+strings.Join(missing, ", "))
	}
	if p.Price < 0 {
		return apperr.New(apperr.ValidationFailed, "Priset får inte vara negativt")
	}
	if !isValidURL(p.Image) {
		return apperr.New(apperr.ValidationFailed, "Ogiltig bild-URL")
	}
	return nil
}

func isValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// buildProduct resolves the payload's catalog references into a persistable
// product. Any catalog records this creates stay created even if the
// following write fails.
func (h *Handler) buildProduct(ctx context.Context, payload *productPayload) (*models.Product, error) {
	product := &models.Product{
		Name:         payload.Name,
		Description:  payload.Description,
		Price:        payload.Price,
		Categories:   []primitive.ObjectID{},
		ComparePrice: payload.ComparePrice,
		Ingredients:  payload.Ingredients,
		Image:        payload.Image,
		Quantity:     payload.Quantity,
	}

	resolutions, err := h.resolver.ResolveMany(ctx, models.KindCategory, payload.Categories)
	if err != nil {
		return nil, err
	}
	for _, res := range resolutions {
		product.Categories = append(product.Categories, res.ID)
	}

	if payload.Brand != "" {
		res, err := h.resolver.Resolve(ctx, models.KindBrand, payload.Brand)
		if err != nil {
			return nil, err
		}
		product.Brand = &res.ID
	}
	if payload.Supplier != "" {
		res, err := h.resolver.Resolve(ctx, models.KindSupplier, payload.Supplier)
		if err != nil {
			return nil, err
		}
		product.Supplier = &res.ID
	}
	return product, nil
}

func (h *Handler) listProducts(c *gin.Context) {
	products, err := h.store.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	views, err := h.store.ExpandProducts(c.Request.Context(), products)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handler) getProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.NotFound, "Produkten hittades inte."))
		return
	}
	product, err := h.store.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	view, err := h.store.ExpandProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) createProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Wrap(apperr.ValidationFailed, "Ogiltig förfrågan", err))
		return
	}
	if err := payload.validate(); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.buildProduct(c.Request.Context(), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.store.InsertProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}
	util.ProductsCreatedTotal.Inc()

	view, err := h.store.ExpandProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.NotFound, "Produkten hittades inte."))
		return
	}

	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Wrap(apperr.ValidationFailed, "Ogiltig förfrågan", err))
		return
	}
	if err := payload.validate(); err != nil {
		respondError(c, err)
		return
	}

	product, err := h.buildProduct(c.Request.Context(), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.store.UpdateProduct(c.Request.Context(), id, product)
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.store.ExpandProduct(c.Request.Context(), updated)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, apperr.New(apperr.NotFound, "Produkten hittades inte."))
		return
	}
	if err := h.store.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produkten har tagits bort."})
}
