package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hakim-livs-backend/internal/models"
)

func (h *Handler) listCategories(c *gin.Context) {
	h.listCatalog(c, models.KindCategory)
}

func (h *Handler) listBrands(c *gin.Context) {
	h.listCatalog(c, models.KindBrand)
}

func (h *Handler) listSuppliers(c *gin.Context) {
	h.listCatalog(c, models.KindSupplier)
}

func (h *Handler) listCatalog(c *gin.Context, kind models.CatalogKind) {
	records, err := h.store.ListCatalog(c.Request.Context(), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
