package mockapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/product"
)

func checkProduct(p product.Product) string {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return "name is required"
	case p.Price.IsNegative():
		return "price must be non-negative"
	case p.StockQuantity < 0:
		return "stock must be non-negative"
	}
	return ""
}

// barcodeTaken reports whether another product already uses barcode.
func (s *Server) barcodeTaken(ctx context.Context, barcode string, self int64) (bool, error) {
	if barcode == "" {
		return false, nil
	}
	all, err := loadAll[product.Product](ctx, s.store, KindProduct)
	if err != nil {
		return false, err
	}
	for _, p := range all {
		if p.Barcode == barcode && p.ID != self {
			return true, nil
		}
	}
	return false, nil
}

// @Summary List products
// @Produce json
// @Success 200 {array} product.Product
// @Router /api/products [get]
func (s *Server) listProducts(c *gin.Context) {
	out, err := loadAll[product.Product](c.Request.Context(), s.store, KindProduct)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := load[product.Product](c.Request.Context(), s.store, KindProduct, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Find a product by barcode
// @Param barcode path string false "barcode"
// @Param barcode query string false "barcode (legacy route)"
// @Success 200 {object} product.Product
// @Failure 404 {object} map[string]string
// @Router /api/product/barcode/{barcode} [get]
func (s *Server) getProductByBarcode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("barcode"))
	if code == "" {
		code = strings.TrimSpace(c.Query("barcode"))
	}
	if code == "" {
		badRequest(c, "barcode is required")
		return
	}
	all, err := loadAll[product.Product](c.Request.Context(), s.store, KindProduct)
	if err != nil {
		fail(c, err)
		return
	}
	for _, p := range all {
		if p.Barcode == code {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
}

// @Summary Create a product
// @Accept json
// @Produce json
// @Param product body product.Product true "product"
// @Success 201 {object} product.Product
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/product [post]
func (s *Server) createProduct(c *gin.Context) {
	var p product.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if msg := checkProduct(p); msg != "" {
		badRequest(c, msg)
		return
	}
	ctx := c.Request.Context()
	if taken, err := s.barcodeTaken(ctx, p.Barcode, 0); err != nil {
		fail(c, err)
		return
	} else if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "barcode already in use"})
		return
	}
	id, err := s.store.NextID(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	p.ID = id
	if err := save(ctx, s.store, KindProduct, id, p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := load[product.Product](ctx, s.store, KindProduct, id); err != nil {
		fail(c, err)
		return
	}
	var p product.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if msg := checkProduct(p); msg != "" {
		badRequest(c, msg)
		return
	}
	if taken, err := s.barcodeTaken(ctx, p.Barcode, id); err != nil {
		fail(c, err)
		return
	} else if taken {
		c.JSON(http.StatusConflict, gin.H{"error": "barcode already in use"})
		return
	}
	p.ID = id
	if err := save(ctx, s.store, KindProduct, id, p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.store.Delete(c.Request.Context(), KindProduct, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) getProductImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	p, err := load[product.Product](c.Request.Context(), s.store, KindProduct, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product.Image{ImageURL: p.ImageURL})
}

func (s *Server) updateProductImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in product.Image
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.ImageURL) == "" {
		badRequest(c, "imageUrl is required")
		return
	}
	ctx := c.Request.Context()
	p, err := load[product.Product](ctx, s.store, KindProduct, id)
	if err != nil {
		fail(c, err)
		return
	}
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	if err := save(ctx, s.store, KindProduct, id, p); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
