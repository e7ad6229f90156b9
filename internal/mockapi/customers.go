package mockapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/pos-facade/internal/customer"
)

func (s *Server) listCustomers(c *gin.Context) {
	out, err := loadAll[customer.Customer](c.Request.Context(), s.store, KindCustomer)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	cu, err := load[customer.Customer](c.Request.Context(), s.store, KindCustomer, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cu)
}

func (s *Server) createCustomer(c *gin.Context) {
	var cu customer.Customer
	if err := c.ShouldBindJSON(&cu); err != nil || strings.TrimSpace(cu.Name) == "" {
		badRequest(c, "name is required")
		return
	}
	ctx := c.Request.Context()
	id, err := s.store.NextID(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	cu.ID = id
	if err := save(ctx, s.store, KindCustomer, id, cu); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cu)
}

func (s *Server) updateCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := s.store.Get(ctx, KindCustomer, id); err != nil {
		fail(c, err)
		return
	}
	var cu customer.Customer
	if err := c.ShouldBindJSON(&cu); err != nil || strings.TrimSpace(cu.Name) == "" {
		badRequest(c, "name is required")
		return
	}
	cu.ID = id
	if err := save(ctx, s.store, KindCustomer, id, cu); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cu)
}

func (s *Server) deleteCustomer(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.store.Delete(c.Request.Context(), KindCustomer, id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
