package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/services"
)

type Handler struct {
	catalog *services.CatalogService
	orders  *services.OrderService
}

func NewHandler(catalog *services.CatalogService, orders *services.OrderService) *Handler {
	return &Handler{catalog: catalog, orders: orders}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(cors())

	api := r.Group("/api")
	api.GET("/products", h.ListProducts)
	api.POST("/products", h.CreateProduct)
	api.PUT("/products/:id", h.UpdateProduct)
	api.DELETE("/products/:id", h.DeleteProduct)

	api.POST("/orders", h.CreateOrder)
	api.GET("/orders", h.GetOrders)
	api.PUT("/orders/:id", h.UpdateOrderStatus)
}

// cors mirrors the permissive policy the original backend shipped with.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.catalog.Create(c.Request.Context(), productInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	p, err := h.catalog.Update(c.Request.Context(), c.Param("id"), productInput(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	o, err := h.orders.Create(c.Request.Context(), services.OrderInput{
		ProductID:    req.ProductID,
		BuyerName:    req.BuyerName,
		BuyerEmail:   req.BuyerEmail,
		BuyerAddress: req.BuyerAddress,
		BuyerCell:    req.BuyerCell,
		Quantity:     string(req.Quantity),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// GetOrders looks up by orderId or buyerEmail. orderId wins when both are
// present; the by-id result is normalized into a one-element array so both
// paths render the same.
func (h *Handler) GetOrders(c *gin.Context) {
	orderID := c.Query("orderId")
	buyerEmail := c.Query("buyerEmail")

	switch {
	case orderID != "":
		o, err := h.orders.Get(c.Request.Context(), orderID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, []domain.Order{*o})
	case buyerEmail != "":
		out, err := h.orders.ListByEmail(c.Request.Context(), buyerEmail)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either orderId or buyerEmail"})
	}
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	o, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func productInput(req ProductRequest) services.ProductInput {
	return services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       string(req.Price),
		ImageURL:    req.ImageURL,
		Category:    req.Category,
	}
}

// writeError maps the service error taxonomy onto status codes. Store-level
// causes are logged, never sent to the client.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var te *domain.TransitionError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &te):
		c.JSON(http.StatusConflict, gin.H{"error": te.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		log.Printf("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
