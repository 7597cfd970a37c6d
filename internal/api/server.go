// Package api handles HTTP and WebSocket API endpoints
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/thestorefront/storefront-engine/internal/cart"
	"github.com/thestorefront/storefront-engine/internal/catalog"
	"github.com/thestorefront/storefront-engine/internal/renderer"
)

// Server is the API server
type Server struct {
	router   *gin.Engine
	catalog  *catalog.Catalog
	ledger   *cart.Ledger
	docs     *renderer.DocumentRenderer
	log      *slog.Logger
	upgrader websocket.Upgrader

	hub *wsHub
}

// NewServer creates a new API server
func NewServer(cat *catalog.Catalog, ledger *cart.Ledger, docs *renderer.DocumentRenderer, log *slog.Logger) *Server {
	// Set Gin to release mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(corsMiddleware())

	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	server := &Server{
		router:  router,
		catalog: cat,
		ledger:  ledger,
		docs:    docs,
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		hub: newWSHub(),
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	// Catalog
	s.router.GET("/products", s.handleGetProducts)
	s.router.GET("/product/:slug", s.handleGetProduct)
	s.router.GET("/product/:slug/barcode", s.handleGetBarcode)

	// Cart
	s.router.GET("/cart", s.handleGetCart)
	s.router.POST("/cart/items", s.handleAddItem)
	s.router.PUT("/cart/items/:id", s.handleSetQuantity)
	s.router.DELETE("/cart/items/:id", s.handleRemoveItem)
	s.router.POST("/cart/clear", s.handleClearCart)

	// Checkout
	s.router.POST("/checkout", s.handleCheckout)

	// WebSocket
	s.router.GET("/ws", s.handleWebSocket)

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// handleGetProducts returns the full catalog listing
func (s *Server) handleGetProducts(c *gin.Context) {
	products := s.catalog.Products()

	listing := make([]gin.H, len(products))
	for i, p := range products {
		listing[i] = gin.H{
			"id":          p.ID,
			"name":        p.Name,
			"brand":       p.Brand,
			"price":       p.Price,
			"offer_price": p.OfferPrice,
			"slug":        p.Slug,
			"is_in_stock": p.IsInStock,
			"thumbnail":   p.Thumbnail(),
		}
	}

	c.JSON(200, gin.H{"products": listing})
}

// handleGetProduct returns one product with its rendered description
func (s *Server) handleGetProduct(c *gin.Context) {
	slug := c.Param("slug")

	product, ok := s.catalog.BySlug(slug)
	if !ok {
		c.JSON(404, gin.H{"error": "product not found"})
		return
	}

	fragment := s.docs.Render(product.Description)

	c.JSON(200, gin.H{
		"product":          product,
		"description_html": fragment.HTML(),
	})
}

// handleGetBarcode returns a Code128 PNG of the product SKU
func (s *Server) handleGetBarcode(c *gin.Context) {
	slug := c.Param("slug")

	product, ok := s.catalog.BySlug(slug)
	if !ok {
		c.JSON(404, gin.H{"error": "product not found"})
		return
	}
	if product.SKU == "" {
		c.JSON(404, gin.H{"error": "product has no SKU"})
		return
	}

	png, err := skuBarcodePNG(product.SKU)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to generate barcode: %v", err)})
		return
	}

	c.Data(200, "image/png", png)
}

// handleGetCart returns the current cart snapshot
func (s *Server) handleGetCart(c *gin.Context) {
	c.JSON(200, cartJSON(s.ledger.State()))
}

// handleAddItem adds a product to the cart
func (s *Server) handleAddItem(c *gin.Context) {
	var req struct {
		ProductID int `json:"product_id" binding:"required"`
		Quantity  int `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "product_id is required"})
		return
	}

	product, ok := s.catalog.ByID(req.ProductID)
	if !ok {
		c.JSON(404, gin.H{"error": "product not found"})
		return
	}
	if !product.IsInStock {
		c.JSON(409, gin.H{"error": "product is out of stock"})
		return
	}

	state := s.ledger.Add(product, req.Quantity)
	s.broadcastCartUpdated(state)

	c.JSON(200, cartJSON(state))
}

// handleSetQuantity sets a cart line's quantity
func (s *Server) handleSetQuantity(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "quantity is required"})
		return
	}

	state := s.ledger.SetQuantity(id, req.Quantity)
	s.broadcastCartUpdated(state)

	c.JSON(200, cartJSON(state))
}

// handleRemoveItem removes a cart line
func (s *Server) handleRemoveItem(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}

	state := s.ledger.Remove(id)
	s.broadcastCartUpdated(state)

	c.JSON(200, cartJSON(state))
}

// handleClearCart empties the cart and its durable mirror
func (s *Server) handleClearCart(c *gin.Context) {
	state := s.ledger.Clear()
	s.broadcastCartUpdated(state)

	c.JSON(200, cartJSON(state))
}

// handleCheckout completes the order: the cart is cleared and the response
// carries the order id plus a QR code linking to the order status page.
func (s *Server) handleCheckout(c *gin.Context) {
	state := s.ledger.State()
	if len(state.Lines) == 0 {
		c.JSON(400, gin.H{"error": "cart is empty"})
		return
	}

	orderID := uuid.New().String()
	subtotal := state.Subtotal()

	qr, err := orderQRCodePNG(orderID)
	if err != nil {
		// The order still completes; the QR is decoration.
		s.log.Warn("failed to generate order QR code", "error", err)
	}

	cleared := s.ledger.Clear()
	s.broadcastCartUpdated(cleared)
	s.broadcastOrderCompleted(orderID, subtotal)

	s.log.Info("order completed", "order_id", orderID, "lines", len(state.Lines), "subtotal", subtotal)

	resp := gin.H{
		"success":  true,
		"order_id": orderID,
		"subtotal": subtotal,
		"lines":    state.Lines,
	}
	if len(qr) > 0 {
		resp["qr_png_base64"] = qr
	}
	c.JSON(200, resp)
}

func intParam(c *gin.Context, name string) (int, bool) {
	var id int
	if _, err := fmt.Sscanf(c.Param(name), "%d", &id); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("%s must be an integer", name)})
		return 0, false
	}
	return id, true
}

func cartJSON(state cart.State) gin.H {
	lines := state.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return gin.H{
		"lines":    lines,
		"subtotal": state.Subtotal(),
	}
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
