package transport

import (
	"net/http"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/middleware"
	"aaamo-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const MsgCartCleared = "تم إفراغ السلة."

// AddCartItemRequest adds a catalog product to a cart
type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

// SetCartQuantityRequest overwrites a line's quantity; zero removes the line
type SetCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartView is a cart with its computed totals
type CartView struct {
	Items     []domain.CartItem `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
}

func newCartView(cart *domain.Cart) CartView {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartView{Items: items, Subtotal: cart.Subtotal(), ItemCount: cart.ItemCount()}
}

// CartHandler serves server-side carts keyed by a client-chosen id
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/carts/{cartID}", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.SetQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.Get(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, newCartView(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddCartItemRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), chi.URLParam(r, "cartID"), req.ProductID, req.Quantity)
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, newCartView(cart))
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetCartQuantityRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	cart, err := h.cartService.SetQuantity(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID"), req.Quantity)
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, newCartView(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartService.RemoveItem(r.Context(), chi.URLParam(r, "cartID"), chi.URLParam(r, "productID"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, newCartView(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cartService.Clear(r.Context(), chi.URLParam(r, "cartID")); err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgCartCleared, nil)
}
