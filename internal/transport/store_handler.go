package transport

import (
	"net/http"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/middleware"
	"aaamo-store/internal/repository"
	"aaamo-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	MsgOrderCreated = "تم إنشاء طلبك بنجاح! رقم طلبك هو: "
	MsgOrderFound   = "تم العثور على الطلب."
	MsgMessageSent  = "تم إرسال رسالتك بنجاح. شكراً لتواصلك!"
	MsgOK           = "تمت العملية بنجاح."
)

// CheckoutRequest is the storefront checkout form. When cartItems is empty the
// items of the server-side cart cartId are used instead.
type CheckoutRequest struct {
	UserID                 *string           `json:"userId"`
	CartID                 string            `json:"cartId"`
	CustomerName           string            `json:"customerName"`
	CustomerPhone          string            `json:"customerPhone"`
	CustomerAlternatePhone string            `json:"customerAlternatePhone"`
	CustomerAddress        string            `json:"customerAddress"`
	CustomerLandmark       string            `json:"customerLandmark"`
	CustomerEmail          string            `json:"customerEmail"`
	CustomerGovernorate    string            `json:"customerGovernorate"`
	PaymentMethod          string            `json:"paymentMethod"`
	CartItems              []domain.CartItem `json:"cartItems"`
}

// TrackRequest looks an order up for a customer
type TrackRequest struct {
	OrderID            string `json:"orderId"`
	VerificationDetail string `json:"verificationDetail"`
}

// ContactRequest is the contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// VocabularyEntry is a key with its Arabic display label
type VocabularyEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// CategoryProducts is a category with its products
type CategoryProducts struct {
	Category *domain.Category  `json:"category"`
	Products []*domain.Product `json:"products"`
}

// StoreHandler serves the public storefront
type StoreHandler struct {
	catalogService  service.CatalogService
	offerService    service.OfferService
	orderService    service.OrderService
	cartService     service.CartService
	messageService  service.MessageService
	settingsService service.SettingsService
	logger          *zap.Logger
}

// NewStoreHandler creates a new StoreHandler
func NewStoreHandler(
	catalogService service.CatalogService,
	offerService service.OfferService,
	orderService service.OrderService,
	cartService service.CartService,
	messageService service.MessageService,
	settingsService service.SettingsService,
	logger *zap.Logger,
) *StoreHandler {
	return &StoreHandler{
		catalogService:  catalogService,
		offerService:    offerService,
		orderService:    orderService,
		cartService:     cartService,
		messageService:  messageService,
		settingsService: settingsService,
		logger:          logger,
	}
}

// RegisterRoutes registers the storefront routes. limiter guards the form
// submissions and may be nil.
func (h *StoreHandler) RegisterRoutes(r chi.Router, limiter func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/governorates", h.ListGovernorates)
		r.Get("/order-statuses", h.ListOrderStatuses)
		r.Get("/payment-methods", h.ListPaymentMethods)

		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{slug}/products", h.CategoryProducts)
		r.Get("/offers", h.ListOffers)
		r.Get("/settings", h.GetSettings)

		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter)
			}
			r.Post("/checkout", h.Checkout)
			r.Post("/orders/track", h.TrackOrder)
			r.Post("/contact", h.Contact)
		})
	})
}

func (h *StoreHandler) ListGovernorates(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, domain.Governorates())
}

func (h *StoreHandler) ListOrderStatuses(w http.ResponseWriter, r *http.Request) {
	out := make([]VocabularyEntry, 0, len(domain.OrderStatuses))
	for _, s := range domain.OrderStatuses {
		out = append(out, VocabularyEntry{Key: string(s), Label: s.Label()})
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, out)
}

func (h *StoreHandler) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	out := make([]VocabularyEntry, 0, len(domain.PaymentMethods))
	for _, m := range domain.PaymentMethods {
		out = append(out, VocabularyEntry{Key: string(m), Label: m.Label()})
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, out)
}

// ListProducts supports ?category=<slug> and ?q=<search>
func (h *StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context(), productFilterFromQuery(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, products)
}

func (h *StoreHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, product)
}

func (h *StoreHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, categories)
}

func (h *StoreHandler) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	category, products, err := h.catalogService.ProductsByCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, CategoryProducts{Category: category, Products: products})
}

// ListOffers returns only the offers running right now
func (h *StoreHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offerService.ListLive(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, offers)
}

func (h *StoreHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, settings)
}

func productFilterFromQuery(r *http.Request) repository.ProductFilter {
	return repository.ProductFilter{
		CategorySlug: r.URL.Query().Get("category"),
		Query:        r.URL.Query().Get("q"),
	}
}

// Checkout places an order. The server-side cart is emptied only when its items were bought.
func (h *StoreHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	items := req.CartItems
	fromCart := len(items) == 0 && req.CartID != ""
	if fromCart {
		cart, err := h.cartService.Get(r.Context(), req.CartID)
		if err != nil {
			respondServiceError(w, h.logger, err, MsgIncompleteOrder)
			return
		}
		items = cart.Items
	}

	order, err := h.orderService.Checkout(r.Context(), service.CheckoutInput{
		UserID:                 req.UserID,
		CustomerName:           req.CustomerName,
		CustomerPhone:          req.CustomerPhone,
		CustomerAlternatePhone: req.CustomerAlternatePhone,
		CustomerAddress:        req.CustomerAddress,
		CustomerLandmark:       req.CustomerLandmark,
		CustomerEmail:          req.CustomerEmail,
		CustomerGovernorate:    req.CustomerGovernorate,
		PaymentMethod:          req.PaymentMethod,
		CartItems:              items,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, MsgIncompleteOrder)
		return
	}

	if fromCart {
		if err := h.cartService.Clear(r.Context(), req.CartID); err != nil {
			h.logger.Warn("Failed to clear cart after checkout",
				zap.String("cart_id", req.CartID), zap.Error(err))
		}
	}

	h.logger.Info("Order placed", zap.String("order_id", order.ID), zap.Float64("final_amount", order.FinalAmount))
	middleware.RespondWithSuccess(w, http.StatusCreated, MsgOrderCreated+order.ID, order)
}

func (h *StoreHandler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	var req TrackRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	order, err := h.orderService.Track(r.Context(), req.OrderID, req.VerificationDetail)
	if err != nil {
		respondServiceError(w, h.logger, err, MsgIncompleteTracking)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOrderFound, order)
}

func (h *StoreHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	message, err := h.messageService.Submit(r.Context(), service.MessageInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Content: req.Content,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusCreated, MsgMessageSent, message)
}
