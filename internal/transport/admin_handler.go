package transport

import (
	"fmt"
	"net/http"
	"time"

	"aaamo-store/internal/domain"
	"aaamo-store/internal/middleware"
	"aaamo-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	MsgProductCreated   = "تمت إضافة المنتج بنجاح!"
	MsgProductUpdated   = "تم تحديث المنتج بنجاح!"
	MsgProductDeleted   = "تم حذف المنتج بنجاح."
	MsgOfferCreated     = "تمت إضافة العرض بنجاح!"
	MsgOfferUpdated     = "تم تحديث العرض بنجاح!"
	MsgOfferDeleted     = "تم حذف العرض بنجاح."
	MsgStatusUpdated    = "تم تحديث حالة الطلب بنجاح."
	MsgMessageToggled   = "تم تحديث حالة الرسالة."
	MsgMessageDeleted   = "تم حذف الرسالة بنجاح."
	MsgSettingsUpdated  = "تم تحديث إعدادات الموقع بنجاح!"
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFileDateStamp = "20060102"
)

// ProductRequest is the admin product form
type ProductRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	ImageURLs    []string `json:"imageUrls" validate:"required,min=1,max=5,dive,url"`
	Price        float64  `json:"price" validate:"gt=0"`
	CategorySlug string   `json:"categorySlug" validate:"required"`
	Stock        int      `json:"stock" validate:"gte=0"`
}

// OfferRequest is the admin offer form. Dates and discount are checked by the
// offer service so the client gets the specific message.
type OfferRequest struct {
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	ProductID          string    `json:"productId"`
	CategorySlug       string    `json:"categorySlug"`
	DiscountPercentage *float64  `json:"discountPercentage"`
	ImageURL           string    `json:"imageUrl" validate:"omitempty,url"`
	CouponCode         string    `json:"couponCode"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	IsActive           bool      `json:"isActive"`
}

// UpdateStatusRequest changes an order's status. Keys and Arabic labels are both accepted.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SettingsRequest is the site settings form
type SettingsRequest struct {
	SiteName       string `json:"siteName"`
	FacebookURL    string `json:"facebookUrl" validate:"omitempty,url"`
	InstagramURL   string `json:"instagramUrl" validate:"omitempty,url"`
	WhatsappNumber string `json:"whatsappNumber"`
	PhoneNumber    string `json:"phoneNumber"`
	Email          string `json:"email"`
}

// AdminHandler serves the back-office API
type AdminHandler struct {
	catalogService  service.CatalogService
	offerService    service.OfferService
	orderService    service.OrderService
	messageService  service.MessageService
	settingsService service.SettingsService
	statsService    service.StatsService
	live            http.Handler
	logger          *zap.Logger
}

// NewAdminHandler creates a new AdminHandler. live serves the order event
// stream and may be nil.
func NewAdminHandler(
	catalogService service.CatalogService,
	offerService service.OfferService,
	orderService service.OrderService,
	messageService service.MessageService,
	settingsService service.SettingsService,
	statsService service.StatsService,
	live http.Handler,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		catalogService:  catalogService,
		offerService:    offerService,
		orderService:    orderService,
		messageService:  messageService,
		settingsService: settingsService,
		statsService:    statsService,
		live:            live,
		logger:          logger,
	}
}

// RegisterRoutes registers all admin routes behind auth and the admin role
func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware, requireAdmin func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(requireAdmin)

		r.Get("/stats", h.Stats)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/{id}", h.GetProduct)
			r.Put("/{id}", h.UpdateProduct)
			r.Delete("/{id}", h.DeleteProduct)
		})

		r.Route("/offers", func(r chi.Router) {
			r.Get("/", h.ListOffers)
			r.Post("/", h.CreateOffer)
			r.Get("/{id}", h.GetOffer)
			r.Put("/{id}", h.UpdateOffer)
			r.Delete("/{id}", h.DeleteOffer)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Get("/export", h.ExportOrders)
			if h.live != nil {
				r.Method(http.MethodGet, "/live", h.live)
			}
			r.Get("/{id}", h.GetOrder)
			r.Patch("/{id}/status", h.UpdateOrderStatus)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Get("/", h.ListMessages)
			r.Patch("/{id}/read", h.ToggleMessageRead)
			r.Delete("/{id}", h.DeleteMessage)
		})

		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
	})
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Stats(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, stats)
}

func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogService.ListProducts(r.Context(), productFilterFromQuery(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, products)
}

func (h *AdminHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogService.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, product)
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:         r.Name,
		Description:  r.Description,
		ImageURLs:    r.ImageURLs,
		Price:        r.Price,
		CategorySlug: r.CategorySlug,
		Stock:        r.Stock,
	}
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), req.input())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID))
	middleware.RespondWithSuccess(w, http.StatusCreated, MsgProductCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	product, err := h.catalogService.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgProductUpdated, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}

	h.logger.Info("Product deleted", zap.String("product_id", id))
	middleware.RespondWithSuccess(w, http.StatusOK, MsgProductDeleted, nil)
}

func (h *AdminHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.offerService.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, offers)
}

func (h *AdminHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offerService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, offer)
}

func (r OfferRequest) input() service.OfferInput {
	return service.OfferInput{
		Title:              r.Title,
		Description:        r.Description,
		ProductID:          r.ProductID,
		CategorySlug:       r.CategorySlug,
		DiscountPercentage: r.DiscountPercentage,
		ImageURL:           r.ImageURL,
		CouponCode:         r.CouponCode,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		IsActive:           r.IsActive,
	}
}

func (h *AdminHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req OfferRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	offer, err := h.offerService.Create(r.Context(), req.input())
	if err != nil {
		respondServiceError(w, h.logger, err, MsgIncompleteOffer)
		return
	}

	h.logger.Info("Offer created", zap.String("offer_id", offer.ID))
	middleware.RespondWithSuccess(w, http.StatusCreated, MsgOfferCreated, offer)
}

func (h *AdminHandler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	var req OfferRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	offer, err := h.offerService.Update(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		respondServiceError(w, h.logger, err, MsgIncompleteOffer)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOfferUpdated, offer)
}

func (h *AdminHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	if err := h.offerService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOfferDeleted, nil)
}

// ListOrders supports ?status=<key or Arabic label>
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var filter *domain.OrderStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, ok := domain.ParseOrderStatus(raw)
		if !ok {
			respondServiceError(w, h.logger, service.ErrInvalidStatus, "")
			return
		}
		filter = &status
	}

	orders, err := h.orderService.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, orders)
}

func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, order)
}

func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgStatusUpdated, order)
}

// ExportOrders streams every order as an xlsx attachment
func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	file, err := h.statsService.ExportOrders(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format(exportFileDateStamp))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if err := file.Write(w); err != nil {
		h.logger.Error("Failed to write orders export", zap.Error(err))
	}
}

func (h *AdminHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageService.List(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, messages)
}

func (h *AdminHandler) ToggleMessageRead(w http.ResponseWriter, r *http.Request) {
	message, err := h.messageService.ToggleRead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgMessageToggled, message)
}

func (h *AdminHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.messageService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgMessageDeleted, nil)
}

func (h *AdminHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, err, "")
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgOK, settings)
}

func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	settings, err := h.settingsService.Update(r.Context(), domain.SiteSettings{
		SiteName:       req.SiteName,
		FacebookURL:    req.FacebookURL,
		InstagramURL:   req.InstagramURL,
		WhatsappNumber: req.WhatsappNumber,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
	})
	if err != nil {
		respondServiceError(w, h.logger, err, MsgEmailRequired)
		return
	}
	middleware.RespondWithSuccess(w, http.StatusOK, MsgSettingsUpdated, settings)
}
