package transport

import (
	"errors"
	"net/http"

	"aaamo-store/internal/middleware"
	"aaamo-store/internal/repository"
	"aaamo-store/internal/service"

	"go.uber.org/zap"
)

const (
	MsgIncompleteData        = "يرجى ملء جميع الحقول المطلوبة."
	MsgIncompleteOrder       = "بيانات الطلب غير كاملة. يرجى ملء جميع الحقول الإلزامية."
	MsgIncompleteTracking    = "الرجاء إدخال رقم الطلب وتفاصيل التحقق (رقم الهاتف أو البريد الإلكتروني)."
	MsgIncompleteOffer       = "بيانات العرض غير كاملة أو غير صالحة."
	MsgIncompleteLogin       = "يرجى إدخال البريد الإلكتروني وكلمة المرور."
	MsgEmailRequired         = "البريد الإلكتروني مطلوب."
	MsgUnsupportedRegion     = "محافظة الشحن غير مدعومة حاليًا."
	MsgInvalidPaymentMethod  = "طريقة الدفع المختارة غير صالحة."
	MsgInvalidPhone          = "رقم الهاتف الرئيسي غير صحيح. يجب أن يكون 11 رقمًا ويبدأ بـ 010, 011, 012, أو 015."
	MsgInvalidAlternatePhone = "رقم الهاتف الاحتياطي غير صحيح. يجب أن يكون 11 رقمًا ويبدأ بـ 010, 011, 012, أو 015."
	MsgInvalidEmail          = "الرجاء إدخال عنوان بريد إلكتروني صحيح."
	MsgOrderNotFound         = "لم يتم العثور على الطلب."
	MsgInvalidStatus         = "حالة الطلب المحددة غير صالحة."
	MsgInvalidTransition     = "لا يمكن نقل الطلب إلى هذه الحالة من حالته الحالية."
	MsgVerificationMismatch  = "تفاصيل التحقق (رقم الهاتف أو البريد الإلكتروني) غير متطابقة مع الطلب. يرجى التأكد من البيانات والمحاولة مرة أخرى."
	MsgProductNotFound       = "المنتج غير موجود."
	MsgInsufficientStock     = "الكمية المطلوبة غير متوفرة حاليًا في المخزون."
	MsgInvalidProduct        = "بيانات المنتج غير صالحة."
	MsgCategoryNotFound      = "التصنيف غير موجود."
	MsgOfferNotFound         = "العرض غير موجود."
	MsgInvalidOfferDates     = "تاريخ البدء يجب أن يكون قبل تاريخ الانتهاء."
	MsgInvalidDiscount       = "نسبة الخصم يجب أن تكون بين 0 و 100."
	MsgMessageNotFound       = "لم يتم العثور على الرسالة."
	MsgInvalidCartID         = "معرف السلة غير صالح."
	MsgInvalidCredentials    = "البريد الإلكتروني أو كلمة المرور غير صحيحة."
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// knownErrors maps service and repository sentinels to HTTP responses
var knownErrors = []errorMapping{
	{service.ErrIncompleteData, http.StatusBadRequest, MsgIncompleteData},
	{service.ErrUnsupportedRegion, http.StatusBadRequest, MsgUnsupportedRegion},
	{service.ErrInvalidPaymentMethod, http.StatusBadRequest, MsgInvalidPaymentMethod},
	{service.ErrInvalidPhone, http.StatusBadRequest, MsgInvalidPhone},
	{service.ErrInvalidAlternatePhone, http.StatusBadRequest, MsgInvalidAlternatePhone},
	{service.ErrInvalidEmail, http.StatusBadRequest, MsgInvalidEmail},
	{service.ErrInvalidStatus, http.StatusBadRequest, MsgInvalidStatus},
	{service.ErrInvalidTransition, http.StatusConflict, MsgInvalidTransition},
	{service.ErrVerificationMismatch, http.StatusForbidden, MsgVerificationMismatch},
	{service.ErrInvalidProduct, http.StatusBadRequest, MsgInvalidProduct},
	{service.ErrInvalidOfferDates, http.StatusBadRequest, MsgInvalidOfferDates},
	{service.ErrInvalidDiscount, http.StatusBadRequest, MsgInvalidDiscount},
	{service.ErrInvalidCartID, http.StatusBadRequest, MsgInvalidCartID},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, MsgInvalidCredentials},
	{repository.ErrOrderNotFound, http.StatusNotFound, MsgOrderNotFound},
	{repository.ErrProductNotFound, http.StatusNotFound, MsgProductNotFound},
	{repository.ErrInsufficientStock, http.StatusConflict, MsgInsufficientStock},
	{repository.ErrCategoryNotFound, http.StatusNotFound, MsgCategoryNotFound},
	{repository.ErrOfferNotFound, http.StatusNotFound, MsgOfferNotFound},
	{repository.ErrMessageNotFound, http.StatusNotFound, MsgMessageNotFound},
}

// respondServiceError writes the envelope for err. incompleteMsg replaces the
// generic incomplete-data message when the caller has a more specific one.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error, incompleteMsg string) {
	for _, m := range knownErrors {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := m.message
		if m.err == service.ErrIncompleteData && incompleteMsg != "" {
			msg = incompleteMsg
		}
		logger.Debug("Request rejected", zap.Error(err), zap.Int("status", m.status))
		middleware.RespondWithError(w, m.status, msg)
		return
	}

	logger.Error("Request failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, middleware.MsgInternalError)
}

// decodeBody decodes and validates a JSON body, answering the client itself on failure
func decodeBody(w http.ResponseWriter, r *http.Request, logger *zap.Logger, v interface{}) bool {
	if err := middleware.DecodeAndValidate(r, v); err != nil {
		logger.Debug("Request validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return false
		}

		middleware.RespondWithError(w, http.StatusBadRequest, middleware.MsgInvalidBody)
		return false
	}
	return true
}
