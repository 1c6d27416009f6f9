package adaptor

import (
	"net/http"

	"hbnb-booking/internal/usecase"
	"hbnb-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// VerifyPayment handles GET /api/payments/{ref}/verify (protected)
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if ref == "" {
		utils.ResponseBadRequest(w, "Payment reference is required", nil)
		return
	}

	verification, err := h.service.VerifyPayment(r.Context(), ref)
	if err != nil {
		respondServiceError(w, h.log, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "success", verification)
}
