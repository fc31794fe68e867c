package controllers

import (
	"net/http"

	"github.com/biyonik/groupbuy-api/internal/http/request"
	"github.com/biyonik/groupbuy-api/internal/http/response"
	"github.com/biyonik/groupbuy-api/internal/services"
)

// ParticipationController, kampanyaya katılım yaşam döngüsünü yönetir:
// katılma, ayrılma, kalan ödeme ve voucher.
type ParticipationController struct {
	participations *services.ParticipationManager
}

func NewParticipationController(participations *services.ParticipationManager) *ParticipationController {
	return &ParticipationController{participations: participations}
}

// Join handles POST /api/campaigns/{id}/join
func (c *ParticipationController) Join(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	campaignID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	var req struct {
		Quantity        int    `json:"quantity"`
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := r.ParseJSON(&req); err != nil {
		response.InvalidJSON(w)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	participation, err := c.participations.Join(r.Context(), userID, campaignID, req.Quantity, req.PaymentMethodID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, participation, nil)
}

// JoinByBody handles POST /api/participations/join
//
// Kampanya ID'sini gövdeden alan varyant; davranış Join ile aynıdır.
func (c *ParticipationController) JoinByBody(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	var req struct {
		CampaignID      int64  `json:"campaign_id"`
		Quantity        int    `json:"quantity"`
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := r.ParseJSON(&req); err != nil {
		response.InvalidJSON(w)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	participation, err := c.participations.Join(r.Context(), userID, req.CampaignID, req.Quantity, req.PaymentMethodID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, participation, nil)
}

// Leave handles DELETE /api/participations/{id} ve
// POST /api/participations/{id}/leave
func (c *ParticipationController) Leave(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	participationID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz katılım ID")
		return
	}

	participation, err := c.participations.Leave(r.Context(), userID, participationID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, participation, nil)
}

// PayFinal handles POST /api/participations/{id}/pay
func (c *ParticipationController) PayFinal(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	participationID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz katılım ID")
		return
	}

	var req struct {
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := r.ParseJSON(&req); err != nil {
		response.InvalidJSON(w)
		return
	}

	participation, err := c.participations.PayFinal(r.Context(), userID, participationID, req.PaymentMethodID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, participation, nil)
}

// PayFinalByBody handles POST /api/participations/pay-final
//
// Katılım ID'sini gövdeden alan varyant; davranış PayFinal ile aynıdır.
func (c *ParticipationController) PayFinalByBody(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	var req struct {
		ParticipationID int64  `json:"participation_id"`
		PaymentMethodID string `json:"payment_method_id"`
	}
	if err := r.ParseJSON(&req); err != nil {
		response.InvalidJSON(w)
		return
	}

	participation, err := c.participations.PayFinal(r.Context(), userID, req.ParticipationID, req.PaymentMethodID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, participation, nil)
}

// Show handles GET /api/participations/{id}
func (c *ParticipationController) Show(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	participationID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz katılım ID")
		return
	}

	participation, err := c.participations.GetByID(userID, role, participationID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, participation, nil)
}

// Mine handles GET /api/my/participations
func (c *ParticipationController) Mine(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	participations, err := c.participations.GetMyParticipations(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, participations, nil)
}

// Payments handles GET /api/my/payments
func (c *ParticipationController) Payments(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	payments, err := c.participations.GetMyPayments(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, payments, nil)
}

// PaymentShow handles GET /api/payments/{id}
func (c *ParticipationController) PaymentShow(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	paymentID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz ödeme ID")
		return
	}

	payment, err := c.participations.GetPaymentByID(userID, role, paymentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, payment, nil)
}

// CampaignPayments handles GET /api/campaigns/{id}/payments
func (c *ParticipationController) CampaignPayments(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	campaignID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	payments, err := c.participations.GetCampaignPayments(userID, role, campaignID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, payments, nil)
}

// Participants handles GET /api/campaigns/{id}/participants
func (c *ParticipationController) Participants(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	campaignID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	participants, err := c.participations.GetCampaignParticipants(userID, role, campaignID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, participants, nil)
}

// Voucher handles GET /api/participations/{id}/voucher
//
// Voucher QR kodunu PNG olarak döndürür.
func (c *ParticipationController) Voucher(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	participationID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz katılım ID")
		return
	}

	png, err := c.participations.VoucherImage(userID, role, participationID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
