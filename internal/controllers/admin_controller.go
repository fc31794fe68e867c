package controllers

import (
	"net/http"

	"github.com/biyonik/groupbuy-api/internal/http/request"
	"github.com/biyonik/groupbuy-api/internal/http/response"
	"github.com/biyonik/groupbuy-api/internal/services"
)

// AdminController, yönetici operasyonlarını yönetir. Tüm route'lar Auth +
// Role("admin") middleware'leri arkasındadır.
type AdminController struct {
	adminService *services.AdminService
}

func NewAdminController(adminService *services.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// ForceCancel handles POST /api/admin/campaigns/{id}/cancel
func (c *AdminController) ForceCancel(w http.ResponseWriter, r *request.Request) {
	campaignID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if r.IsJSON() {
		if err := r.ParseJSON(&req); err != nil {
			response.InvalidJSON(w)
			return
		}
	}

	campaign, err := c.adminService.ForceCancel(r.Context(), campaignID, req.Reason)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaign, nil)
}

// BanUser handles POST /api/admin/users/{id}/ban
func (c *AdminController) BanUser(w http.ResponseWriter, r *request.Request) {
	userID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kullanıcı ID")
		return
	}

	user, err := c.adminService.BanUser(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, user, nil)
}

// UnbanUser handles POST /api/admin/users/{id}/unban
func (c *AdminController) UnbanUser(w http.ResponseWriter, r *request.Request) {
	userID, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kullanıcı ID")
		return
	}

	user, err := c.adminService.UnbanUser(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, user, nil)
}

// ListUsers handles GET /api/admin/users
func (c *AdminController) ListUsers(w http.ResponseWriter, r *request.Request) {
	page := r.QueryInt("page", 1)
	perPage := r.QueryInt("per_page", 20)

	users, err := c.adminService.ListUsers(page, perPage)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, users, map[string]interface{}{
		"page":     page,
		"per_page": perPage,
	})
}

// ListPayments handles GET /api/admin/payments
func (c *AdminController) ListPayments(w http.ResponseWriter, r *request.Request) {
	page := r.QueryInt("page", 1)
	perPage := r.QueryInt("per_page", 20)

	payments, err := c.adminService.ListPayments(page, perPage)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, payments, map[string]interface{}{
		"page":     page,
		"per_page": perPage,
	})
}

// Dashboard handles GET /api/admin/dashboard
func (c *AdminController) Dashboard(w http.ResponseWriter, r *request.Request) {
	stats, err := c.adminService.Dashboard()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, stats, nil)
}
