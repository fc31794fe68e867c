package controllers

import (
	"net/http"

	"github.com/biyonik/groupbuy-api/internal/http/request"
	"github.com/biyonik/groupbuy-api/internal/http/response"
	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/internal/services"
)

// CampaignController, kampanya CRUD ve yaşam döngüsü isteklerini yönetir.
type CampaignController struct {
	campaignService *services.CampaignService
}

func NewCampaignController(campaignService *services.CampaignService) *CampaignController {
	return &CampaignController{campaignService: campaignService}
}

// Index handles GET /api/campaigns
//
// Query parametreleri: status, category, search, page, per_page
func (c *CampaignController) Index(w http.ResponseWriter, r *request.Request) {
	filter := models.CampaignFilter{
		Page:     r.QueryInt("page", 1),
		PerPage:  r.QueryInt("per_page", 20),
		Status:   models.CampaignStatus(r.Query("status", "")),
		Category: r.Query("category", ""),
		Search:   r.Query("search", ""),
	}

	campaigns, total, err := c.campaignService.GetAll(filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaigns, map[string]interface{}{
		"page":     filter.Page,
		"per_page": filter.PerPage,
		"total":    total,
	})
}

// Show handles GET /api/campaigns/{id}
func (c *CampaignController) Show(w http.ResponseWriter, r *request.Request) {
	id, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	campaign, err := c.campaignService.GetByID(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaign, nil)
}

// Stats handles GET /api/campaigns/{id}/stats
func (c *CampaignController) Stats(w http.ResponseWriter, r *request.Request) {
	id, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	stats, err := c.campaignService.Stats(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, stats, nil)
}

// Create handles POST /api/campaigns
func (c *CampaignController) Create(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	var input services.CampaignInput
	if err := r.ParseJSON(&input); err != nil {
		response.InvalidJSON(w)
		return
	}

	campaign, err := c.campaignService.Create(r.Context(), userID, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, campaign, nil)
}

// Update handles PUT /api/campaigns/{id}
func (c *CampaignController) Update(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	id, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	var input services.CampaignInput
	if err := r.ParseJSON(&input); err != nil {
		response.InvalidJSON(w)
		return
	}

	campaign, err := c.campaignService.Update(r.Context(), userID, role, id, input)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaign, nil)
}

// Cancel handles POST /api/campaigns/{id}/cancel
func (c *CampaignController) Cancel(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	id, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	campaign, err := c.campaignService.Cancel(r.Context(), userID, role, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaign, nil)
}

// Finalize handles POST /api/campaigns/{id}/finalize
func (c *CampaignController) Finalize(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	id, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	campaign, err := c.campaignService.Finalize(r.Context(), userID, role, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaign, nil)
}

// Activate handles POST /api/campaigns/{id}/activate
func (c *CampaignController) Activate(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}
	role, _ := r.AuthUserRole()

	id, err := r.RouteParamInt64("id")
	if err != nil {
		response.BadRequest(w, "Geçersiz kampanya ID")
		return
	}

	campaign, err := c.campaignService.Activate(r.Context(), userID, role, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaign, nil)
}

// Mine handles GET /api/my/campaigns
func (c *CampaignController) Mine(w http.ResponseWriter, r *request.Request) {
	userID, err := r.AuthUserID()
	if err != nil {
		response.Unauthorized(w, "")
		return
	}

	campaigns, err := c.campaignService.GetMyCampaigns(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response.Success(w, http.StatusOK, campaigns, nil)
}
