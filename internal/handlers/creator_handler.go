package handlers

import (
	"net/http"

	"tipjar_backend/internal/services"
	"tipjar_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CreatorHandler struct {
	*BaseHandler
}

func NewCreatorHandler(base *BaseHandler) *CreatorHandler {
	return &CreatorHandler{BaseHandler: base}
}

func (h *CreatorHandler) RegisterRoutes(r *gin.RouterGroup, authRequired, creatorOnly gin.HandlerFunc) {
	// Public creator pages
	creators := r.Group("/creators")
	{
		creators.GET("/:username", h.GetProfile)
		creators.GET("/:username/plans", h.GetPlans)
	}

	// Creator dashboard
	me := r.Group("/me")
	me.Use(authRequired, creatorOnly)
	{
		me.GET("/payments", h.GetPayments)
		me.GET("/followers", h.GetFollowers)
		me.GET("/memberships", h.GetMemberships)
		me.PATCH("/plans/:planId", h.UpdatePlan)
	}
}

// GetProfile godoc
// @Summary  Public creator profile
// @Tags     creators
// @Produce  json
// @Param    username path string true "Creator username"
// @Success  200 {object} dto.CreatorProfileResponse
// @Router   /creators/{username} [get]
func (h *CreatorHandler) GetProfile(c *gin.Context) {
	svc := services.NewCreatorService(h.GetDB(c))

	profile, err := svc.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetPlans godoc
// @Summary  Active plans of a creator
// @Tags     creators
// @Produce  json
// @Param    username path string true "Creator username"
// @Success  200 {object} map[string]interface{}
// @Router   /creators/{username}/plans [get]
func (h *CreatorHandler) GetPlans(c *gin.Context) {
	svc := services.NewCreatorService(h.GetDB(c))

	plans, err := svc.GetPlans(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans, "total": len(plans)})
}

// GetPayments godoc
// @Summary   Received payments
// @Tags      dashboard
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} map[string]interface{}
// @Router    /me/payments [get]
func (h *CreatorHandler) GetPayments(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	svc := services.NewCreatorService(h.GetDB(c))
	payments, err := svc.GetPayments(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetFollowers godoc
// @Summary   Followers
// @Tags      dashboard
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} map[string]interface{}
// @Router    /me/followers [get]
func (h *CreatorHandler) GetFollowers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	svc := services.NewCreatorService(h.GetDB(c))
	followers, total, err := svc.GetFollowers(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"total":     total,
		"page":      page,
	})
}

// GetMemberships godoc
// @Summary   Memberships on the creator's plans
// @Tags      dashboard
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} map[string]interface{}
// @Router    /me/memberships [get]
func (h *CreatorHandler) GetMemberships(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	svc := services.NewCreatorService(h.GetDB(c))
	memberships, err := svc.GetMemberships(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"memberships": memberships})
}

// UpdatePlan godoc
// @Summary   Rename or (de)activate an own plan
// @Tags      dashboard
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     planId path string true "Plan ID"
// @Param     request body dto.UpdatePlanRequest true "Fields to update"
// @Success   200 {object} dto.PlanResponse
// @Router    /me/plans/{planId} [patch]
func (h *CreatorHandler) UpdatePlan(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePlanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	svc := services.NewCreatorService(h.GetDB(c))
	plan, err := svc.UpdatePlan(c.Request.Context(), userID, c.Param("planId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
