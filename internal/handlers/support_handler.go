package handlers

import (
	"net/http"

	"tipjar_backend/internal/email"
	"tipjar_backend/internal/logger"
	"tipjar_backend/internal/services"
	"tipjar_backend/internal/services/dto"
	"tipjar_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type SupportHandler struct {
	*BaseHandler
	cfg    services.SupportConfig
	mailer email.Provider
}

func NewSupportHandler(base *BaseHandler, cfg services.SupportConfig, mailer email.Provider) *SupportHandler {
	return &SupportHandler{BaseHandler: base, cfg: cfg, mailer: mailer}
}

func (h *SupportHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public: supporters are identified by email, not a session.
	r.POST("/support", h.RecordSupport)
}

// RecordSupport godoc
// @Summary      Record a support event
// @Description  Records a one-time or recurring support payment and reconciles supporter, follow, plan and membership state in one transaction.
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        request body dto.SupportRequest true "Support event"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /support [post]
func (h *SupportHandler) RecordSupport(c *gin.Context) {
	var req dto.SupportRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	// The service is built over the request-scoped DB handle so tests can
	// route the whole flow through a transaction.
	svc := services.NewSupportService(h.GetDB(c), h.cfg, h.mailer)

	result, err := svc.RecordSupport(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// respondError maps any failure to the flat {success, error} contract the
// support widget consumes. No internal error detail crosses this boundary.
func (h *SupportHandler) respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(ctx, "support request failed", err, "path", c.Request.URL.Path)
	} else {
		logger.CtxWarn(ctx, "support request rejected", "error", appErr.Message, "path", c.Request.URL.Path)
	}

	c.JSON(appErr.HTTPCode, gin.H{
		"success": false,
		"error":   appErr.Message,
	})
}
