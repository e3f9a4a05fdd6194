package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/services"
)

type StoreHandler struct {
	svc *services.StoreService
}

func NewStoreHandler(svc *services.StoreService) *StoreHandler {
	return &StoreHandler{svc: svc}
}

type connectStoreRequest struct {
	MarketplaceID string `json:"marketplace_id" binding:"required"`
	Name          string `json:"name" binding:"required"`
}

func (h *StoreHandler) RegisterRoutes(router *gin.RouterGroup) {
	stores := router.Group("/stores")
	{
		stores.POST("", h.Connect)
		stores.GET("", h.List)
		stores.GET("/:id", h.Get)
		stores.DELETE("/:id", h.Disconnect)
	}
}

// Connect godoc
// @Summary      Connect a marketplace store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      connectStoreRequest  true  "store"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  errorResponse
// @Router       /stores [post]
func (h *StoreHandler) Connect(c *gin.Context) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "merchant context missing"})
		return
	}

	var req connectStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	store, err := h.svc.Connect(c.Request.Context(), services.ConnectStoreInput{
		MerchantID:    merchantID,
		MarketplaceID: req.MarketplaceID,
		Name:          req.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, store)
}

// List godoc
// @Summary      List connected stores
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Store
// @Router       /stores [get]
func (h *StoreHandler) List(c *gin.Context) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "merchant context missing"})
		return
	}

	stores, err := h.svc.ListByMerchantID(c.Request.Context(), merchantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

// Get godoc
// @Summary      Get one store
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "store id"
// @Success      200  {object}  domain.Store
// @Failure      404  {object}  errorResponse
// @Router       /stores/{id} [get]
func (h *StoreHandler) Get(c *gin.Context) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "merchant context missing"})
		return
	}

	store, err := h.svc.Get(c.Request.Context(), c.Param("id"), merchantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, store)
}

// Disconnect godoc
// @Summary      Disconnect a store and drop its cached metrics
// @Tags         stores
// @Security     BearerAuth
// @Param        id  path  string  true  "store id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /stores/{id} [delete]
func (h *StoreHandler) Disconnect(c *gin.Context) {
	merchantID, ok := middleware.GetMerchantID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "merchant context missing"})
		return
	}

	if err := h.svc.Disconnect(c.Request.Context(), c.Param("id"), merchantID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
