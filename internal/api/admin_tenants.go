package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lalith-99/pressgate/internal/cache"
	"github.com/lalith-99/pressgate/internal/middleware"
	"github.com/lalith-99/pressgate/internal/models"
	"github.com/lalith-99/pressgate/internal/service"
)

// TenantHandler covers the admin tenant surface. Authorization lives in
// the service; the handler's only jobs are binding, parameter plumbing,
// and CORS-cache invalidation after writes.
type TenantHandler struct {
	svc    *service.Service
	cors   *cache.CORSPolicy
	logger *zap.Logger
}

func NewTenantHandler(svc *service.Service, cors *cache.CORSPolicy, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{svc: svc, cors: cors, logger: logger}
}

// List handles GET /admin/tenants
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.svc.ListTenants(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

// Get handles GET /admin/tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.svc.GetTenant(c.Request.Context(), middleware.GetIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// Create handles POST /admin/tenants. The response is the only place
// the plaintext API key ever appears for a new tenant.
func (h *TenantHandler) Create(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.svc.CreateTenant(c.Request.Context(), middleware.GetIdentity(c), &tenant)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update handles PUT /admin/tenants/:id
func (h *TenantHandler) Update(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tenant.ID = c.Param("id")

	updated, err := h.svc.UpdateTenant(c.Request.Context(), middleware.GetIdentity(c), &tenant)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Origin changes must not wait out the cache TTL.
	h.cors.Invalidate(c.Request.Context(), updated.ID)
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /admin/tenants/:id
func (h *TenantHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteTenant(c.Request.Context(), middleware.GetIdentity(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	h.cors.Invalidate(c.Request.Context(), id)
	c.Status(http.StatusNoContent)
}

// RegenerateAPIKey handles POST /admin/tenants/:id/regenerate-api-key.
// The old key stops working the moment this returns; the plaintext in
// the response is shown once and never retrievable.
func (h *TenantHandler) RegenerateAPIKey(c *gin.Context) {
	result, err := h.svc.RegenerateAPIKey(c.Request.Context(), middleware.GetIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type createUserRequest struct {
	Email       string      `json:"email" binding:"required,email"`
	Password    string      `json:"password" binding:"required,min=8"`
	DisplayName string      `json:"displayName" binding:"required"`
	Role        models.Role `json:"role" binding:"required"`
}

// CreateUser handles POST /admin/tenants/:id/users
func (h *TenantHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		TenantID:    c.Param("id"),
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Role:        req.Role,
	}
	created, err := h.svc.CreateUser(c.Request.Context(), middleware.GetIdentity(c), user, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
