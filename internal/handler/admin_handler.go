package handler

import (
	"net/http"
	"strconv"

	"campusmart/internal/domain"
	"campusmart/internal/middleware"
	"campusmart/internal/models"
	"campusmart/internal/repository"
	"campusmart/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AdminHandler struct {
	authSvc      *service.AdminAuthService
	adminRepo    *repository.AdminRepository
	userRepo     *repository.UserRepository
	productRepo  *repository.ProductRepository
	reportRepo   *repository.ReportRepository
	activityRepo *repository.ActivityLogRepository
}

func NewAdminHandler(
	authSvc *service.AdminAuthService,
	adminRepo *repository.AdminRepository,
	userRepo *repository.UserRepository,
	productRepo *repository.ProductRepository,
	reportRepo *repository.ReportRepository,
	activityRepo *repository.ActivityLogRepository,
) *AdminHandler {
	return &AdminHandler{
		authSvc:      authSvc,
		adminRepo:    adminRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
		reportRepo:   reportRepo,
		activityRepo: activityRepo,
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

// record writes the audit entry for a moderation action. On failure it
// answers 500 and returns false; the caller must stop there so no
// mutation is reported successful without its log row.
func (h *AdminHandler) record(c *gin.Context, action, entityType, entityID string, detail interface{}) bool {
	adminID := middleware.GetAdminID(c)
	if err := h.activityRepo.Record(adminID, action, entityType, entityID, detail, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "audit log write failed"})
		return false
	}
	return true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// --- auth ---

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	a, token, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		switch err {
		case service.ErrInvalidCreds:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case service.ErrAccountInactive:
			c.JSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	_ = h.activityRepo.Record(a.ID, domain.ActionAdminLogin, "admin", strconv.FormatUint(uint64(a.ID), 10), nil, c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"admin": a, "token": token})
}

// --- dashboard & analytics ---

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminRepo.GetDashboardStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Analytics handles GET /admin/analytics?days=30.
func (h *AdminHandler) Analytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days < 1 || days > 365 {
		days = 30
	}
	signups, err := h.adminRepo.UserSignupsByDay(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	listings, err := h.adminRepo.ListingsByDay(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	reports, err := h.adminRepo.ReportsByDay(days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load analytics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "signups": signups, "listings": listings, "reports": reports})
}

// --- user moderation ---

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.adminRepo.ListUsers(c.Query("search"), c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": total, "page": page, "limit": limit})
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// SuspendUser handles POST /admin/users/:id/suspend.
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.userRepo.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.userRepo.UpdateFields(id, map[string]interface{}{"is_suspended": true}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to suspend user"})
		return
	}
	if !h.record(c, domain.ActionUserSuspended, "user", strconv.FormatUint(uint64(id), 10), nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "suspended"})
}

// UnsuspendUser handles POST /admin/users/:id/unsuspend.
func (h *AdminHandler) UnsuspendUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.userRepo.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.userRepo.UpdateFields(id, map[string]interface{}{"is_suspended": false}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unsuspend user"})
		return
	}
	if !h.record(c, domain.ActionUserUnsuspended, "user", strconv.FormatUint(uint64(id), 10), nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "active"})
}

// DeleteUser handles DELETE /admin/users/:id. Soft delete; listings
// stay attached to the row for the audit trail.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.userRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.userRepo.UpdateFields(id, map[string]interface{}{"is_active": false}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	if !h.record(c, domain.ActionUserDeleted, "user", strconv.FormatUint(uint64(id), 10), map[string]interface{}{
		"email": u.Email,
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListSellers handles GET /admin/sellers.
func (h *AdminHandler) ListSellers(c *gin.Context) {
	page, limit := parsePagination(c)
	sellers, total, err := h.adminRepo.ListSellers(c.Query("search"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sellers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sellers, "total": total, "page": page, "limit": limit})
}

// --- product moderation ---

// ListProducts handles GET /admin/products, including listings the
// public catalog hides.
func (h *AdminHandler) ListProducts(c *gin.Context) {
	page, limit := parsePagination(c)
	flaggedOnly := c.Query("flagged") == "true"
	list, total, err := h.adminRepo.ListProducts(c.Query("search"), c.Query("status"), flaggedOnly, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// FlagProduct handles POST /admin/products/:id/flag.
func (h *AdminHandler) FlagProduct(c *gin.Context) {
	h.setProductFlag(c, true, domain.ActionProductFlagged, "flagged")
}

// UnflagProduct handles POST /admin/products/:id/unflag.
func (h *AdminHandler) UnflagProduct(c *gin.Context) {
	h.setProductFlag(c, false, domain.ActionProductUnflagged, "active")
}

func (h *AdminHandler) setProductFlag(c *gin.Context, flagged bool, action, status string) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.productRepo.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err := h.productRepo.SetFlagged(id, flagged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	if !h.record(c, action, "product", strconv.FormatUint(uint64(id), 10), nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// DeactivateProduct handles POST /admin/products/:id/deactivate.
func (h *AdminHandler) DeactivateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, err := h.productRepo.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err := h.productRepo.SetActive(id, false); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	if !h.record(c, domain.ActionProductDeactivated, "product", strconv.FormatUint(uint64(id), 10), nil) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// DeleteProduct handles DELETE /admin/products/:id.
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.productRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if err := h.productRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	if !h.record(c, domain.ActionProductDeleted, "product", strconv.FormatUint(uint64(id), 10), map[string]interface{}{
		"title":  p.Title,
		"seller": p.UserID,
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --- reports ---

// ListReports handles GET /admin/reports.
func (h *AdminHandler) ListReports(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.reportRepo.List(c.Query("status"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

type updateReportRequest struct {
	Status      string `json:"status" binding:"required,oneof=PENDING REVIEWED RESOLVED DISMISSED"`
	FlagProduct bool   `json:"flag_product"`
}

// UpdateReport handles PUT /admin/reports/:id. Optionally flags the
// reported product in the same action.
func (h *AdminHandler) UpdateReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rep, err := h.reportRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err := h.reportRepo.UpdateStatus(id, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update report"})
		return
	}
	if req.FlagProduct && rep.ProductID != nil {
		if err := h.productRepo.SetFlagged(*rep.ProductID, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to flag product"})
			return
		}
	}
	if !h.record(c, domain.ActionReportUpdated, "report", strconv.FormatUint(uint64(id), 10), map[string]interface{}{
		"from":         rep.Status,
		"to":           req.Status,
		"flag_product": req.FlagProduct,
	}) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}

// --- console accounts (super_admin only) ---

type createAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=super_admin admin moderator"`
}

// CreateAdmin handles POST /admin/accounts.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	a := &models.AdminAccount{
		Email:        req.Email,
		FullName:     req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := h.adminRepo.CreateAccount(a); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		return
	}
	if !h.record(c, domain.ActionAdminCreated, "admin", strconv.FormatUint(uint64(a.ID), 10), map[string]interface{}{
		"email": a.Email,
		"role":  a.Role,
	}) {
		return
	}
	c.JSON(http.StatusCreated, a)
}

// ListAdmins handles GET /admin/accounts.
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.adminRepo.ListAccounts(page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

type updateAdminRequest struct {
	Role     *string `json:"role" binding:"omitempty,oneof=super_admin admin moderator"`
	IsActive *bool   `json:"is_active"`
}

// UpdateAdmin handles PUT /admin/accounts/:id. Role changes and
// deactivation; an admin cannot deactivate their own account.
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IsActive != nil && !*req.IsActive && id == middleware.GetAdminID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot deactivate your own account"})
		return
	}
	if _, err := h.adminRepo.GetAccountByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	updates := map[string]interface{}{}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}
	if err := h.adminRepo.UpdateAccount(id, updates); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update account"})
		return
	}
	if !h.record(c, domain.ActionAdminUpdated, "admin", strconv.FormatUint(uint64(id), 10), updates) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// --- activity log ---

// ListActivity handles GET /admin/activity.
func (h *AdminHandler) ListActivity(c *gin.Context) {
	page, limit := parsePagination(c)
	list, total, err := h.activityRepo.List(c.Query("action"), c.Query("entity_type"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list activity"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}
