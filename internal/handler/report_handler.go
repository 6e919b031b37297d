package handler

import (
	"net/http"

	"campusmart/internal/domain"
	"campusmart/internal/middleware"
	"campusmart/internal/models"
	"campusmart/internal/repository"
	"campusmart/internal/settings"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportRepo  *repository.ReportRepository
	productRepo *repository.ProductRepository
	settingsSvc *settings.Service
}

func NewReportHandler(reportRepo *repository.ReportRepository, productRepo *repository.ProductRepository, settingsSvc *settings.Service) *ReportHandler {
	return &ReportHandler{reportRepo: reportRepo, productRepo: productRepo, settingsSvc: settingsSvc}
}

type createReportRequest struct {
	ProductID      *uint  `json:"product_id"`
	ReportedUserID *uint  `json:"reported_user_id"`
	Reason         string `json:"reason" binding:"required,max=50"`
	Details        string `json:"details"`
}

// Create handles POST /reports. A listing with enough open reports is
// auto-flagged out of the public catalog pending moderation.
func (h *ReportHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProductID == nil && req.ReportedUserID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product_id or reported_user_id required"})
		return
	}
	report := &models.Report{
		ReporterID:     userID,
		ProductID:      req.ProductID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Details:        req.Details,
		Status:         domain.ReportStatusPending,
	}
	if err := h.reportRepo.Create(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}
	if req.ProductID != nil {
		h.maybeAutoFlag(*req.ProductID)
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) maybeAutoFlag(productID uint) {
	threshold := h.settingsSvc.GetInt(domain.SettingReportAutoFlagThreshold, 3)
	if threshold <= 0 {
		return
	}
	count, err := h.productRepo.CountPendingReports(productID)
	if err != nil {
		return
	}
	if count >= int64(threshold) {
		_ = h.productRepo.SetFlagged(productID, true)
	}
}
