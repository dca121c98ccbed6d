package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/middlewares"
	"github.com/foodtruckos/backend/models"
	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

const tokenTTL = 24 * time.Hour

type AdminController struct {
	db            *gorm.DB
	overview      *services.OverviewService
	paymentStatus *services.PaymentStatusService
	jwtSecret     []byte
}

func NewAdminController(db *gorm.DB, overview *services.OverviewService, paymentStatus *services.PaymentStatusService, jwtSecret []byte) *AdminController {
	return &AdminController{
		db:            db,
		overview:      overview,
		paymentStatus: paymentStatus,
		jwtSecret:     jwtSecret,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin of the resolved tenant and issues a JWT whose
// tenant claim is pinned to that tenant.
func (ac *AdminController) Login(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	err := ac.db.Where("tenant_id = ? AND email = ?", tenantID, req.Email).First(&user).Error
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(ac.jwtSecret, user.ID, user.TenantID, user.Role, tokenTTL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

func (ac *AdminController) GetOverview(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	metrics, err := ac.overview.GetOverviewMetrics(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Overview metrics", metrics)
}

func (ac *AdminController) GetPaymentStatus(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	report, err := ac.paymentStatus.GetPaymentStatus(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status", report)
}
