package http

import (
	"net/http"

	"sceneyard/internal/usecase"
	"sceneyard/pkg/logger"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	walletUseCase usecase.WalletUseCase
	logger        *logger.Logger
}

func NewWalletHandler(walletUseCase usecase.WalletUseCase, logger *logger.Logger) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
		logger:        logger,
	}
}

// GetWallet godoc
// @Summary      Credit balance for the current user
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Wallet
// @Router       /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, err := h.walletUseCase.GetWallet(c.GetString("user_id"))
	if err != nil {
		h.logger.Error("Failed to get wallet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get wallet"})
		return
	}
	c.JSON(http.StatusOK, wallet)
}

type TopUpRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

// TopUp godoc
// @Summary      Add credits (development stub for the payment flow)
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body TopUpRequest true "Amount of credits"
// @Success      200  {object}  entity.Wallet
// @Failure      400  {object}  map[string]string
// @Router       /wallet/topup [post]
func (h *WalletHandler) TopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.walletUseCase.TopUp(c.GetString("user_id"), req.Amount)
	if err != nil {
		h.logger.Error("Failed to top up wallet: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to top up wallet"})
		return
	}

	c.JSON(http.StatusOK, wallet)
}

// GetTransactions godoc
// @Summary      Credit transaction history
// @Tags         wallet
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100)"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	limit, offset := parsePagination(c, 50)

	transactions, err := h.walletUseCase.GetTransactions(c.GetString("user_id"), limit, offset)
	if err != nil {
		h.logger.Error("Failed to get transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}

type GrantCreditsRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

// GrantCredits godoc
// @Summary      Grant credits to a user (admin)
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Param        request body GrantCreditsRequest true "Amount of credits"
// @Success      200  {object}  entity.Wallet
// @Failure      400  {object}  map[string]string
// @Router       /admin/users/{id}/credits [post]
func (h *WalletHandler) GrantCredits(c *gin.Context) {
	var req GrantCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wallet, err := h.walletUseCase.Grant(c.Param("id"), req.Amount)
	if err != nil {
		h.logger.Error("Failed to grant credits: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant credits"})
		return
	}

	c.JSON(http.StatusOK, wallet)
}
