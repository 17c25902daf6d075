package wallet

import "github.com/gin-gonic/gin"

// RegisterRoutes expects an authenticated group mounted at /api.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.GET("/wallet", h.GetMyWallet)
		user.GET("/wallet/transactions", h.ListMyTransactions)
	}
}
