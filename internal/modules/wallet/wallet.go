package wallet

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"ecowaste/internal/domain"
	"ecowaste/internal/pkg/response"
	"ecowaste/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var ErrAccountNotFound = errors.New("account not found")

type accountReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

type ledgerReader interface {
	ListByAccount(ctx context.Context, accountID int64, limit int) ([]domain.LedgerEntry, error)
	Totals(ctx context.Context, accountID int64) (domain.LedgerEntry, error)
}

// Balance is the eco-wallet as stored on the account.
type Balance struct {
	TotalPickups    int64   `json:"totalPickups"`
	EcoPoints       int64   `json:"ecoPoints"`
	DiscountBalance float64 `json:"discountBalance"`
	CO2Saved        float64 `json:"co2Saved"`
}

type Wallet struct {
	Balance Balance              `json:"balance"`
	Ledger  Balance              `json:"ledger"`
	InSync  bool                 `json:"inSync"`
	Entries []domain.LedgerEntry `json:"entries"`
}

type Service struct {
	accounts accountReader
	ledger   ledgerReader
}

func NewService(accounts accountReader, ledger ledgerReader) *Service {
	return &Service{accounts: accounts, ledger: ledger}
}

// Get returns the account counters, the ledger totals and the latest entries.
// InSync is false when an admin edited the counters by hand.
func (s *Service) Get(ctx context.Context, accountID int64, limit int) (*Wallet, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	totals, err := s.ledger.Totals(ctx, accountID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, err
	}

	w := &Wallet{
		Balance: Balance{
			TotalPickups:    a.TotalPickups,
			EcoPoints:       a.EcoPoints,
			DiscountBalance: a.DiscountBalance,
			CO2Saved:        a.CO2Saved,
		},
		Ledger: Balance{
			TotalPickups:    totals.Pickups,
			EcoPoints:       totals.Points,
			DiscountBalance: totals.Discount,
			CO2Saved:        totals.CO2,
		},
		Entries: entries,
	}
	w.InSync = w.Balance.TotalPickups == w.Ledger.TotalPickups &&
		w.Balance.EcoPoints == w.Ledger.EcoPoints &&
		nearlyEqual(w.Balance.DiscountBalance, w.Ledger.DiscountBalance) &&
		nearlyEqual(w.Balance.CO2Saved, w.Ledger.CO2Saved)
	return w, nil
}

func (s *Service) Transactions(ctx context.Context, accountID int64, limit int) ([]domain.LedgerEntry, error) {
	return s.ledger.ListByAccount(ctx, accountID, limit)
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetMyWallet godoc
// @Summary	Eco-wallet
// @Tags	Wallet
// @Security	BearerAuth
// @Param	limit	query	int	false	"entries to return (default 20, max 100)"
// @Success	200	{object}	Wallet
// @Router	/user/wallet [GET]
func (h *Handler) GetMyWallet(c *gin.Context) {
	w, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), parseLimit(c))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "WALLET_ERROR", "Failed to load wallet")
		return
	}
	response.Success(c, http.StatusOK, w)
}

// @Router	/user/wallet/transactions [GET]
func (h *Handler) ListMyTransactions(c *gin.Context) {
	entries, err := h.service.Transactions(c.Request.Context(), c.GetInt64("user_id"), parseLimit(c))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "WALLET_ERROR", "Failed to load transactions")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

func parseLimit(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}
