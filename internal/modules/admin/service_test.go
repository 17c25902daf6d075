package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"ecowaste/internal/database"
	"ecowaste/internal/domain"
	"ecowaste/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	svc   *Service
	admin *domain.Account
	user  *domain.Account
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenTest("admin_" + t.Name())
	require.NoError(t, err)

	accounts := repository.NewAccountRepository(db)
	admin := &domain.Account{Name: "Admin", Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	user := &domain.Account{Name: "Meera", Email: "meera@example.com", PasswordHash: "x", Role: domain.RoleUser, Kind: domain.KindHome}
	require.NoError(t, accounts.Create(context.Background(), admin))
	require.NoError(t, accounts.Create(context.Background(), user))

	return &fixture{
		db:    db,
		svc:   NewService(accounts, repository.NewReportRepository(db), nil),
		admin: admin,
		user:  user,
	}
}

func ptr[T any](v T) *T { return &v }

func TestListUsers_ExcludesAdmins(t *testing.T) {
	f := setup(t)
	users, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Meera", users[0].Name)
}

func TestUpdateUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	a, err := f.svc.UpdateUser(ctx, f.admin.ID, f.user.ID, UpdateUserRequest{
		Status:    ptr("inactive"),
		Kind:      ptr("business"),
		EcoPoints: ptr(int64(40)),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AccountInactive, a.Status)
	assert.Equal(t, domain.KindBusiness, a.Kind)
	assert.Equal(t, int64(40), a.EcoPoints)

	_, err = f.svc.UpdateUser(ctx, f.admin.ID, f.user.ID, UpdateUserRequest{Email: ptr("ADMIN@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.svc.UpdateUser(ctx, f.admin.ID, 999, UpdateUserRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.svc.UpdateUser(ctx, f.admin.ID, f.admin.ID, UpdateUserRequest{Status: ptr("inactive")})
	assert.ErrorIs(t, err, ErrCannotEditSelf)
}

func TestDeleteUser_RemovesPickupsAndComplaints(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	p := &domain.Pickup{AccountID: f.user.ID, Location: "X", WasteType: domain.WasteOrganic, Status: domain.PickupPending, Weight: 10, PointsEarned: 5}
	require.NoError(t, repository.NewPickupRepository(f.db).CreateWithCredit(ctx, p))
	require.NoError(t, repository.NewComplaintRepository(f.db).Create(ctx, &domain.Complaint{AccountID: f.user.ID, Type: domain.ComplaintOther, Description: "x", Status: domain.ComplaintPending}))

	require.NoError(t, f.svc.DeleteUser(ctx, f.admin.ID, f.user.ID))
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, f.admin.ID, f.user.ID), ErrUserNotFound)
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, f.admin.ID, f.admin.ID), ErrCannotEditSelf)

	var n int64
	require.NoError(t, f.db.Model(&domain.Pickup{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&domain.Complaint{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, f.db.Model(&domain.LedgerEntry{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestHandler_ReportsAgainstDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)
	ctx := context.Background()

	pickups := repository.NewPickupRepository(f.db)
	p := &domain.Pickup{AccountID: f.user.ID, Location: "X", WasteType: domain.WasteRecyclable, Status: domain.PickupPending, Weight: 500}
	require.NoError(t, pickups.CreateWithCredit(ctx, p))
	_, err := pickups.Apply(ctx, p.ID, domain.PickupPending, repository.PickupUpdate{Status: domain.PickupCompleted})
	require.NoError(t, err)

	router := gin.New()
	admin := router.Group("/api/admin")
	admin.Use(func(c *gin.Context) {
		c.Set("user_id", f.admin.ID)
		c.Next()
	})
	NewHandler(f.svc).RegisterRoutes(admin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/reports", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := w.Body.String()
	assert.Contains(t, body, `"users":{"total":1,"active":1,"inactive":0}`)
	assert.Contains(t, body, `"wasteCollected":1`)
	assert.Contains(t, body, `"recyclingRate":100`)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/"+itoa(f.user.ID), strings.NewReader(`{"status":"banned"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/users/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ID")
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
