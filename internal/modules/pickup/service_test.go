package pickup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"ecowaste/internal/config"
	"ecowaste/internal/database"
	"ecowaste/internal/domain"
	"ecowaste/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.PickupEvent
}

func (p *recordingPublisher) Publish(e domain.PickupEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db      *gorm.DB
	svc     *Service
	events  *recordingPublisher
	account *domain.Account
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.OpenTest("pickup_" + t.Name())
	require.NoError(t, err)

	account := &domain.Account{Name: "Ravi", Email: "ravi@example.com", PasswordHash: "x", Role: domain.RoleUser, Kind: domain.KindBusiness, Status: domain.AccountActive}
	require.NoError(t, repository.NewAccountRepository(db).Create(context.Background(), account))

	events := &recordingPublisher{}
	pricing := config.DefaultPricing()
	svc := NewService(
		repository.NewPickupRepository(db),
		repository.NewWorkerRepository(db),
		repository.NewVehicleRepository(db),
		NewCalculator(pricing),
		Options{ReverseCreditOnCancel: pricing.ReverseCreditOnCancel, Events: events},
	)
	return &fixture{db: db, svc: svc, events: events, account: account}
}

func count(v float64) *float64 { return &v }

func businessRequest() CreatePickupRequest {
	return CreatePickupRequest{
		UserName:    "Ravi",
		UserPhone:   "9876543210",
		Location:    "MG Road",
		WasteType:   "electronic",
		WasteCount:  count(3),
		WasteUnit:   "kg",
		ServiceType: "business",
		Date:        "2026-10-21",
		Time:        "10:00",
	}
}

func (f *fixture) reloadAccount(t *testing.T) *domain.Account {
	t.Helper()
	a, err := repository.NewAccountRepository(f.db).GetByID(context.Background(), f.account.ID)
	require.NoError(t, err)
	return a
}

func TestCreate_CreditsLedger(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	before := f.reloadAccount(t)
	p, err := f.svc.Create(ctx, f.account.ID, businessRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.PickupPending, p.Status)
	assert.Equal(t, domain.PriorityMedium, p.Priority)
	assert.Equal(t, domain.PaymentPending, p.PaymentStatus)
	assert.Equal(t, 300.0, p.Cost)
	assert.Equal(t, 30.0, p.DiscountAdded)

	after := f.reloadAccount(t)
	assert.Equal(t, before.TotalPickups+1, after.TotalPickups)
	assert.Equal(t, before.EcoPoints+p.PointsEarned, after.EcoPoints)
	assert.Equal(t, before.DiscountBalance+p.DiscountAdded, after.DiscountBalance)
	assert.Equal(t, before.CO2Saved+p.CO2Saved, after.CO2Saved)

	again, err := f.svc.Get(ctx, f.account.ID, false, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Weight, again.Weight)
	assert.Equal(t, p.PointsEarned, again.PointsEarned)
	assert.Equal(t, p.CO2Saved, again.CO2Saved)
	assert.Equal(t, p.FinalAmount, again.FinalAmount)
	assert.Equal(t, p.DiscountAdded, again.DiscountAdded)

	assert.Equal(t, []string{domain.EventPickupCreated}, f.events.types())
}

func TestCreate_UnknownAccount(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Create(context.Background(), 999, businessRequest())
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestGet_OtherAccountForbidden(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.account.ID, businessRequest())
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, f.account.ID+1, false, p.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.Get(ctx, f.account.ID+1, true, p.ID)
	assert.NoError(t, err)
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.account.ID, businessRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, p.ID, "completed")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	got, err := f.svc.UpdateStatus(ctx, p.ID, "assigned")
	require.NoError(t, err)
	assert.Equal(t, domain.PickupAssigned, got.Status)

	got, err = f.svc.UpdateStatus(ctx, p.ID, "assigned")
	require.NoError(t, err)
	assert.Equal(t, domain.PickupAssigned, got.Status)

	got, err = f.svc.UpdateStatus(ctx, p.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, domain.PickupCompleted, got.Status)

	_, err = f.svc.UpdateStatus(ctx, p.ID, "pending")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.UpdateStatus(ctx, 4242, "assigned")
	assert.ErrorIs(t, err, ErrPickupNotFound)
}

func TestUpdateStatus_CancelReversesCredit(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.account.ID, businessRequest())
	require.NoError(t, err)

	got, err := f.svc.UpdateStatus(ctx, p.ID, "cancelled")
	require.NoError(t, err)
	assert.True(t, got.CreditReversed)

	a := f.reloadAccount(t)
	assert.Zero(t, a.TotalPickups)
	assert.Zero(t, a.EcoPoints)
	assert.Zero(t, a.DiscountBalance)

	entries, err := repository.NewLedgerRepository(f.db).ListByAccount(ctx, f.account.ID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUpdateStatus_CancelKeepsCreditWhenDisabled(t *testing.T) {
	f := setup(t)
	f.svc.reverseCreditOnCancel = false
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.account.ID, businessRequest())
	require.NoError(t, err)

	got, err := f.svc.UpdateStatus(ctx, p.ID, "cancelled")
	require.NoError(t, err)
	assert.False(t, got.CreditReversed)
	assert.Equal(t, int64(1), f.reloadAccount(t).TotalPickups)
}

func TestAssign_DriverVehicleAndTrips(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	driver := &domain.Worker{Name: "Sunil", Role: domain.WorkerDriver, Phone: "9000000001", Status: domain.WorkerActive}
	require.NoError(t, repository.NewWorkerRepository(f.db).Create(ctx, driver))
	truck := &domain.Vehicle{Name: "Truck A", Type: domain.VehicleTruck, LicensePlate: "MH-12-AB-1234", Capacity: 4}
	require.NoError(t, repository.NewVehicleRepository(f.db).Create(ctx, truck))

	p, err := f.svc.Create(ctx, f.account.ID, businessRequest())
	require.NoError(t, err)

	var req AssignRequest
	require.NoError(t, json.Unmarshal([]byte(`{"driverId":`+itoa(driver.ID)+`,"vehicleId":"`+itoa(truck.ID)+`","status":"assigned"}`), &req))
	got, err := f.svc.Assign(ctx, p.ID, req)
	require.NoError(t, err)
	require.NotNil(t, got.DriverID)
	require.NotNil(t, got.VehicleID)
	assert.Equal(t, driver.ID, *got.DriverID)
	assert.Equal(t, truck.ID, *got.VehicleID)
	assert.Equal(t, domain.PickupAssigned, got.Status)

	// absent vehicleId clears the vehicle, absent driverId keeps the driver
	req = AssignRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	got, err = f.svc.Assign(ctx, p.ID, req)
	require.NoError(t, err)
	assert.Nil(t, got.VehicleID)
	require.NotNil(t, got.DriverID)

	// explicit null or zero driverId keeps the driver too
	for _, body := range []string{`{"driverId":null}`, `{"driverId":0}`, `{"driverId":""}`} {
		req = AssignRequest{}
		require.NoError(t, json.Unmarshal([]byte(body), &req))
		got, err = f.svc.Assign(ctx, p.ID, req)
		require.NoError(t, err, body)
		require.NotNil(t, got.DriverID, body)
		assert.Equal(t, driver.ID, *got.DriverID, body)
	}

	_, err = f.svc.UpdateStatus(ctx, p.ID, "completed")
	require.NoError(t, err)
	w, err := repository.NewWorkerRepository(f.db).GetByID(ctx, driver.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), w.TotalTrips)
}

func TestAssign_UnknownDriver(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	p, err := f.svc.Create(ctx, f.account.ID, businessRequest())
	require.NoError(t, err)

	missing := int64(77)
	_, err = f.svc.Assign(ctx, p.ID, AssignRequest{DriverID: OptionalID{Set: true, Value: &missing}})
	assert.ErrorIs(t, err, ErrDriverNotFound)

	_, err = f.svc.Assign(ctx, p.ID, AssignRequest{VehicleID: OptionalID{Set: true, Value: &missing}})
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestOptionalID_Unmarshal(t *testing.T) {
	var req AssignRequest
	require.NoError(t, json.Unmarshal([]byte(`{"driverId":null}`), &req))
	assert.True(t, req.DriverID.Set)
	assert.Nil(t, req.DriverID.Value)
	assert.False(t, req.VehicleID.Set)

	require.NoError(t, json.Unmarshal([]byte(`{"vehicleId":"12"}`), &req))
	require.NotNil(t, req.VehicleID.Value)
	assert.Equal(t, int64(12), *req.VehicleID.Value)

	assert.Error(t, json.Unmarshal([]byte(`{"vehicleId":"abc"}`), &req))
}

func TestHandler_CreateAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)
	h := NewHandler(f.svc)

	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("user_id", f.account.ID)
		c.Set("role", "user")
	})
	h.RegisterUserRoutes(api)

	body := `{"userName":"Ravi","userPhone":"98765","location":"MG Road","wasteType":"recyclable","wasteCount":2,"wasteUnit":"bins/bags","serviceType":"home","date":"2026-10-21","time":"08:15","status":"completed"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pickups", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data domain.Pickup `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.PickupPending, created.Data.Status)
	assert.Equal(t, domain.PaymentPaid, created.Data.PaymentStatus)
	assert.Equal(t, 20.0, created.Data.Weight)
	assert.Equal(t, int64(20), created.Data.PointsEarned)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/pickups/my-pickups", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"wasteType":"recyclable"`)
}

func TestHandler_CreateRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)
	router := gin.New()
	api := router.Group("/api")
	api.Use(func(c *gin.Context) { c.Set("user_id", f.account.ID) })
	NewHandler(f.svc).RegisterUserRoutes(api)

	cases := map[string]string{
		"unknown waste type": `{"userName":"a","userPhone":"1","location":"x","wasteType":"plastic","wasteCount":1,"serviceType":"home","date":"2026-10-21","time":"08:15"}`,
		"negative count":     `{"userName":"a","userPhone":"1","location":"x","wasteType":"organic","wasteCount":-1,"serviceType":"home","date":"2026-10-21","time":"08:15"}`,
		"bad date":           `{"userName":"a","userPhone":"1","location":"x","wasteType":"organic","wasteCount":1,"serviceType":"home","date":"21/10/2026","time":"08:15"}`,
		"missing count":      `{"userName":"a","userPhone":"1","location":"x","wasteType":"organic","serviceType":"home","date":"2026-10-21","time":"08:15"}`,
	}
	for name, body := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/pickups", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR", name)
	}

	assert.Zero(t, f.reloadAccount(t).TotalPickups)
}

func itoa(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
