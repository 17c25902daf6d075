package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecowaste/internal/database"
	"ecowaste/internal/domain"
	"ecowaste/internal/middleware"
	"ecowaste/internal/pkg/jwt"
	"ecowaste/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Account Repository implementing the interface
type mockAccountRepo struct {
	mock.Mock
}

func (m *mockAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *mockAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Account, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockAccountRepo) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Account")).Return(repository.ErrDuplicate)

	svc := NewService(repo, jwt.New("s", time.Hour), nil)
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	repo.AssertExpectations(t)
}

func TestRegister_DefaultsToHome(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
		return a.Kind == domain.KindHome && a.Role == domain.RoleUser && a.Email == "mixed@example.com" && a.PasswordHash != "secret1"
	})).Return(nil)

	svc := NewService(repo, jwt.New("s", time.Hour), nil)
	account, err := svc.Register(context.Background(), RegisterRequest{Name: "M", Email: " Mixed@Example.com ", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, domain.KindHome, account.Kind)
	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetByEmail", mock.Anything, "u@example.com").Return(&domain.Account{ID: 1, PasswordHash: hashed(t, "right-pass"), Role: domain.RoleUser, Status: domain.AccountActive}, nil)

	svc := NewService(repo, jwt.New("s", time.Hour), nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "u@example.com", Password: "wrong-pass"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	repo.AssertNotCalled(t, "TouchLastActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)

	svc := NewService(repo, jwt.New("s", time.Hour), nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "x"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetByEmail", mock.Anything, "off@example.com").Return(&domain.Account{ID: 2, PasswordHash: hashed(t, "secret1"), Role: domain.RoleUser, Status: domain.AccountInactive}, nil)

	svc := NewService(repo, jwt.New("s", time.Hour), nil)
	_, err := svc.Login(context.Background(), LoginRequest{Email: "off@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestAdminLogin_RejectsUser(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetByEmail", mock.Anything, "u@example.com").Return(&domain.Account{ID: 3, PasswordHash: hashed(t, "secret1"), Role: domain.RoleUser, Status: domain.AccountActive}, nil)

	svc := NewService(repo, jwt.New("s", time.Hour), nil)
	_, err := svc.AdminLogin(context.Background(), LoginRequest{Email: "u@example.com", Password: "secret1"})

	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestLogin_IssuesToken(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetByEmail", mock.Anything, "admin@example.com").Return(&domain.Account{ID: 9, PasswordHash: hashed(t, "secret1"), Role: domain.RoleAdmin, Status: domain.AccountActive}, nil)
	repo.On("TouchLastActive", mock.Anything, int64(9), mock.AnythingOfType("time.Time")).Return(nil)

	jwtSvc := jwt.New("s", time.Hour)
	svc := NewService(repo, jwtSvc, nil)
	result, err := svc.AdminLogin(context.Background(), LoginRequest{Email: "admin@example.com", Password: "secret1"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.AccountID)
	assert.Equal(t, "admin", claims.Role)
	repo.AssertExpectations(t)
}

func TestHandler_RegisterLoginProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := database.OpenTest("auth_" + t.Name())
	require.NoError(t, err)

	jwtSvc := jwt.New("handler-secret", time.Hour)
	h := NewHandler(NewService(repository.NewAccountRepository(db), jwtSvc, nil), CookieOptions{MaxAge: time.Hour})

	router := gin.New()
	api := router.Group("/api")
	h.RegisterPublicRoutes(api)
	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtSvc))
	h.RegisterProtectedRoutes(protected)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"name":"Biz","email":"biz@example.com","password":"secret1","userType":"business"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"name":"Biz","email":"BIZ@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(`{"email":"biz@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data struct {
			Token    string `json:"token"`
			UserType string `json:"userType"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "business", body.Data.UserType)
	require.NotEmpty(t, body.Data.Token)

	var tokenCookie *http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.TokenCookie {
			tokenCookie = ck
		}
	}
	require.NotNil(t, tokenCookie)
	assert.True(t, tokenCookie.HttpOnly)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/user/profile", strings.NewReader(`{"location":"Pune"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(tokenCookie)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"location":"Pune"`)
	assert.Contains(t, w.Body.String(), `"name":"Biz"`)
}

func TestHandler_RegisterValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(NewService(new(mockAccountRepo), jwt.New("s", time.Hour), nil), CookieOptions{})
	router := gin.New()
	h.RegisterPublicRoutes(router.Group("/api"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{"name":"x","email":"not-an-email","password":"123"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, w.Body.String(), "Email")
}
