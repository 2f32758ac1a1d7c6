package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"paisa/internal/handlers"
	"paisa/internal/logger"
	"paisa/internal/middleware"
	"paisa/internal/models"
	"paisa/internal/pricefeed"
	"paisa/internal/services"
	"paisa/internal/validator"
)

const ingestSecret = "integration-test-secret"

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Prices pricefeed.Provider
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// fixedPrices pins every symbol so order math is exact across runs.
type fixedPrices struct {
	prices map[string]float64
}

func (f *fixedPrices) GetCurrentPrice(symbol string) float64 {
	return f.prices[symbol]
}

func (f *fixedPrices) GetAllPrices() map[string]float64 {
	out := make(map[string]float64, len(f.prices))
	for k, v := range f.prices {
		out[k] = v
	}
	return out
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:integrationdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Transaction{},
		&models.LedgerEntry{},
		&models.Holding{},
		&models.SweepRun{},
		&models.SweepOrder{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite and a pinned price feed.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)
	prices := &fixedPrices{prices: map[string]float64{
		"NIFTYBEES":  285.50,
		"GOLDBEES":   65.25,
		"LIQUIDBEES": 1000.00,
	}}

	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	transactionService := services.NewTransactionService(db, userService)
	ledgerService := services.NewLedgerService(db)
	sweepService := services.NewSweepService(db, userService, prices)
	portfolioService := services.NewPortfolioService(db, prices)

	userHandler := handlers.NewUserHandler(userService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, auditService)
	sweepHandler := handlers.NewSweepHandler(sweepService, auditService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	referenceHandler := handlers.NewReferenceHandler(prices)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	v1.GET("/presets", referenceHandler.Presets)
	v1.GET("/prices", referenceHandler.Prices)

	ingest := v1.Group("/", middleware.IngestAuth(ingestSecret))
	ingest.POST("/transactions", transactionHandler.Ingest)
	ingest.POST("/users", userHandler.Create)

	scoped := v1.Group("/", middleware.UserScope())
	scoped.GET("/users/me", userHandler.Me)
	scoped.PUT("/users/me/settings", userHandler.UpdateSettings)
	scoped.GET("/transactions", transactionHandler.List)
	scoped.GET("/ledger/balance", ledgerHandler.Balance)
	scoped.GET("/ledger/entries", ledgerHandler.Entries)
	scoped.POST("/ledger/topups", ledgerHandler.Topup)
	scoped.GET("/sweeps/preview", sweepHandler.Preview)
	scoped.POST("/sweeps", sweepHandler.Execute)
	scoped.GET("/sweeps", sweepHandler.History)
	scoped.GET("/portfolio/holdings", portfolioHandler.Holdings)
	scoped.GET("/portfolio/returns", portfolioHandler.Returns)

	return &testApp{DB: db, Router: router, Prices: prices}
}

// request makes a user-scoped HTTP request to the test router.
func (app *testApp) request(method, path, body, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// ingestRequest makes a machine request carrying the ingest secret.
func (app *testApp) ingestRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Ingest-Secret", ingestSecret)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// createUser provisions a user through the machine endpoint and returns its ID.
func (app *testApp) createUser(t *testing.T, email, preset string) string {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"name":"Test User","preset":%q}`, email, preset)
	if preset == "" {
		body = fmt.Sprintf(`{"email":%q,"name":"Test User"}`, email)
	}
	rec := app.ingestRequest("POST", "/api/v1/users", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user failed: %d %s", rec.Code, rec.Body.String())
	}
	user := parseJSON(t, rec)["user"].(map[string]interface{})
	return user["id"].(string)
}
