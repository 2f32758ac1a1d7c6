package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"paisa/internal/engine"
	"paisa/internal/models"
	"paisa/internal/pagination"
	"paisa/internal/services"
	"paisa/internal/validator"
)

const testUserID = "0198c5f2-7b3a-7000-8000-0c9a1f2e3d4b"

// --- mock services ---

type mockUserService struct {
	createUserFn     func(email, name, preset string) (*models.User, error)
	getUserByIDFn    func(userID string) (*models.User, error)
	updateSettingsFn func(userID, preset string, rule engine.RoundupRule) (*models.User, error)
	listActiveFn     func() ([]models.User, error)
}

func (m *mockUserService) CreateUser(email, name, preset string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, name, preset)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(userID string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(userID)
	}
	return &models.User{}, nil
}

func (m *mockUserService) UpdateSettings(userID, preset string, rule engine.RoundupRule) (*models.User, error) {
	if m.updateSettingsFn != nil {
		return m.updateSettingsFn(userID, preset, rule)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListActiveUsers() ([]models.User, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn()
	}
	return nil, nil
}

var _ services.UserServicer = (*mockUserService)(nil)

type mockTransactionService struct {
	ingestBatchFn     func(userID string, txs []services.IngestedTransaction) (*services.IngestResult, error)
	getTransactionsFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

func (m *mockTransactionService) IngestBatch(userID string, txs []services.IngestedTransaction) (*services.IngestResult, error) {
	if m.ingestBatchFn != nil {
		return m.ingestBatchFn(userID, txs)
	}
	return &services.IngestResult{}, nil
}

func (m *mockTransactionService) GetTransactions(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.getTransactionsFn != nil {
		return m.getTransactionsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

type mockLedgerService struct {
	getBalanceFn   func(userID string) (float64, error)
	getEntriesFn   func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error)
	recordTopupFn  func(userID string, amount float64) (*models.LedgerEntry, error)
}

func (m *mockLedgerService) GetBalance(userID string) (float64, error) {
	if m.getBalanceFn != nil {
		return m.getBalanceFn(userID)
	}
	return 0, nil
}

func (m *mockLedgerService) GetEntries(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.LedgerEntry], error) {
	if m.getEntriesFn != nil {
		return m.getEntriesFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.LedgerEntry{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockLedgerService) RecordTopup(userID string, amount float64) (*models.LedgerEntry, error) {
	if m.recordTopupFn != nil {
		return m.recordTopupFn(userID, amount)
	}
	return &models.LedgerEntry{}, nil
}

var _ services.LedgerServicer = (*mockLedgerService)(nil)

type mockSweepService struct {
	previewFn func(userID string, now time.Time) (*services.SweepPreview, error)
	executeFn func(userID string, trigger models.SweepTrigger, now time.Time, force bool) (*models.SweepRun, error)
	getRunsFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SweepRun], error)
	runDueFn  func(now time.Time) (*services.SweepCycleResult, error)
}

func (m *mockSweepService) Preview(userID string, now time.Time) (*services.SweepPreview, error) {
	if m.previewFn != nil {
		return m.previewFn(userID, now)
	}
	return &services.SweepPreview{}, nil
}

func (m *mockSweepService) Execute(userID string, trigger models.SweepTrigger, now time.Time, force bool) (*models.SweepRun, error) {
	if m.executeFn != nil {
		return m.executeFn(userID, trigger, now, force)
	}
	return &models.SweepRun{}, nil
}

func (m *mockSweepService) GetRuns(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.SweepRun], error) {
	if m.getRunsFn != nil {
		return m.getRunsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.SweepRun{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockSweepService) RunDue(now time.Time) (*services.SweepCycleResult, error) {
	if m.runDueFn != nil {
		return m.runDueFn(now)
	}
	return &services.SweepCycleResult{}, nil
}

var _ services.SweepServicer = (*mockSweepService)(nil)

type mockPortfolioService struct {
	getHoldingsFn func(userID string) ([]models.Holding, error)
	getReturnsFn  func(userID string) (*services.PortfolioReturns, error)
}

func (m *mockPortfolioService) GetHoldings(userID string) ([]models.Holding, error) {
	if m.getHoldingsFn != nil {
		return m.getHoldingsFn(userID)
	}
	return nil, nil
}

func (m *mockPortfolioService) GetReturns(userID string) (*services.PortfolioReturns, error) {
	if m.getReturnsFn != nil {
		return m.getReturnsFn(userID)
	}
	return &services.PortfolioReturns{}, nil
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

type mockAuditService struct{}

func (m *mockAuditService) Log(_, _, _, _, _ string, _ map[string]any) {}

var _ services.AuditServicer = (*mockAuditService)(nil)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectUserID(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
