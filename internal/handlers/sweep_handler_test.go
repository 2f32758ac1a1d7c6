package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"paisa/internal/engine"
	apperrors "paisa/internal/errors"
	"paisa/internal/models"
	"paisa/internal/services"
)

func setupSweepRouter(handler *SweepHandler) *gin.Engine {
	r := gin.New()
	scoped := r.Group("", injectUserID(testUserID))
	scoped.GET("/sweeps/preview", handler.Preview)
	scoped.POST("/sweeps", handler.Execute)
	scoped.GET("/sweeps", handler.History)
	return r
}

func TestSweepHandler_Preview(t *testing.T) {
	sweepSvc := &mockSweepService{
		previewFn: func(userID string, _ time.Time) (*services.SweepPreview, error) {
			return &services.SweepPreview{
				Balance:        1000,
				MinSweepAmount: 100,
				SweepDay:       true,
				WouldSweep:     true,
				Orders: []engine.Order{
					{Symbol: "NIFTYBEES", Quantity: 2, Amount: 571},
				},
			}, nil
		},
	}
	handler := NewSweepHandler(sweepSvc, &mockAuditService{})
	r := setupSweepRouter(handler)

	rec := doRequest(r, "GET", "/sweeps/preview", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["would_sweep"] != true {
		t.Errorf("expected would_sweep true, got %v", result["would_sweep"])
	}
	orders := result["orders"].([]interface{})
	if len(orders) != 1 {
		t.Errorf("expected 1 order, got %d", len(orders))
	}
}

func TestSweepHandler_Execute(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotTrigger models.SweepTrigger
		var gotForce bool
		sweepSvc := &mockSweepService{
			executeFn: func(userID string, trigger models.SweepTrigger, _ time.Time, force bool) (*models.SweepRun, error) {
				gotTrigger = trigger
				gotForce = force
				return &models.SweepRun{UserID: userID, Balance: 1000, Invested: 832}, nil
			},
		}
		handler := NewSweepHandler(sweepSvc, &mockAuditService{})
		r := setupSweepRouter(handler)

		rec := doRequest(r, "POST", "/sweeps", `{"force":true}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotTrigger != models.SweepTriggerManual {
			t.Errorf("expected manual trigger, got %s", gotTrigger)
		}
		if !gotForce {
			t.Error("expected force to pass through")
		}
	})

	t.Run("empty body means no force", func(t *testing.T) {
		var gotForce bool
		sweepSvc := &mockSweepService{
			executeFn: func(userID string, _ models.SweepTrigger, _ time.Time, force bool) (*models.SweepRun, error) {
				gotForce = force
				return &models.SweepRun{UserID: userID}, nil
			},
		}
		handler := NewSweepHandler(sweepSvc, &mockAuditService{})
		r := setupSweepRouter(handler)

		rec := doRequest(r, "POST", "/sweeps", "")

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotForce {
			t.Error("expected force false for empty body")
		}
	})

	t.Run("returns 409 below floor", func(t *testing.T) {
		sweepSvc := &mockSweepService{
			executeFn: func(string, models.SweepTrigger, time.Time, bool) (*models.SweepRun, error) {
				return nil, apperrors.ErrSweepBelowFloor
			},
		}
		handler := NewSweepHandler(sweepSvc, &mockAuditService{})
		r := setupSweepRouter(handler)

		rec := doRequest(r, "POST", "/sweeps", `{}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "SWEEP_BELOW_FLOOR")
	})

	t.Run("returns 409 off sweep day", func(t *testing.T) {
		sweepSvc := &mockSweepService{
			executeFn: func(string, models.SweepTrigger, time.Time, bool) (*models.SweepRun, error) {
				return nil, apperrors.ErrNotSweepDay
			},
		}
		handler := NewSweepHandler(sweepSvc, &mockAuditService{})
		r := setupSweepRouter(handler)

		rec := doRequest(r, "POST", "/sweeps", `{}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOT_SWEEP_DAY")
	})
}

func TestSweepHandler_History(t *testing.T) {
	handler := NewSweepHandler(&mockSweepService{}, &mockAuditService{})
	r := setupSweepRouter(handler)

	rec := doRequest(r, "GET", "/sweeps?page=1&page_size=5", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["data"] == nil {
		t.Error("expected data array in response")
	}
}
