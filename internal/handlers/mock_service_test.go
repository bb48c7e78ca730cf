package handlers

import (
	"context"
	"sync"

	"insulin_advisor/internal/engine"
	"insulin_advisor/internal/models"
	"insulin_advisor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAdvisor struct {
	mu    sync.Mutex
	rec   models.Recommendation
	err   error
	calls int

	lastPayload   string
	lastRequestID string
}

func (m *mockAdvisor) Recommend(ctx context.Context, payload []byte, requestID string) (models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastPayload = string(payload)
	m.lastRequestID = requestID
	if m.err != nil {
		return models.Recommendation{}, m.err
	}
	rec := m.rec
	rec.RequestID = requestID
	return rec, nil
}

func (m *mockAdvisor) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockDoseTable struct {
	rows   []models.DoseTableRow
	bounds engine.Bounds
}

func (m *mockDoseTable) Rows() []models.DoseTableRow { return m.rows }
func (m *mockDoseTable) Bounds() engine.Bounds       { return m.bounds }

type mockEventLog struct {
	resp []models.RecommendationEvent
	err  error

	calls   int
	lastArg service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RecommendationEvent, error) {
	m.calls++
	m.lastArg = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
