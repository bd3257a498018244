package handlers

import (
	"context"
	"errors"
	"sync"

	cnc "cnc_simulator"
	"cnc_simulator/internal/models"
	"cnc_simulator/internal/service"

	"github.com/gin-gonic/gin"
)

const testToken = "good-token"

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(accessToken string) (int, error) {
	if accessToken != testToken {
		return 0, errors.New("token is malformed")
	}
	return m.parseID, nil
}

type mockMachine struct {
	mu    sync.Mutex
	calls []string
	tool  int
	pct   float64
	state string
	st    cnc.MachineStatus
	err   error
}

func (m *mockMachine) record(name string) (cnc.MachineStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
	return m.st, m.err
}

func (m *mockMachine) EmergencyStop(ctx context.Context) (cnc.MachineStatus, error) {
	return m.record("emergency_stop")
}

func (m *mockMachine) ChangeTool(ctx context.Context, toolNumber int) (cnc.MachineStatus, error) {
	m.tool = toolNumber
	return m.record("change_tool")
}

func (m *mockMachine) ResetProductionCounters(ctx context.Context) (cnc.MachineStatus, error) {
	return m.record("reset_counters")
}

func (m *mockMachine) SetFeedOverride(ctx context.Context, percent float64) (cnc.MachineStatus, error) {
	m.pct = percent
	return m.record("feed_override")
}

func (m *mockMachine) SetState(ctx context.Context, state string) (cnc.MachineStatus, error) {
	m.state = state
	return m.record("set_state")
}

type mockMonitoring struct {
	st   cnc.MachineStatus
	info cnc.MachineInfo
	err  error
}

func (m *mockMonitoring) GetStatus(ctx context.Context) (cnc.MachineStatus, error) {
	return m.st, m.err
}

func (m *mockMonitoring) GetInfo() cnc.MachineInfo { return m.info }

type mockEventLog struct {
	events []models.MachineEvent
	err    error
	got    service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.MachineEvent, error) {
	m.got = f
	return m.events, m.err
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, nil).InitRoutes()
}

func authHeader() string { return "Bearer " + testToken }
