package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"saraban-stamp/internal/domain/entity"
)

type fakeUsecase struct {
	err      error
	receive  *entity.ReceiveNumberRequest
	limit    int
	rendered *entity.RenderedDocument
}

func (f *fakeUsecase) respond() (*entity.RenderedDocument, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rendered, nil
}

func (f *fakeUsecase) StampReceiveNumber(_ context.Context, req *entity.ReceiveNumberRequest) (*entity.RenderedDocument, error) {
	f.receive = req
	return f.respond()
}

func (f *fakeUsecase) StampCommand(context.Context, *entity.CommandStampRequest) (*entity.RenderedDocument, error) {
	return f.respond()
}

func (f *fakeUsecase) ComposeLeaveForm(context.Context, *entity.LeaveFormRequest) (*entity.RenderedDocument, error) {
	return f.respond()
}

func (f *fakeUsecase) ComposeLeaveSummary(context.Context, *entity.LeaveSummaryRequest) (*entity.RenderedDocument, error) {
	return f.respond()
}

func (f *fakeUsecase) RecentLogs(_ context.Context, limit int) ([]entity.RenderLog, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return nil, nil
}

type decoded struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newApp(uc *fakeUsecase) *fiber.App {
	h := NewRenderHandler(uc, zap.NewNop())
	logs := NewLogHandler(uc)
	app := fiber.New()
	app.Post("/receive-number", h.StampReceiveNumber)
	app.Post("/command", h.StampCommand)
	app.Post("/leave-form", h.ComposeLeaveForm)
	app.Post("/leave-summary", h.ComposeLeaveSummary)
	app.Get("/logs", logs.GetLogs)
	return app
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, decoded) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out decoded
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestStampReceiveNumber(t *testing.T) {
	uc := &fakeUsecase{rendered: &entity.RenderedDocument{RenderID: "r-1", PageCount: 1}}
	app := newApp(uc)

	status, out := do(t, app, "POST", "/receive-number",
		`{"document":"JVBERi0=","registry_number":"123","date":"2024-03-05","time":"09:30"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.Success)

	require.NotNil(t, uc.receive)
	assert.Equal(t, "123", uc.receive.RegistryNumber)
	assert.Equal(t, 2024, uc.receive.Date.Year())

	var doc entity.RenderedDocument
	require.NoError(t, json.Unmarshal(out.Data, &doc))
	assert.Equal(t, "r-1", doc.RenderID)
}

func TestInvalidBody(t *testing.T) {
	app := newApp(&fakeUsecase{})
	for _, path := range []string{"/receive-number", "/command", "/leave-form", "/leave-summary"} {
		status, out := do(t, app, "POST", path, `{"date":`)
		assert.Equal(t, fiber.StatusBadRequest, status, path)
		require.NotNil(t, out.Error, path)
		assert.Equal(t, entity.CodeBadRequest, out.Error.Code, path)
	}
}

func TestErrorStatus(t *testing.T) {
	cases := map[error]int{
		entity.ErrInvalidRequest:    fiber.StatusBadRequest,
		entity.ErrCorruptDocument:   fiber.StatusUnprocessableEntity,
		entity.ErrFontUnavailable:   fiber.StatusServiceUnavailable,
		entity.ErrAssetFetchTimeout: fiber.StatusGatewayTimeout,
		fmt.Errorf("boom"):          fiber.StatusInternalServerError,
	}
	for err, want := range cases {
		app := newApp(&fakeUsecase{err: fmt.Errorf("render: %w", err)})
		status, out := do(t, app, "POST", "/command", `{"command_text":"ทราบ"}`)
		assert.Equal(t, want, status, err.Error())
		assert.False(t, out.Success)
		require.NotNil(t, out.Error)
		assert.Equal(t, entity.ErrorCode(err), out.Error.Code)
	}
}

func TestGetLogs(t *testing.T) {
	uc := &fakeUsecase{}
	app := newApp(uc)

	status, out := do(t, app, "GET", "/logs?limit=20", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, out.Success)
	assert.Equal(t, 20, uc.limit)

	uc.err = fmt.Errorf("db down")
	status, _ = do(t, app, "GET", "/logs", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

type staticAssets map[string]bool

func (s staticAssets) Has(name string) bool { return s[name] }

func TestHealth(t *testing.T) {
	h := &HealthHandler{assets: staticAssets{"font": true}}
	app := fiber.New()
	app.Get("/health", h.Health)

	status, out := do(t, app, "GET", "/health", "")
	assert.Equal(t, fiber.StatusOK, status)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(out.Data, &health))
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Assets["font"])
	assert.False(t, health.Assets["emblem"])
}
