package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/mock"
	"github.com/MKhiriev/go-ledger-sync/internal/service"
)

const testBook = "ledger-home"

type testHandler struct {
	*Handler
	endpoint *mock.MockEndpoint
	auth     *mock.MockAuthService
	appInfo  *mock.MockAppInfoService
	router   http.Handler
}

func newTestHandler(t *testing.T, requireAuth bool) *testHandler {
	t.Helper()

	ctrl := gomock.NewController(t)
	th := &testHandler{
		endpoint: mock.NewMockEndpoint(ctrl),
		auth:     mock.NewMockAuthService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}
	th.Handler = NewHandler(&service.Services{
		Endpoint:       th.endpoint,
		AuthService:    th.auth,
		AppInfoService: th.appInfo,
	}, requireAuth, logger.Nop())
	th.router = th.Init()
	return th
}

func (th *testHandler) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	th.router.ServeHTTP(rec, req)
	return rec
}

// finishedRun is a SyncRun that already completed with err.
type finishedRun struct{ err error }

func (r finishedRun) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (r finishedRun) Err() error                 { return r.err }
func (r finishedRun) Wait(context.Context) error { return r.err }

// ── NewHandler ───────────────────────────────────────────────────────────────

func TestNewHandler_StoresServices(t *testing.T) {
	th := newTestHandler(t, true)

	assert.Equal(t, th.endpoint, th.Handler.endpoint)
	assert.Equal(t, th.auth, th.Handler.auth)
	assert.Equal(t, th.appInfo, th.Handler.appInfo)
	assert.True(t, th.requireAuth)
}

// ── Routing ──────────────────────────────────────────────────────────────────

func TestInit_Version(t *testing.T) {
	th := newTestHandler(t, false)
	th.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	rec := th.do(http.MethodGet, "/api/version", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1.2.3", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_UnknownPath(t *testing.T) {
	th := newTestHandler(t, false)

	rec := th.do(http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestInit_WrongMethodLooksLikeUnknownPath(t *testing.T) {
	th := newTestHandler(t, false)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/version"},
		{http.MethodPut, "/api/books"},
		{http.MethodPatch, "/api/books/" + testBook + "/sync"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := th.do(tc.method, tc.path, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestInit_RecoversPanics(t *testing.T) {
	th := newTestHandler(t, false)
	th.appInfo.EXPECT().GetAppVersion(gomock.Any()).DoAndReturn(func(context.Context) string {
		panic("boom")
	})

	rec := th.do(http.MethodGet, "/api/version", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
