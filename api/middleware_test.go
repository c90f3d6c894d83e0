package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/project-aoi-backend/database"
)

func TestLogInternalServerErrors_RecoversPanic(t *testing.T) {
	handler := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error","status":"error"}`, rec.Body.String())
}

func TestStatusResponseWriter_KeepsFirstStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	srw := wrapStatusWriter(rec)

	srw.WriteHeader(http.StatusNotFound)
	srw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusNotFound, srw.status)
	assert.Same(t, srw, wrapStatusWriter(srw))
}

func TestSessionMiddleware_UnavailableStore(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	router := newRouter(database.New(gdb), prometheus.NewRegistry())
	rec := serve(router, http.MethodGet, "/project/list/all", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", decode[ErrorResponse](t, rec).Status)
}

func TestSessionMiddleware_ProvidesSession(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	var seen bool
	handler := newSessionMiddleware(database.New(gdb)).provide(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := ctxGetSession(r.Context())
		seen = err == nil && session != nil
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/project/list/all", nil))

	assert.True(t, seen)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCtxGetSession_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := ctxGetSession(req.Context())
	assert.Error(t, err)
}
