package wire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vet-clinic/internal/data/repository"
	"vet-clinic/pkg/utils"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*App, pgxmock.PgxPoolIface) {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	config := &utils.Config{Auth: utils.AuthConfig{BcryptCost: 4, MinPasswordLength: 6}}
	return Wiring(repository.NewRepository(pool, zap.NewNop()), config, zap.NewNop()), pool
}

func TestWiring_Routes(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		method, path, body string
		wantCode           int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/validate/rut", `{"rut":"12.345.678-5"}`, http.StatusOK},
		{http.MethodPost, "/api/validate/phone", `{"phone":"912345678"}`, http.StatusOK},
		{http.MethodPost, "/api/validate/date", `{"date":"2020-01-01"}`, http.StatusOK},
		{http.MethodPost, "/api/validate/record", `{"rut":"12.345.678-5"}`, http.StatusOK},
		{http.MethodGet, "/api/admin/users/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestWiring_LoginReachesStore(t *testing.T) {
	app, pool := newTestApp(t)

	pool.ExpectQuery(`FROM users WHERE LOWER\(username\)`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "full_name", "username", "email", "password_hash", "role",
			"active", "created_at", "last_access_at",
		}))

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"ghost","password":"whatever"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NoError(t, pool.ExpectationsWereMet())
}
