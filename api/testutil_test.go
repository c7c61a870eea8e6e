package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/folio-labs/portfolio-backend/auth"
	"github.com/folio-labs/portfolio-backend/database"
	"github.com/folio-labs/portfolio-backend/models"
	"github.com/folio-labs/portfolio-backend/ratelimit"
)

// fakeMailer records outbound mail instead of calling the Resend API.
type fakeMailer struct {
	mu         sync.Mutex
	subjects   []string
	bodies     []string
	recipients [][]string
}

func (m *fakeMailer) Send(subject, body string, recipients []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	m.recipients = append(m.recipients, recipients)
	return nil
}

func (m *fakeMailer) sent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subjects)
}

type testApp struct {
	router  *chi.Mux
	db      database.Database
	gormDB  *gorm.DB
	issuer  *auth.Issuer
	limiter *ratelimit.Limiter
	mailer  *fakeMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(gormDB))

	db := database.New(gormDB)
	issuer := auth.NewIssuer("test-secret", time.Hour, 2*time.Hour)
	limiter := ratelimit.NewWithClock(5, time.Hour, time.Now)
	mailer := &fakeMailer{}

	router := newRouter(db,
		withConfig(map[string]string{
			"PASSWORD_RESET_URL": "http://localhost:3000/reset-password",
		}),
		withStartupTime(time.Now()),
		withIssuer(issuer),
		withLimiter(limiter),
		withMailer(mailer),
	)

	return &testApp{
		router:  router,
		db:      db,
		gormDB:  gormDB,
		issuer:  issuer,
		limiter: limiter,
		mailer:  mailer,
	}
}

func (a *testApp) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewReader([]byte(b))
		default:
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:51234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// requestFromIP is request with a spoofed client address, for exercising
// per-IP behavior.
func (a *testApp) requestFromIP(t *testing.T, ip, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", ip)

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// adminToken returns a valid access token. The middleware only verifies the
// token itself, so most admin tests do not need a stored user.
func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()

	token, err := a.issuer.IssueAccess(uuid.New())
	require.NoError(t, err)
	return token
}

// seedUser stores an admin account with a real bcrypt hash so the login
// flow can be exercised end to end.
func (a *testApp) seedUser(t *testing.T, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: hash}
	require.NoError(t, a.db.UserRepo().Add(user))
	return user
}

type testEnvelope struct {
	Data      json.RawMessage `json:"data"`
	Error     *errorBody      `json:"error"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	env := decodeEnvelope(t, rec)
	require.Equal(t, "success", env.Status, "body: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func requireErrorCode(t *testing.T, rec *httptest.ResponseRecorder, statusCode int, code string) testEnvelope {
	t.Helper()

	require.Equal(t, statusCode, rec.Code, "body: %s", rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
	return env
}
