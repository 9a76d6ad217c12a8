package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/kocha/apps/api/echo"
	"github.com/trezcool/kocha/core"
	"github.com/trezcool/kocha/core/attendance"
	"github.com/trezcool/kocha/core/availability"
	"github.com/trezcool/kocha/core/drill"
	"github.com/trezcool/kocha/core/event"
	"github.com/trezcool/kocha/core/eventdrill"
	"github.com/trezcool/kocha/core/player"
	"github.com/trezcool/kocha/core/stats"
	"github.com/trezcool/kocha/core/team"
	emailsvc "github.com/trezcool/kocha/services/email"
	dummydb "github.com/trezcool/kocha/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type testEnv struct {
	app  *Server
	conf *core.Config

	teamSvc   team.Service
	playerSvc player.Service
	eventSvc  event.Service
	drillSvc  drill.Service
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		AppName:   "Kocha",
		Env:       "test",
		TestMode:  true,
		SecretKey: "secret",
	}

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed, %v", err)
	}
	teamRepo := dummydb.NewTeamRepository(db)
	playerRepo := dummydb.NewPlayerRepository(db)
	drillRepo := dummydb.NewDrillRepository(db)

	mailSvc := emailsvc.NewConsoleServiceMock(conf)

	teamSvc := team.NewService(teamRepo)
	playerSvc := player.NewService(playerRepo)
	eventSvc := event.NewService(dummydb.NewEventRepository(db), teamRepo, playerRepo, mailSvc)
	drillSvc := drill.NewService(drillRepo)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	team.InitValidators(validate, translator)

	app := NewServer(ServerDeps{
		Conf:            conf,
		Logger:          testLogger{},
		TeamSvc:         teamSvc,
		PlayerSvc:       playerSvc,
		EventSvc:        eventSvc,
		DrillSvc:        drillSvc,
		EventDrillSvc:   eventdrill.NewService(dummydb.NewEventDrillRepository(db), drillRepo),
		AttendanceSvc:   attendance.NewService(dummydb.NewAttendanceRepository(db)),
		AvailabilitySvc: availability.NewService(dummydb.NewAvailabilityRepository(db)),
		StatsSvc:        stats.NewService(dummydb.NewStatsRepository(db)),
		Validate:        validate,
		Translator:      translator,
	})
	return &testEnv{
		app:       app,
		conf:      conf,
		teamSvc:   teamSvc,
		playerSvc: playerSvc,
		eventSvc:  eventSvc,
		drillSvc:  drillSvc,
	}
}

// testLogger swallows log output during tests.
type testLogger struct{}

func (testLogger) Enable(bool)                  {}
func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func (env *testEnv) getToken(t *testing.T, subject string, isAdmin bool) string {
	t.Helper()

	claims := &Claims{Name: "Coach " + subject, Email: subject + "@test.cd", IsAdmin: isAdmin}
	claims.Subject = subject
	claims.ExpiresAt = time.Now().Add(10 * time.Minute).Unix()
	token, err := GenerateToken(claims, env.conf)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
	if tt.wantData == nil {
		return
	}
	assert.JSONEq(t, string(tt.wantData), rec.Body.String())
}
