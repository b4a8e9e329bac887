package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/hustle/apps/api/echo"
	"github.com/trezcool/hustle/core"
	"github.com/trezcool/hustle/core/billing"
	"github.com/trezcool/hustle/core/challenge"
	"github.com/trezcool/hustle/core/curriculum"
	"github.com/trezcool/hustle/core/library"
	"github.com/trezcool/hustle/core/tracker"
	"github.com/trezcool/hustle/core/user"
	billingsvc "github.com/trezcool/hustle/services/billing"
	emailsvc "github.com/trezcool/hustle/services/email"
	dummydb "github.com/trezcool/hustle/storage/database/dummy"
	"github.com/trezcool/hustle/testutil"
)

type testApp struct {
	Server
	conf    *core.Config
	db      *dummydb.DB
	usrRepo user.Repository
	mailSvc *emailsvc.ConsoleServiceMock
}

// setup serves a freshly seeded in-memory store, acting as the demo user unless configured otherwise.
func setup(t *testing.T, configure ...func(conf *core.Config, opts *Options)) testApp {
	t.Helper()

	db, err := dummydb.Open()
	require.NoError(t, err)
	require.NoError(t, dummydb.Seed(context.Background(), db))

	conf := testutil.NewConfig()
	logger := testutil.NewLogger()
	validate, translator := testutil.NewValidator()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	usrRepo := dummydb.NewUserRepository(db)
	usrSvc := user.NewService(usrRepo, mailSvc)
	currSvc := curriculum.NewService(dummydb.NewModuleRepository(db), dummydb.NewProgressRepository(db))

	opts := &Options{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		Resolver:   FixedUserResolver{UserID: 1},
		Deps: Deps{
			UserSvc:       usrSvc,
			CurriculumSvc: currSvc,
			LibrarySvc:    library.NewService(dummydb.NewTemplateRepository(db)),
			TrackerSvc:    tracker.NewService(dummydb.NewActivityRepository(db), currSvc),
			ChallengeSvc:  challenge.NewService(dummydb.NewChallengeRepository(db)),
			BillingSvc:    billing.NewService(billingsvc.NewMockProvider(), usrSvc, conf.Billing.StripePriceID),
		},
	}
	for _, fn := range configure {
		fn(conf, opts)
	}

	return testApp{
		Server:  NewServer(opts),
		conf:    conf,
		db:      db,
		usrRepo: usrRepo,
		mailSvc: mailSvc,
	}
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     string
	header   http.Header
	wantCode int
	wantData []byte
}

type httpErr struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (app testApp) do(method, path, body string, header ...http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, h := range header {
		for k, v := range h {
			req.Header[k] = v
		}
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func (app testApp) run(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	t.Helper()
	rec := app.do(tt.method, tt.path, tt.body, tt.header)
	checkCodeAndData(t, tt, rec)
	return rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj(): %v", err)
	}
	return data
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode(%s): %v", rec.Body.String(), err)
	}
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

// checkCodeAndData compares the body only when wantData is set.
func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func errData(t *testing.T, msg string) []byte {
	return marshalObj(t, httpErr{Message: msg})
}
