package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	. "github.com/gradnet/backend/apps/api/echo"
	"github.com/gradnet/backend/core"
	"github.com/gradnet/backend/core/admin"
	"github.com/gradnet/backend/core/announcement"
	"github.com/gradnet/backend/core/message"
	"github.com/gradnet/backend/core/profile"
	emailsvc "github.com/gradnet/backend/services/email"
	dummydb "github.com/gradnet/backend/storage/database/dummy"
)

var (
	profileRepo      profile.Repository
	messageRepo      message.Repository
	announcementRepo announcement.Repository

	profileSvc      *profile.Service
	messageSvc      *message.Service
	announcementSvc *announcement.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

func setup(t *testing.T) Server {
	t.Helper()

	core.Conf.Debug = false
	core.Conf.TestMode = true

	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	profileRepo = dummydb.NewProfileRepository(db)
	messageRepo = dummydb.NewMessageRepository(db)
	announcementRepo = dummydb.NewAnnouncementRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	profileSvc = profile.NewService(profileRepo)
	messageSvc = message.NewService(messageRepo, profileSvc, mailSvc)
	announcementSvc = announcement.NewService(announcementRepo, profileSvc, mailSvc)
	adminSvc := admin.NewService(profileRepo, messageRepo, announcementRepo)

	validate, translator := newValidator()

	// set up server
	return NewServer(
		&Options{
			DisableReqLogs:  true,
			Logger:          testLogger{},
			Storage:         memStorage{},
			ProfileSvc:      profileSvc,
			MessageSvc:      messageSvc,
			AnnouncementSvc: announcementSvc,
			AdminSvc:        adminSvc,
			Validate:        validate,
			Translator:      translator,
		},
	)
}

func newValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	return validate, translator
}

type testLogger struct{}

func (testLogger) Enable(bool)                    {}
func (testLogger) Debug(string, ...interface{})   {}
func (testLogger) Info(string, ...interface{})    {}
func (testLogger) Warn(string, ...interface{})    {}
func (testLogger) Error(string, ...interface{})   {}
func (testLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

type memStorage struct{}

func (memStorage) Save(name string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	return "/media/" + name, nil
}

func createProfile(t *testing.T, name, email string, year *int, isMentor, isAdmin bool) profile.Profile {
	t.Helper()

	now := time.Now().UTC()
	p := profile.Profile{
		ID:             uuid.New().String(),
		Email:          email,
		FullName:       name,
		GraduationYear: year,
		IsMentor:       isMentor,
		IsAdmin:        isAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	p, err := profileRepo.UpsertProfile(context.Background(), p)
	if err != nil {
		t.Fatalf("createProfile(): %v", err)
	}
	return p
}

// profileFixture builds an identity that has no stored profile row.
func profileFixture(id, email string) profile.Profile {
	return profile.Profile{ID: id, Email: email}
}

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
	extra    interface{}
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

func getToken(t *testing.T, p profile.Profile) string {
	claims := GetProfileClaims(p)
	token, err := GenerateToken(claims)
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

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decodeBody() failed: %v; body: %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
