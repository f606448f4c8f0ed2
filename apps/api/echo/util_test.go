package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
	inmemdb "github.com/DaddyBoye/School-Management-sub001/storage/database/inmem"
)

var (
	calSvc   *calendar.Service
	termSvc  *calendar.TermService
	holSvc   *calendar.HolidayService
	slotSvc  *timetable.TimeslotService
	entrySvc *timetable.EntryService
	schedSvc *timetable.ScheduleService
)

func setup(t *testing.T) Server {
	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	calRepo := inmemdb.NewCalendarRepository(db)
	termRepo := inmemdb.NewTermRepository(db)
	holRepo := inmemdb.NewHolidayRepository(db)
	slotRepo := inmemdb.NewTimeslotRepository(db)
	entryRepo := inmemdb.NewEntryRepository(db)

	// set up services
	schedSvc = timetable.NewScheduleService(entryRepo, slotRepo, termRepo)
	calSvc = calendar.NewService(calRepo, termRepo, schedSvc.Invalidate)
	termSvc = calendar.NewTermService(termRepo, calRepo, schedSvc.Invalidate)
	holSvc = calendar.NewHolidayService(holRepo, calRepo, schedSvc.Invalidate)
	slotSvc = timetable.NewTimeslotService(slotRepo, entryRepo, schedSvc.Invalidate)
	entrySvc = timetable.NewEntryService(entryRepo, slotRepo, schedSvc.Invalidate)

	validate := validator.New()
	translator := newTestTranslator()
	core.InitValidators(validate, translator)

	conf := &core.Config{TestMode: true, AppName: "Ratiba"}

	// set up server
	return NewServer(
		ServerDeps{
			Conf:        conf,
			Logger:      testLogger{t},
			CalendarSvc: calSvc,
			TermSvc:     termSvc,
			HolidaySvc:  holSvc,
			TimeslotSvc: slotSvc,
			EntrySvc:    entrySvc,
			ScheduleSvc: schedSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type testLogger struct {
	t *testing.T
}

func (l testLogger) Enable(bool)                              {}
func (l testLogger) Debug(msg string, args ...interface{})    { l.t.Logf(msg, args...) }
func (l testLogger) Info(msg string, args ...interface{})     { l.t.Logf(msg, args...) }
func (l testLogger) Warning(msg string, args ...interface{})  { l.t.Logf(msg, args...) }
func (l testLogger) Error(msg string, args ...interface{})    { l.t.Logf(msg, args...) }
func (l testLogger) Critical(msg string, args ...interface{}) { l.t.Logf(msg, args...) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
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
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func createTestCalendar(t *testing.T, name, start, end string, active bool) calendar.Calendar {
	cal, err := calSvc.Create(calendar.NewCalendar{Name: name, StartDate: start, EndDate: end, IsActive: active})
	if err != nil {
		t.Fatalf("createTestCalendar() failed: %v", err)
	}
	return cal
}

func createTestTerm(t *testing.T, nt calendar.NewTerm) calendar.Term {
	term, err := termSvc.Add(nt)
	if err != nil {
		t.Fatalf("createTestTerm() failed: %v", err)
	}
	return term
}

func createTestTimeslot(t *testing.T, name, start, end string, isBreak bool) timetable.Timeslot {
	ts, err := slotSvc.Create(timetable.NewTimeslot{Name: name, StartTime: start, EndTime: end, IsBreak: isBreak})
	if err != nil {
		t.Fatalf("createTestTimeslot() failed: %v", err)
	}
	return ts
}
