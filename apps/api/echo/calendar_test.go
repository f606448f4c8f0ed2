package echoapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
)

func decodeKind(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decodeKind() failed: %v; body %s", err, rec.Body.String())
	}
	return body.Kind
}

func Test_calendarApi_create(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name:     "valid calendar",
			body:     marchallObj(t, calendar.NewCalendar{Name: "2024-2025", StartDate: "2024-09-01", EndDate: "2025-06-30"}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing fields",
			body:     []byte(`{"name": "Nameless"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed date",
			body:     marchallObj(t, calendar.NewCalendar{Name: "Sloppy", StartDate: "01/09/2024", EndDate: "2025-06-30"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "start after end",
			body:     marchallObj(t, calendar.NewCalendar{Name: "Backwards", StartDate: "2025-06-30", EndDate: "2024-09-01"}),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/calendars", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_calendarApi_activeAndRetrieve(t *testing.T) {
	app := setup(t)

	t.Run("no active calendar", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/calendars/active")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v, want 404", rec.Code)
		}
	})

	cal := createTestCalendar(t, "2024-2025", "2024-09-01", "2025-06-30", true)

	t.Run("active calendar", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, cal)}
		req, rec := newRequest(http.MethodGet, "/v1/calendars/active")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("retrieve by id", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, cal)}
		req, rec := newRequest(http.MethodGet, "/v1/calendars/"+cal.ID)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("unknown id", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/calendars/nope")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %v, want 404", rec.Code)
		}
	})

	t.Run("query all", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, cal)}
		req, rec := newRequest(http.MethodGet, "/v1/calendars")
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func Test_calendarApi_activate(t *testing.T) {
	app := setup(t)

	a := createTestCalendar(t, "2024-2025", "2024-09-01", "2025-06-30", true)
	b := createTestCalendar(t, "2025-2026", "2025-09-01", "2026-06-30", false)

	req, rec := newRequest(http.MethodPost, "/v1/calendars/"+b.ID+"/activate")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want 204", rec.Code)
	}

	active, err := calSvc.GetActive()
	if err != nil {
		t.Fatalf("GetActive() failed: %v", err)
	}
	if active.ID != b.ID {
		t.Errorf("active calendar = %v, want %v", active.ID, b.ID)
	}
	refreshed, _ := calSvc.GetByID(a.ID)
	if refreshed.IsActive {
		t.Error("previous active calendar was not deactivated")
	}
}

func Test_calendarApi_destroy(t *testing.T) {
	app := setup(t)

	cal := createTestCalendar(t, "2024-2025", "2024-09-01", "2025-06-30", false)
	term := createTestTerm(t, calendar.NewTerm{
		CalendarID: cal.ID, Name: "Fall", TermType: calendar.TermTypeSemester,
		StartDate: "2024-09-01", EndDate: "2024-12-20",
	})

	t.Run("refused while terms exist", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/calendars/"+cal.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Fatalf("code = %v, want 409", rec.Code)
		}
		if kind := decodeKind(t, rec); kind != "REFERENTIAL_BLOCK" {
			t.Errorf("kind = %q, want REFERENTIAL_BLOCK", kind)
		}
	})

	t.Run("allowed once empty", func(t *testing.T) {
		req, rec := newRequest(http.MethodDelete, "/v1/terms/"+term.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("term delete code = %v, want 204", rec.Code)
		}

		req, rec = newRequest(http.MethodDelete, "/v1/calendars/"+cal.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Errorf("code = %v, want 204", rec.Code)
		}
	})
}

func Test_termApi_create(t *testing.T) {
	app := setup(t)

	cal := createTestCalendar(t, "2024-2025", "2024-09-01", "2025-06-30", true)
	createTestTerm(t, calendar.NewTerm{
		CalendarID: cal.ID, Name: "Fall", TermType: calendar.TermTypeSemester,
		StartDate: "2024-09-01", EndDate: "2024-12-20",
	})

	tests := []httpTest{
		{
			name: "valid term",
			body: marchallObj(t, calendar.NewTerm{
				CalendarID: cal.ID, Name: "Spring", TermType: calendar.TermTypeSemester,
				StartDate: "2025-01-06", EndDate: "2025-06-30",
			}),
			wantCode: http.StatusCreated,
		},
		{
			name: "overlapping term",
			body: marchallObj(t, calendar.NewTerm{
				CalendarID: cal.ID, Name: "Mid-Fall", TermType: calendar.TermTypeQuarter,
				StartDate: "2024-10-01", EndDate: "2024-11-15",
			}),
			wantCode: http.StatusConflict,
		},
		{
			name: "break overlapping instructional term",
			body: marchallObj(t, calendar.NewTerm{
				CalendarID: cal.ID, Name: "Winter Break", IsBreak: true, TermType: calendar.TermTypeOther,
				StartDate: "2024-12-15", EndDate: "2025-01-05",
			}),
			wantCode: http.StatusCreated,
		},
		{
			name: "outside calendar bounds",
			body: marchallObj(t, calendar.NewTerm{
				CalendarID: cal.ID, Name: "Summer", TermType: calendar.TermTypeOther,
				StartDate: "2025-07-01", EndDate: "2025-08-31",
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "invalid term type",
			body: []byte(`{"calendar_id": "` + cal.ID + `", "name": "Huh", "term_type": "era", "start_date": "2024-09-01", "end_date": "2024-09-30"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown calendar",
			body: marchallObj(t, calendar.NewTerm{
				CalendarID: "nope", Name: "Orphan", TermType: calendar.TermTypeOther,
				StartDate: "2024-09-01", EndDate: "2024-09-30",
			}),
			wantCode: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/terms", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_termApi_setCurrent(t *testing.T) {
	app := setup(t)

	cal := createTestCalendar(t, "2024-2025", "2024-09-01", "2025-06-30", true)
	fall := createTestTerm(t, calendar.NewTerm{
		CalendarID: cal.ID, Name: "Fall", TermType: calendar.TermTypeSemester,
		StartDate: "2024-09-01", EndDate: "2024-12-20", IsCurrent: true,
	})
	spring := createTestTerm(t, calendar.NewTerm{
		CalendarID: cal.ID, Name: "Spring", TermType: calendar.TermTypeSemester,
		StartDate: "2025-01-06", EndDate: "2025-06-30",
	})

	req, rec := newRequest(http.MethodPost, "/v1/terms/"+spring.ID+"/set-current")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code = %v, want 204", rec.Code)
	}

	req, rec = newRequest(http.MethodGet, "/v1/calendars/"+cal.ID+"/terms/current")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %v, want 200", rec.Code)
	}
	var current calendar.Term
	if err := json.Unmarshal(rec.Body.Bytes(), &current); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if current.ID != spring.ID {
		t.Errorf("current term = %v, want %v", current.ID, spring.ID)
	}

	refreshed, _ := termSvc.GetByID(fall.ID)
	if refreshed.IsCurrent {
		t.Error("previous current term was not cleared")
	}
}

func Test_holidayApi(t *testing.T) {
	app := setup(t)

	cal := createTestCalendar(t, "2024-2025", "2024-09-01", "2025-06-30", true)

	tests := []httpTest{
		{
			name:     "valid holiday",
			body:     marchallObj(t, calendar.NewHoliday{CalendarID: cal.ID, Name: "Thanksgiving", Date: "2024-11-28"}),
			wantCode: http.StatusCreated,
		},
		{
			name:     "outside calendar bounds",
			body:     marchallObj(t, calendar.NewHoliday{CalendarID: cal.ID, Name: "Independence Day", Date: "2025-07-04"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing date",
			body:     []byte(`{"calendar_id": "` + cal.ID + `", "name": "Dateless"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/holidays", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("nested query", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/calendars/"+cal.ID+"/holidays")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v, want 200", rec.Code)
		}
		var hols []calendar.Holiday
		if err := json.Unmarshal(rec.Body.Bytes(), &hols); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if len(hols) != 1 || hols[0].Name != "Thanksgiving" {
			t.Errorf("holidays = %+v, want [Thanksgiving]", hols)
		}
	})
}
