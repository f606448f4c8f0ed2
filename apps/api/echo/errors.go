package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/DaddyBoye/School-Management-sub001/core"
	"github.com/DaddyBoye/School-Management-sub001/core/calendar"
	"github.com/DaddyBoye/School-Management-sub001/core/timetable"
)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// kindStatuses maps domain failure modes to HTTP statuses. Conflicts with
// existing records are 409s; everything the caller can fix in the payload is a 400.
var kindStatuses = map[core.Kind]int{
	core.KindValidation:       http.StatusBadRequest,
	core.KindRangeViolation:   http.StatusBadRequest,
	core.KindBreakTimeslot:    http.StatusBadRequest,
	core.KindOverlap:          http.StatusConflict,
	core.KindReferentialBlock: http.StatusConflict,
	core.KindTransient:        http.StatusServiceUnavailable,
}

func isNotFound(err error) bool {
	switch err {
	case calendar.ErrCalendarNotFound, calendar.ErrTermNotFound, calendar.ErrHolidayNotFound,
		timetable.ErrTimeslotNotFound, timetable.ErrEntryNotFound:
		return true
	}
	return false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(core.Translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.Error:
			status, ok := kindStatuses[origErr.Kind]
			if !ok {
				status = http.StatusInternalServerError
			}
			code = status
			message = echo.Map{"kind": origErr.Kind, "error": origErr.Detail}
		default:
			if isNotFound(origErr) {
				code = errHttpNotFound.Code
				message = errHttpNotFound.Message
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			logger.Error(msg, errors.Wrap(err, msg))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		} else if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
