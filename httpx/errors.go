package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/forms"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/log"
	"github.com/Ootdsdiiyi6ds07royrssyrd9s9urooofsyofy/alresalah-club-sub000/store"
)

// Err maps a store/forms error onto the HTTP contract: validation failures
// come back as 400 naming the offending fields, capacity exhaustion as 409
// with a fixed message, missing entities as 404, anything else as a logged
// generic 500.
func Err(w http.ResponseWriter, r *http.Request, code string, err error) {
	var vErr *forms.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Debugf("%s: %s", code, vErr)
		JSONError(w, r, http.StatusBadRequest, vErr.Error())
	case errors.Is(err, store.ErrValidation):
		log.Debugf("%s: %s", code, err)
		JSONError(w, r, http.StatusBadRequest,
			strings.TrimPrefix(err.Error(), store.ErrValidation.Error()+": "))
	case errors.Is(err, store.ErrNoCapacity):
		log.Debugf("%s: no seats", code)
		JSONError(w, r, http.StatusConflict, store.ErrNoCapacity.Error())
	case errors.Is(err, store.ErrNotFound):
		log.Debugf("%s: not found", code)
		JSONError(w, r, http.StatusNotFound, "not found")
	default:
		log.Errorf("%s: %s", code, err)
		JSONError(w, r, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

func JSONError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, code string, err error) {
	log.Errorf("%s: %s", code, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	http.Error(w, errMsg, status)
}

// Will log an error code at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, status int, level log.Level, code string) {
	log.Log(level, code)
	http.Error(w, http.StatusText(status), status)
}
