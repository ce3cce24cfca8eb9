// Package web holds the per-request result type handlers return and the
// helpers that turn it into an HTTP response.
package web

import (
	"context"
	"net/http"

	"github.com/mytheresa/shop-admin/app/apperr"
	"github.com/mytheresa/shop-admin/app/logging"
)

// Result is what a page handler produces for one request.
// A non-empty Redirect answers 303 and carries Message as a flash message.
type Result struct {
	Status   int
	Message  string
	Payload  any
	Errors   map[string]string
	Redirect string
}

// PageFunc handles a request and describes the response instead of writing it.
type PageFunc func(r *http.Request) Result

// Envelope is the JSON body written for non-redirect results.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func OK(payload any) Result {
	return Result{Status: http.StatusOK, Payload: payload}
}

func RedirectTo(location, message string) Result {
	return Result{Status: http.StatusSeeOther, Redirect: location, Message: message}
}

// Invalid re-renders a form with its field errors.
func Invalid(payload any, errs map[string]string) Result {
	return Result{Status: http.StatusUnprocessableEntity, Message: "Validation failed", Payload: payload, Errors: errs}
}

// FromError logs err and converts it to a Result using its apperr kind.
func FromError(ctx context.Context, err error, payload any) Result {
	kind := apperr.KindOf(err)
	logging.Error(ctx, "request failed", "kind", kind.String(), "error", err)
	return Result{
		Status:  apperr.StatusCode(kind),
		Message: apperr.Message(err),
		Payload: payload,
	}
}

// Page adapts a PageFunc to an http.HandlerFunc.
func Page(fn PageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		Render(w, r, fn(r))
	}
}

// Render writes res: a redirect with a flash cookie, or a JSON envelope.
func Render(w http.ResponseWriter, r *http.Request, res Result) {
	if res.Redirect != "" {
		if res.Message != "" {
			SetFlash(w, res.Message)
		}
		http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
		return
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	message := res.Message
	if message == "" {
		message = PopFlash(w, r)
	}
	WriteJSON(w, status, Envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    res.Payload,
		Errors:  res.Errors,
	})
}
