package main

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"yamdb/proj/internal/config"
	"yamdb/proj/internal/domain/errs"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// DenialRecorder counts requests turned away by access control.
type DenialRecorder interface {
	AccessDenied(reason string)
}

type Http struct {
	log     *slog.Logger
	cfg     *config.Config
	denials DenialRecorder
}

type envelop map[string]any

type Response struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Data    envelop `json:"data,omitempty"`
}

func processMsg(status int, msg string) string {
	if msg == "" {
		msg = http.StatusText(status)
	}
	return msg
}

func (h *Http) setupLogPerReq(r *http.Request) *slog.Logger {
	return h.log.With(
		"request_id",
		middleware.GetReqID(r.Context()),
		"method",
		r.Method,
		"path",
		r.URL.Path,
	)
}

func (h *Http) NewResponse(data envelop, msg string, status int) *Response {
	msg = processMsg(status, msg)
	success := status >= 200 && status < 400
	return &Response{Success: success, Message: msg, Data: data}
}

func (h *Http) Response(w http.ResponseWriter, r *http.Request, data envelop, msg string, status int) {
	render.Status(r, status)
	render.JSON(w, r, h.NewResponse(data, msg, status))
}

func (h *Http) Ok(w http.ResponseWriter, r *http.Request, data envelop, msg string) {
	h.Response(w, r, data, msg, http.StatusOK)
}

func (h *Http) Created(w http.ResponseWriter, r *http.Request, data envelop, msg string) {
	h.Response(w, r, data, msg, http.StatusCreated)
}

func (h *Http) NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Http) BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	h.Response(w, r, nil, msg, http.StatusBadRequest)
}

func (h *Http) InvalidData(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	h.Response(w, r, envelop{"errors": errors}, "Invalid data", http.StatusBadRequest)
}

func (h *Http) Unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	h.denied("authentication")
	w.Header().Set("WWW-Authenticate", "Bearer")
	h.Response(w, r, nil, msg, http.StatusUnauthorized)
}

func (h *Http) Forbidden(w http.ResponseWriter, r *http.Request, msg string) {
	h.denied("permission")
	h.Response(w, r, nil, msg, http.StatusForbidden)
}

func (h *Http) Conflict(w http.ResponseWriter, r *http.Request, msg string) {
	h.Response(w, r, nil, msg, http.StatusConflict)
}

func (h *Http) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.Response(w, r, nil, msg, http.StatusNotFound)
}

func (h *Http) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.Response(w, r, nil, "", http.StatusMethodNotAllowed)
}

func (h *Http) BadGateway(w http.ResponseWriter, r *http.Request, err error, msg string) {
	h.setupLogPerReq(r).Error("dependency failure", "errMsg", err.Error())
	h.Response(w, r, nil, msg, http.StatusBadGateway)
}

func (h *Http) denied(reason string) {
	if h.denials != nil {
		h.denials.AccessDenied(reason)
	}
}

func (h *Http) ServerError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	status := http.StatusInternalServerError
	defaultErrMsg := "Sorry! Can't process your request. Please try again later."
	log := h.setupLogPerReq(r)
	if err != nil {
		log.Error(err.Error())
	}
	render.Status(r, status)
	if msg == "" {
		msg = defaultErrMsg
	}
	if h.cfg.Debug && err != nil {
		msg = err.Error() + "\n" + string(debug.Stack())
		w.WriteHeader(status)
		w.Write([]byte(msg))
		return
	}
	render.JSON(w, r, Response{Success: false, Message: msg})
}

// Error writes the response for an error returned by a service, choosing the
// status from the error kind.
func (h *Http) Error(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *errs.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.InvalidData(w, r, validationErr.Fields)
	case errors.Is(err, errs.ErrValidation), errors.Is(err, errs.ErrInvalidCredential):
		h.BadRequest(w, r, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		h.NotFound(w, r, err.Error())
	case errors.Is(err, errs.ErrAuthenticationRequired):
		h.Unauthorized(w, r, err.Error())
	case errors.Is(err, errs.ErrPermissionDenied):
		h.Forbidden(w, r, err.Error())
	case errors.Is(err, errs.ErrConflict):
		h.Conflict(w, r, err.Error())
	case errors.Is(err, errs.ErrDependencyFailure):
		h.BadGateway(w, r, err, "An upstream service failed. Please try again later.")
	default:
		h.ServerError(w, r, err, "")
	}
}
