// Package router is the HTTP transport shared by every module: an
// httprouter-backed mux, a fixed middleware chain, and codecs that turn
// handler results and *goerror.Error values into the JSON envelope
//
//	{"status":"success","message":"...","data":...}
//	{"status":"failed","message":"...","error":{"field":"reason"}}
package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/worknest/worknest-api/internal/pkg/config"
	"github.com/worknest/worknest-api/internal/pkg/goerror"
	"github.com/worknest/worknest-api/internal/pkg/instrument"
	"github.com/worknest/worknest-api/internal/pkg/jwt"
	"github.com/worknest/worknest-api/internal/pkg/uid"
	"github.com/worknest/worknest-api/internal/pkg/validator"
)

const (
	statusSuccess = "success"
	statusFailed  = "failed"
)

type errorResponse struct {
	Status  string            `json:"status" example:"failed"`
	Message string            `json:"message" example:"example string message"`
	Error   map[string]string `json:"error,omitempty"`
}

type successResponse struct {
	Status  string         `json:"status" example:"success"`
	Message string         `json:"message" example:"example string message"`
	Data    any            `json:"data,omitempty" swaggertype:"object"`
	Meta    map[string]any `json:"meta,omitempty" swaggertype:"object"`
}

func failed(msg string) errorResponse {
	return errorResponse{Status: statusFailed, Message: msg}
}

// Handler is the application-style handler used by this router.
//
// It returns a response payload (that will be JSON encoded) or an error.
// Payloads may implement:
//
//	Message() string          envelope message
//	StatusCode() int          HTTP status, default 200
//	Meta() map[string]any     envelope meta
//	Envelope() map[string]any fields written next to status/message instead of under data
type Handler func(r *Request) (any, error)

// Config holds dependencies required to build a Router.
type Config struct {
	// Config provides app.server.* and app.maintenance.* settings.
	Config     config.Config
	UUID       uid.StringID
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	// PublicEndpoints lists routes (method -> route pattern) that skip
	// authentication when app.server.require_auth is on.
	PublicEndpoints map[string][]string
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr  *httprouter.Router
	mws []Middleware
}

// NewRouter builds the application router with the standard middleware chain.
func NewRouter(cfg Config) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, failed("endpoint not found"), http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, failed("method not allowed"), http.StatusMethodNotAllowed)
		}),
	}

	hr.GET("/", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(w, successResponse{Status: statusSuccess, Message: "Welcome to WorkNest API"}, http.StatusOK)
	})

	public := map[string]map[string]struct{}{
		http.MethodGet: {"/": {}, "/health": {}},
	}
	for method, routes := range cfg.PublicEndpoints {
		if public[method] == nil {
			public[method] = make(map[string]struct{}, len(routes))
		}
		for _, route := range routes {
			public[method][route] = struct{}{}
		}
	}

	mws := []Middleware{
		middlewareRecoverer,
		middlewareIP,
		middlewareCorrelationID(cfg.UUID),
		middlewareObservability(cfg.Config, cfg.Instrument),
		middlewareMaintenance(cfg.Config),
	}
	if cfg.Config != nil && cfg.Config.GetBool("app.server.require_auth") {
		mws = append(mws, middlewareAuthentication(cfg.JWT, public))
	}

	return &Router{hr: hr, mws: mws}
}

// GET registers a GET endpoint using the application Handler signature.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodGet, path, h, mws...)
}

// POST registers a POST endpoint using the application Handler signature.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPost, path, h, mws...)
}

// PUT registers a PUT endpoint using the application Handler signature.
func (r *Router) PUT(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPut, path, h, mws...)
}

// PATCH registers a PATCH endpoint using the application Handler signature.
func (r *Router) PATCH(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodPatch, path, h, mws...)
}

// DELETE registers a DELETE endpoint using the application Handler signature.
func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.endpoint(http.MethodDelete, path, h, mws...)
}

func (r *Router) endpoint(method, path string, h Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(http.HandlerFunc(func(w http.ResponseWriter, re *http.Request) {
		resp, err := h(&Request{Request: re})
		if err != nil {
			if setter, ok := w.(interface{ SetError(error) }); ok {
				setter.SetError(err)
			}
			writeError(re.Context(), w, err)
			return
		}
		writeSuccess(w, resp)
	}), append(r.mws, mws...)...))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "unclassified error reached transport", "error", err)
		writeJSON(w, failed("Internal server error"), http.StatusInternalServerError)
		return
	}

	resp := failed(gerr.Msg())

	var errValidate validator.V10ValidationError
	if errors.As(err, &errValidate) {
		resp.Error = errValidate.Values()
	} else if len(gerr.Fields()) > 0 {
		resp.Error = gerr.Fields()
	}

	writeJSON(w, resp, gerr.StatusCode())
}

func writeSuccess(w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}

	if code == http.StatusNoContent || resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg := "request has been successfully"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	if e, ok := resp.(interface{ Envelope() map[string]any }); ok {
		body := e.Envelope()
		out := make(map[string]any, len(body)+2)
		for k, v := range body {
			out[k] = v
		}
		out["status"] = statusSuccess
		out["message"] = msg
		writeJSON(w, out, code)
		return
	}

	var meta map[string]any
	if m, ok := resp.(interface{ Meta() map[string]any }); ok {
		meta = m.Meta()
	}

	writeJSON(w, successResponse{
		Status:  statusSuccess,
		Message: msg,
		Data:    resp,
		Meta:    meta,
	}, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
	}
}
