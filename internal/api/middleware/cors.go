package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORS policy applied to every route.
var (
	CORSAllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}
	CORSAllowedHeaders = []string{"Authorization", "Accept", "Content-Type"}
)

// CORSMaxAge is how long, in seconds, browsers may cache a preflight result.
const CORSMaxAge = 3600

// CORS returns middleware enforcing the fixed cross-origin policy: any
// origin, the methods in CORSAllowedMethods and the headers in
// CORSAllowedHeaders. Preflight requests are answered without reaching next.
func CORS(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	allowedMethods := strings.Join(CORSAllowedMethods, ", ")
	allowedHeaders := strings.Join(CORSAllowedHeaders, ", ")
	maxAge := strconv.Itoa(CORSMaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isPreflight(r) {
				w.Header().Set("Access-Control-Allow-Origin", "*")
				next.ServeHTTP(w, r)
				return
			}

			requestedMethod := r.Header.Get("Access-Control-Request-Method")
			if !methodAllowed(requestedMethod) {
				logger.Debug("rejected CORS preflight", "reason", "method not allowed", "method", requestedMethod, "path", r.URL.Path)
				http.Error(w, "CORS method not allowed", http.StatusBadRequest)
				return
			}

			requestedHeaders := r.Header.Get("Access-Control-Request-Headers")
			if header, ok := headersAllowed(requestedHeaders); !ok {
				logger.Debug("rejected CORS preflight", "reason", "header not allowed", "header", header, "path", r.URL.Path)
				http.Error(w, "CORS header not allowed", http.StatusBadRequest)
				return
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", allowedMethods)
			h.Set("Access-Control-Allow-Headers", allowedHeaders)
			h.Set("Access-Control-Max-Age", maxAge)
			w.WriteHeader(http.StatusOK)
		})
	}
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get("Origin") != "" &&
		r.Header.Get("Access-Control-Request-Method") != ""
}

func methodAllowed(method string) bool {
	for _, m := range CORSAllowedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// headersAllowed reports whether every header in the comma-separated list is
// allowed, returning the first offending header otherwise. Names compare
// case-insensitively.
func headersAllowed(list string) (string, bool) {
	for _, header := range strings.Split(list, ",") {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}
		allowed := false
		for _, h := range CORSAllowedHeaders {
			if strings.EqualFold(h, header) {
				allowed = true
				break
			}
		}
		if !allowed {
			return header, false
		}
	}
	return "", true
}
