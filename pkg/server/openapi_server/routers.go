// SPDX-License-Identifier: MIT

package openapi_server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
)

// A Route defines the parameters for an api endpoint
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Routes are a collection of defined api endpoints
type Routes []Route

// Router defines the required methods for retrieving api routes
type Router interface {
	Routes() Routes
}

const errMsgRequiredMissing = "required parameter is missing"

// NewRouter creates a new router for any number of api routers
func NewRouter(logger *log.Logger, routers ...Router) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, api := range routers {
		for _, route := range api.Routes() {
			var handler http.Handler = route.HandlerFunc
			handler = Logger(handler, route.Name, logger)

			router.
				Methods(route.Method).
				Path(route.Pattern).
				Name(route.Name).
				Handler(handler)
		}
	}
	router.Methods(http.MethodOptions).PathPrefix("/").HandlerFunc(preflight)

	return router
}

// Logger logs every request of the wrapped handler at debug level
func Logger(inner http.Handler, name string, logger *log.Logger) http.Handler {
	if logger == nil {
		return inner
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inner.ServeHTTP(w, r)
		logger.Debug("request", "method", r.Method, "uri", r.RequestURI, "route", name, "duration", time.Since(start))
	})
}

func allowCORS(w http.ResponseWriter, method string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func preflight(w http.ResponseWriter, r *http.Request) {
	allowCORS(w, "GET, POST")
	w.WriteHeader(http.StatusNoContent)
}

// EncodeJSONResponse uses the json encoder to write an interface to the http response with an optional status code
func EncodeJSONResponse(i interface{}, status *int, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if status != nil {
		w.WriteHeader(*status)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if wt, ok := i.(io.WriterTo); ok {
		_, err := wt.WriteTo(w)
		return err
	}
	if i != nil {
		return json.NewEncoder(w).Encode(i)
	}

	return nil
}
