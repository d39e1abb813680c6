// Copyright (c) 2026 The Drip developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	poolapi "github.com/driplabs/drip/api/pool"
	"github.com/driplabs/drip/api/restutil"
	"github.com/driplabs/drip/log"
	"github.com/driplabs/drip/metrics"
	"github.com/driplabs/drip/pool"
)

var logger = log.WithContext("pkg", "api")

// Config tunes the assembled HTTP handler.
type Config struct {
	AllowedOrigins string
	EnableMetrics  bool
}

// New assembles the HTTP API around the given pool.
func New(p *pool.Pool, config Config) http.Handler {
	router := mux.NewRouter()
	// route names are only resolvable inside the router, so the logger is
	// installed as mux middleware rather than an outer wrapper
	router.Use(func(h http.Handler) http.Handler {
		return RequestLoggerHandler(h, logger)
	})

	router.Path("/healthz").
		Methods(http.MethodGet).
		Name("GET /healthz").
		HandlerFunc(restutil.WrapHandlerFunc(func(w http.ResponseWriter, _ *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}))

	poolapi.New(p).Mount(router, "/pool")

	if config.EnableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	}

	handler := handlers.CompressHandler(router)
	return handlers.CORS(
		handlers.AllowedOrigins([]string{config.AllowedOrigins}),
		handlers.AllowedHeaders([]string{"content-type"}),
		handlers.AllowedMethods([]string{"GET", "POST"}),
	)(handler)
}
