// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package api serves QR code frames over HTTP to renderers.
package api

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'qrframe.api'
func tracer() tracing.Trace {
	return tracing.Select("qrframe.api")
}

// NewRouter returns the router for the frame service:
//
//	GET  /health               "OK"
//	GET  /frame?text=…&level=… the frame as JSON
//	POST /frame                the same, request {"text":…,"level":…}
func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			tracer().Errorf("health: %v", err)
		}
	}).Methods("GET")
	r.HandleFunc("/frame", GetFrameHandler).Methods("GET")
	r.HandleFunc("/frame", PostFrameHandler).Methods("POST")
	return r
}

// RequestIDHeader carries the request id in every response.
const RequestIDHeader = "X-Request-Id"

// requestID keeps a request id sent by the client if it is a UUID,
// otherwise it sets a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		tracer().Debugf("%s %s %s", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
