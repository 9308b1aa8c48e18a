// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package api

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/unixdj/qrframe"
)

// maxBody limits POST request bodies.  Text longer than a version 40
// code holds is rejected anyway.
const maxBody = 1 << 16

// FrameRequest is the body of POST /frame.
type FrameRequest struct {
	Text  string `json:"text"`
	Level string `json:"level"`
}

// GetFrameHandler returns the frame for the query parameters text and
// level.
func GetFrameHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	serveFrame(w, r, q.Get("text"), q.Get("level"))
}

// PostFrameHandler returns the frame for a JSON FrameRequest.
func PostFrameHandler(w http.ResponseWriter, r *http.Request) {
	var req FrameRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "bad request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	serveFrame(w, r, req.Text, req.Level)
}

func serveFrame(w http.ResponseWriter, r *http.Request, text, level string) {
	f, err := qrframe.GenerateFrame(text, level)
	if err != nil {
		tracer().Infof("%s: %v", w.Header().Get(RequestIDHeader), err)
		http.Error(w, err.Error(), statusCode(err))
		return
	}
	tag := ETag(f)
	w.Header().Set("ETag", tag)
	if match(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(f); err != nil {
		tracer().Errorf("%s: %v", w.Header().Get(RequestIDHeader), err)
	}
}

// statusCode maps frame generation errors to HTTP status codes.
func statusCode(err error) int {
	switch {
	case errors.Is(err, qrframe.ErrLevel):
		return http.StatusBadRequest
	case errors.Is(err, qrframe.ErrTooLong):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// ETag returns a strong entity tag for f: the BLAKE2b-256 hash of the
// width and the modules.
func ETag(f *qrframe.Frame) string {
	b := make([]byte, 4+len(f.Bitmap))
	binary.BigEndian.PutUint32(b, uint32(f.Width))
	copy(b[4:], f.Bitmap)
	sum := blake2b.Sum256(b)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// match reports whether the If-None-Match header value inm matches
// tag, using weak comparison.
func match(inm, tag string) bool {
	for _, t := range strings.Split(inm, ",") {
		t = strings.TrimSpace(t)
		if t == "*" || strings.TrimPrefix(t, "W/") == tag {
			return true
		}
	}
	return false
}
