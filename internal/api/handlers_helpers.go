// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package api

import (
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/Shahir-47/Peer-to-Playlist/internal/auth"
	"github.com/Shahir-47/Peer-to-Playlist/internal/database"
	"github.com/Shahir-47/Peer-to-Playlist/internal/validation"
)

// maxBodyBytes bounds request bodies. Attachments are uploaded elsewhere and
// arrive here as URLs.
const maxBodyBytes = 1 << 20

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

// normalizer is implemented by requests that clean their fields before
// validation.
type normalizer interface {
	Normalize()
}

// bindJSON decodes and validates the body, writing the 400 response itself
// when either step fails.
func bindJSON(rw *ResponseWriter, w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, errEmptyBody):
			rw.BadRequest("Request body is required")
		case errors.As(err, &maxErr):
			rw.Error(http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large")
		default:
			rw.BadRequest("Invalid JSON body")
		}
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return false
	}
	return true
}

// currentUserID returns the id placed in the context by the session
// middleware.
func currentUserID(r *http.Request) string {
	return auth.UserIDFromContext(r.Context())
}

// respondStoreError maps storage errors onto the envelope.
func respondStoreError(rw *ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		rw.NotFound(notFound)
	case errors.Is(err, database.ErrDuplicateEmail):
		rw.Conflict("Email already exists")
	case errors.Is(err, database.ErrSelfSwipe):
		rw.BadRequest("You cannot swipe on yourself")
	case errors.Is(err, database.ErrUnavailable):
		rw.ServiceUnavailable("Database temporarily unavailable")
	default:
		rw.DatabaseError(err)
	}
}

// clientIP returns the request's remote host, after chi's RealIP rewrite.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
