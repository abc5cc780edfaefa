// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

// Package validation validates API request bodies with go-playground/validator.
//
// A single validator instance is built on first use. Field names in messages
// are the JSON names from the request body, and two project rules are
// registered on top of the built-in tags:
//
//   - objectid: the value is a 24-character hex MongoDB ObjectID
//   - message_body (struct level, SendMessageRequest): content or at least
//     one attachment is present
//
// Usage:
//
//	var req models.SignupRequest
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
