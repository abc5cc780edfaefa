// Peer-to-Playlist - Music-Matched Dating with Real-Time Chat
// Copyright 2026 The Peer-to-Playlist Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Shahir-47/Peer-to-Playlist

package models

import "strings"

// SignupRequest is the body of POST /api/v1/auth/signup.
type SignupRequest struct {
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email,max=254"`
	Password         string `json:"password" validate:"required,min=6,max=72"`
	Age              int    `json:"age" validate:"required,gte=18,lte=120"`
	Gender           string `json:"gender" validate:"required,oneof=male female"`
	GenderPreference string `json:"genderPreference" validate:"required,oneof=male female both"`
}

// Normalize trims whitespace and lower-cases the email.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// LoginRequest is the body of POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize trims whitespace and lower-cases the email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// UpdateProfileRequest is the body of PUT /api/v1/users/update. Nil fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Age              *int    `json:"age,omitempty" validate:"omitempty,gte=18,lte=120"`
	Gender           *string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
	GenderPreference *string `json:"genderPreference,omitempty" validate:"omitempty,oneof=male female both"`
	Bio              *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Image            *string `json:"image,omitempty" validate:"omitempty,url"`
}

// Empty reports whether the request changes nothing.
func (r *UpdateProfileRequest) Empty() bool {
	return r.Name == nil && r.Age == nil && r.Gender == nil &&
		r.GenderPreference == nil && r.Bio == nil && r.Image == nil
}

// SendMessageRequest is the body of POST /api/v1/messages/send. A message
// needs text, at least one attachment, or both.
type SendMessageRequest struct {
	ReceiverID  string       `json:"receiverId" validate:"required,objectid"`
	Content     string       `json:"content" validate:"max=5000"`
	Attachments []Attachment `json:"attachments" validate:"max=10,dive"`
}

// HasBody reports whether the message carries text or attachments.
func (r *SendMessageRequest) HasBody() bool {
	return strings.TrimSpace(r.Content) != "" || len(r.Attachments) > 0
}
