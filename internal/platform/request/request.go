// Copyright (c) 2026 Inkwell Platform. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/inkwell-platform/contentcore/internal/platform/apperr"
	"github.com/inkwell-platform/contentcore/internal/platform/ctxutil"
	"github.com/inkwell-platform/contentcore/internal/platform/sec"
	"github.com/inkwell-platform/contentcore/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter (UUID/Slug) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Claims extracts the authenticated operator claims from the request context.

Returns nil if the request did not carry a valid admin bearer token.
*/
func Claims(request *http.Request) *sec.AdminClaims {
	return ctxutil.GetAdmin(request.Context())
}

/*
RequiredClaims ensures the request authenticated as the operator.

Returns:
  - *sec.AdminClaims: The operator claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.AdminClaims, error) {
	claims := ctxutil.GetAdmin(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("admin token required")
	}
	return claims, nil
}
