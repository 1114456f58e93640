// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	r.Get("/polls/", middleware.WithLogging(log, pollsHandler.Index))

Logs request start (method, path, remote) and completion (status,
duration_ms) through zap. Every request gets an X-Request-ID, reused from the
incoming header when present.

# Admin Guard

RequireAdmin is chi-compatible middleware checking X-Admin-Key:

	r.Use(middleware.RequireAdmin(cfg.AdminKey, log))

# CORS Middleware

Enable cross-origin requests to the admin API:

	r.Use(middleware.CORS)

The admin key travels in a header, never a cookie, so CORS does not allow
credentials.

# JSON Helpers

The helpers take the request's logger; encoding failures are logged there and
answered with 500.

	middleware.JSONResponse(w, log, http.StatusOK, data)
	middleware.ErrorResponse(w, log, http.StatusNotFound, "Question not found")
	middleware.ValidationErrorResponse(w, log, errs)

Parse JSON request bodies:

	var form models.QuestionForm
	if err := middleware.ParseJSONBody(r, &form); err != nil {
		middleware.ErrorResponse(w, log, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used in request logs.
*/
package middleware
