// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the polls site.

# Route Registration

NewRouter creates a chi router with all endpoints:

	h := router.NewRouter(st, cfg, log, time.Now)

Panics in handlers are recovered by chi's Recoverer and answered with 500.

# Endpoints

Health:

	GET /health

Public pages (HTML):

	GET  /                     - Redirect to /polls/
	GET  /polls/               - Latest questions
	GET  /polls/{id}/          - Question detail and vote form
	GET  /polls/{id}/results/  - Vote tallies
	POST /polls/{id}/vote/     - Cast a vote (form field "choice")

Administration (JSON, requires X-Admin-Key):

	GET    /admin/questions
	POST   /admin/questions
	GET    /admin/questions/{id}
	PUT    /admin/questions/{id}
	DELETE /admin/questions/{id}
	GET    /admin/choices
	GET    /admin/choices/{id}
	PUT    /admin/choices/{id}
	DELETE /admin/choices/{id}

The /admin tree is only mounted when cfg.AdminKey is set.
*/
package router
