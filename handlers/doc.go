// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the polls site.

# Handler Types

Each handler is a struct with store, logger and clock dependencies:

  - PollsHandler: public pages (index, detail, results, vote)
  - AdminHandler: JSON administration of questions and choices

The clock is injected so visibility rules are evaluated against an explicit
"now":

	pollsHandler := handlers.NewPollsHandler(st, log, time.Now)

# Public Pages

	GET  /polls/              → Index (5 latest published questions)
	GET  /polls/{id}/         → Detail (404 for future questions)
	GET  /polls/{id}/results/ → Results (404 with fewer than 2 choices)
	POST /polls/{id}/vote/    → Vote (redirects to results)

An empty index reads "No polls are available.". A vote without a valid
choice re-renders the detail page with "You didn't select a choice.".

# Administration

All admin routes require X-Admin-Key:

	GET    /admin/questions        → ListQuestions (?q=, ?pub_date=, ?page=)
	POST   /admin/questions        → CreateQuestion (inline choices)
	GET    /admin/questions/{id}   → GetQuestion
	PUT    /admin/questions/{id}   → UpdateQuestion
	DELETE /admin/questions/{id}   → DeleteQuestion (cascades)
	GET    /admin/choices          → ListChoices (?question=)
	GET    /admin/choices/{id}     → GetChoice
	PUT    /admin/choices/{id}     → UpdateChoice (may edit votes)
	DELETE /admin/choices/{id}     → DeleteChoice

Question forms must carry at least two choices; inline choices never expose
or change vote counts.
*/
package handlers
