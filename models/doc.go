// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, form, and response types for the polls site.

# Domain Types

  - Question: id, question_text, pub_date
  - Choice: id, question_id, choice_text, votes

A question is public once pub_date <= now. WasPublishedRecently holds for
now - 24h < pub_date <= now.

# Form Types

Admin input, also used for YAML fixtures:

  - QuestionForm: question_text, pub_date, inline choices
  - ChoiceForm: optional id, choice_text
  - UpdateChoiceRequest: choice_text, optional votes

Validate returns ValidationErrors keyed by field path:

	if err := form.Validate(); err != nil {
		// err is models.ValidationErrors{"choices": "Please submit at least 2 choices."}
	}

# Response Types

  - QuestionListResponse: one page of QuestionRow
  - QuestionAdminResponse: question with inline choices (no votes)
  - ErrorResponse: error, message, fields

# Change-list Filters

DateRange converts "today", "past_7_days", "this_month" and "this_year" into
half-open UTC ranges.
*/
package models
