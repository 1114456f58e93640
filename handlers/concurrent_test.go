// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danielhkuo/premios/testutil"
)

// TestConcurrentVotes verifies that simultaneous votes on the same choice are
// all counted
func TestConcurrentVotes(t *testing.T) {
	h, db := setupPollsHandler(t)

	q := testutil.CreateTestQuestion(t, db, "Popular?", -time.Hour)
	yes := testutil.AddTestChoice(t, db, q, "Yes", 0)
	no := testutil.AddTestChoice(t, db, q, "No", 0)

	numVoters := 20

	var redirects atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			choice := yes
			if voterIdx%4 == 0 {
				choice = no
			}

			form := url.Values{"choice": {choice}}
			req := withID(testutil.MakeFormRequest("POST", "/polls/"+q+"/vote/", form), q)
			w := httptest.NewRecorder()

			h.Vote(w, req)

			if w.Code == http.StatusFound {
				redirects.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(redirects.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, redirects.Load())
	}

	if got := testutil.Votes(t, db, yes); got != 15 {
		t.Errorf("Expected 15 votes for Yes, got %d", got)
	}
	if got := testutil.Votes(t, db, no); got != 5 {
		t.Errorf("Expected 5 votes for No, got %d", got)
	}
}

// TestConcurrentVotesAcrossQuestions verifies that votes on different
// questions do not interfere
func TestConcurrentVotesAcrossQuestions(t *testing.T) {
	h, db := setupPollsHandler(t)

	numQuestions := 5
	votesPerQuestion := 4
	choices := make([]string, numQuestions)
	questions := make([]string, numQuestions)

	for i := 0; i < numQuestions; i++ {
		questions[i] = testutil.CreateTestQuestion(t, db, "Parallel question", -time.Duration(i+1)*time.Minute)
		choices[i] = testutil.AddTestChoice(t, db, questions[i], "A", 0)
		testutil.AddTestChoice(t, db, questions[i], "B", 0)
	}

	var wg sync.WaitGroup
	for i := 0; i < numQuestions; i++ {
		for v := 0; v < votesPerQuestion; v++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				form := url.Values{"choice": {choices[idx]}}
				req := withID(testutil.MakeFormRequest("POST", "/polls/"+questions[idx]+"/vote/", form), questions[idx])
				w := httptest.NewRecorder()

				h.Vote(w, req)
			}(i)
		}
	}

	wg.Wait()

	for i, c := range choices {
		if got := testutil.Votes(t, db, c); got != votesPerQuestion {
			t.Errorf("Question %d: expected %d votes, got %d", i, votesPerQuestion, got)
		}
	}
}
