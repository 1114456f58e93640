// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/danielhkuo/premios/models"
)

// NoSelectionMessage is shown when a vote arrives without a valid choice.
const NoSelectionMessage = "You didn't select a choice."

type indexPage struct {
	LatestQuestionList []models.Question
	Now                time.Time
}

type questionPage struct {
	Question     models.Question
	Choices      []models.Choice
	ErrorMessage string
	Now          time.Time
}

var funcs = template.FuncMap{
	"since": func(t, now time.Time) string {
		return humanize.RelTime(t, now, "ago", "from now")
	},
}

var tmpl = template.Must(template.New("").Funcs(funcs).Parse(`
{{define "header"}}<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>{{.}}</title>
</head>
<body>
{{end}}

{{define "footer"}}
</body>
</html>
{{end}}


{{define "index"}}
	{{template "header" "Polls"}}

	{{if .LatestQuestionList}}
		<ul>
		{{range .LatestQuestionList}}
			<li>
				<a href="/polls/{{.ID}}/">{{.QuestionText}}</a>
				<small>{{since .PubDate $.Now}}</small>
			</li>
		{{end}}
		</ul>
	{{else}}
		<p>No polls are available.</p>
	{{end}}

	{{template "footer"}}
{{end}}


{{define "detail"}}
	{{template "header" .Question.QuestionText}}

	<form action="/polls/{{.Question.ID}}/vote/" method="post">
		<fieldset>
			<legend><h1>{{.Question.QuestionText}}</h1></legend>
			{{if .ErrorMessage}}<p><strong>{{.ErrorMessage}}</strong></p>{{end}}
			{{range .Choices}}
				<input type="radio" name="choice" id="choice-{{.ID}}" value="{{.ID}}">
				<label for="choice-{{.ID}}">{{.ChoiceText}}</label><br>
			{{end}}
		</fieldset>
		<input type="submit" value="Vote">
	</form>

	{{template "footer"}}
{{end}}


{{define "results"}}
	{{template "header" .Question.QuestionText}}

	<h1>{{.Question.QuestionText}}</h1>
	<ul>
	{{range .Choices}}
		<li>{{.ChoiceText}} -- {{.Votes}} vote{{if ne .Votes 1}}s{{end}}</li>
	{{end}}
	</ul>
	<a href="/polls/{{.Question.ID}}/">Vote again?</a>

	{{template "footer"}}
{{end}}


{{define "error"}}
	{{template "header" .}}
	<h1>{{.}}</h1>
	{{template "footer"}}
{{end}}
`))

// render executes a template into a buffer first so a failing template never
// leaves a half-written page behind a 200.
func (h *PollsHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (h *PollsHandler) renderStatus(w http.ResponseWriter, status int) {
	h.render(w, status, "error", http.StatusText(status))
}
