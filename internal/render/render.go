// Package render turns search outcomes into HTML for the display region.
package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/five82/marquee/internal/omdb"
	"github.com/five82/marquee/internal/search"
)

const fragmentTemplates = `
{{- define "movie" -}}
<div class="movie"><h2>{{.Title}} ({{.Year}})</h2><img src="{{.Poster}}" alt="Poster of {{.Title}}" style="max-width: 200px;"><p><strong>Plot:</strong> {{.Plot}}</p></div>
{{- end -}}
{{- define "status" -}}<p>{{.}}</p>{{- end -}}
`

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>marquee</title>
</head>
<body>
<form action="/" method="get">
<input type="text" id="movie-query" name="q" value="{{.Query}}" placeholder="Movie title" autofocus>
<button type="submit" id="search-button">Search</button>
</form>
<div id="movie-info">{{.Fragment}}</div>
</body>
</html>
`

var (
	fragments = template.Must(template.New("fragments").Parse(fragmentTemplates))
	page      = template.Must(template.New("page").Parse(pageTemplate))
)

// Fragment renders o as the display region's complete content. Results
// become one block per movie, in order, with nothing between blocks. Other
// outcomes become a single paragraph; the idle outcome renders as "".
func Fragment(o search.Outcome) (template.HTML, error) {
	var b strings.Builder
	switch o.Kind {
	case search.KindIdle:
		return "", nil
	case search.KindResults:
		for _, m := range o.Movies {
			if err := writeMovie(&b, m); err != nil {
				return "", err
			}
		}
	default:
		if err := fragments.ExecuteTemplate(&b, "status", o.Message()); err != nil {
			return "", fmt.Errorf("render status: %w", err)
		}
	}
	return template.HTML(b.String()), nil
}

func writeMovie(w io.Writer, m omdb.Movie) error {
	if err := fragments.ExecuteTemplate(w, "movie", m); err != nil {
		return fmt.Errorf("render movie %s: %w", m.IMDbID, err)
	}
	return nil
}

// PageData feeds Page.
type PageData struct {
	Query    string
	Fragment template.HTML
}

// Page writes the full single-page document with the display region filled in.
func Page(w io.Writer, data PageData) error {
	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
