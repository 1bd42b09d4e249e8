package omdb

import "strings"

// PosterUnavailable is the value OMDb puts in Poster when it has no image.
const PosterUnavailable = "N/A"

// SearchResponse mirrors the payload returned by ?s=.
type SearchResponse struct {
	Response     string `json:"Response"`
	Search       []Stub `json:"Search"`
	TotalResults string `json:"totalResults"`
	Error        string `json:"Error"`
}

// Found reports whether the provider answered with a result list.
// OMDb uses the same "False" envelope for zero hits and for request errors.
func (r SearchResponse) Found() bool {
	return r.Response == "True"
}

// Stub is a search hit. Only IMDbID is used, to drive the detail fetch.
type Stub struct {
	IMDbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Movie mirrors the payload returned by ?i=. Every field is an opaque display
// string; nothing is validated.
type Movie struct {
	IMDbID   string `json:"imdbID"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Poster   string `json:"Poster"`
	Plot     string `json:"Plot"`
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

// HasPoster reports whether Poster points at an image rather than the
// provider's sentinel.
func (m Movie) HasPoster() bool {
	p := strings.TrimSpace(m.Poster)
	return p != "" && p != PosterUnavailable
}
