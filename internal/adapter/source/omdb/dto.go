package omdb

// SearchResponse is the body of a ?s= request
type SearchResponse struct {
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults,omitempty"`
	Response     string       `json:"Response"` // "True" or "False"
	Error        string       `json:"Error,omitempty"`
}

// SearchItem is one entry of SearchResponse.Search
type SearchItem struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// DetailResponse is the body of an ?i= request
type DetailResponse struct {
	ImdbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Type       string `json:"Type"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language"`
	Director   string `json:"Director"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes"`
	Poster     string `json:"Poster"`
	Response   string `json:"Response"`
	Error      string `json:"Error,omitempty"`
}

// failed reports whether upstream answered with Response "False"
func failed(response string) bool {
	return response == "False"
}
