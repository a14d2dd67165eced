package models

// BoardList is an open list on the remote board.
type BoardList struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Card is the subset of a created card the exporter reports on.
type Card struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IDList string `json:"idList"`
	URL    string `json:"shortUrl,omitempty"`
}

// ExportResult summarizes one export run.
type ExportResult struct {
	RunID   string `json:"run_id"`
	Total   int    `json:"total"`
	Created int    `json:"created"`
	Failed  int    `json:"failed"`
	Lists   int    `json:"lists"`
}
