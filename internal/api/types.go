package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Loose holds a field the pipelines sometimes return as a number and
// sometimes as the literal string "N/A". It always renders as text.
type Loose string

func (l *Loose) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*l = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Loose(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = Loose(n.String())
	return nil
}

func (l Loose) String() string { return string(l) }

// Float returns the numeric value when the field carried one.
func (l Loose) Float() (float64, bool) {
	v, err := strconv.ParseFloat(string(l), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BusinessCandidate is one business returned by the search pipeline,
// eligible for selection. The list arrives already ordered by the backend.
type BusinessCandidate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	YelpURL     string `json:"yelp_url"`
	Rating      Loose  `json:"rating"`
	ReviewCount Loose  `json:"review_count"`
	Price       string `json:"price"`
	Latitude    Loose  `json:"latitude"`
	Longitude   Loose  `json:"longitude"`
	Summary     string `json:"short_summary"`
	PhotoURL    string `json:"photo_url"`
	Distance    Loose  `json:"distance"`
	Phone       string `json:"phone"`
}

// SearchResult is the response of /search-image and /search-caption.
type SearchResult struct {
	ChatID     string              `json:"chat_id"`
	Query      string              `json:"query"`
	AIResponse string              `json:"ai_response_text"`
	Businesses []BusinessCandidate `json:"businesses"`
}

// BusinessProfile is the normalized business block inside an analysis response.
type BusinessProfile struct {
	Name        string `json:"name"`
	Rating      Loose  `json:"rating"`
	Price       string `json:"price"`
	Address     string `json:"address"`
	URL         string `json:"url"`
	ReviewCount Loose  `json:"review_count"`
}

// BusinessDetails is the response of /analyze-business: the business profile
// plus the three review digests (what's great, could be better, recommendation).
type BusinessDetails struct {
	BusinessID    string          `json:"business_id"`
	Business      BusinessProfile `json:"business"`
	ContextSource string          `json:"context_source"`
	Positives     []string        `json:"P"`
	Negatives     []string        `json:"N"`
	Judgement     []string        `json:"J"`
}

// SearchQuery carries everything one search submission needs. ImagePath is
// empty for description-only searches; the client picks the endpoint from it.
type SearchQuery struct {
	Description string
	ImagePath   string
	City        string
	Latitude    string
	Longitude   string
	Date        string
	Time        string
}

// HasImage reports whether the query should be routed to the image endpoint.
func (q SearchQuery) HasImage() bool { return strings.TrimSpace(q.ImagePath) != "" }
