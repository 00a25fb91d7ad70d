package api

import "time"

// DefaultBaseURL is the single source of truth for the delivery API target.
const DefaultBaseURL = "https://deliver.kontent.ai"

// NewDefaultClient builds a client pointed at the default delivery API URL.
func NewDefaultClient(projectID, apiKey string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, projectID, apiKey, timeout...)
}
