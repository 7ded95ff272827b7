package service

// Response body shapes for the envelope. Success is always present so
// callers can branch on it without checking the status code.

type createBody struct {
	Message string `json:"message"`
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type readBody struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Count     int    `json:"count"`
	Records   []any  `json:"records"`
}

type errorBody struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}
