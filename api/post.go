package api

// RescheduleRequest asks to move a post to a new date and time.
type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ExportResponse reports the filename an export landed in.
type ExportResponse struct {
	Filename string `json:"filename"`
}

// ConnectResponse carries the OAuth URL a connect request would visit.
type ConnectResponse struct {
	AuthURL string `json:"authUrl"`
}
