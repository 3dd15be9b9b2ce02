package release_hold

// ReleaseHoldRequest HTTP модель запроса на снятие холда
type ReleaseHoldRequest struct {
	SessionID string `json:"sessionId"`
	ProductID int64  `json:"productId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// ReleaseHoldResponse HTTP модель ответа на снятие холда
type ReleaseHoldResponse struct {
	Released bool `json:"released"`
}
