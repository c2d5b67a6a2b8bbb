package elections

import "time"

const nationalAssemblySeats = 500

type PendingResults struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ElectionDate string `json:"electionDate"`
	// Countdown is whole days left until polls open.
	Countdown int `json:"countdown"`
}

type SeatCount struct {
	TotalSeats int     `json:"totalSeats"`
	Counted    int     `json:"counted"`
	Turnout    float64 `json:"turnout"`
}

type CountingResults struct {
	Status           string    `json:"status"`
	LastUpdated      string    `json:"lastUpdated"`
	NationalAssembly SeatCount `json:"nationalAssembly"`
	ByProvince       []any     `json:"byProvince"`
	Message          string    `json:"message"`
}

// Results is PendingResults before polls open and CountingResults after.
func (s *Service) Results() any {
	now := s.now()
	if now.Before(s.electionAt) {
		return PendingResults{
			Status:       ResultsNotStarted,
			Message:      "Kết quả bầu cử sẽ được cập nhật vào ngày " + s.electionAt.Format("02/01/2006"),
			ElectionDate: s.electionAt.Format(time.DateOnly),
			Countdown:    int(s.electionAt.Sub(now).Hours() / 24),
		}
	}
	return CountingResults{
		Status:           ResultsCounting,
		LastUpdated:      now.UTC().Format(time.RFC3339),
		NationalAssembly: SeatCount{TotalSeats: nationalAssemblySeats},
		ByProvince:       []any{},
		Message:          "Đang kiểm phiếu...",
	}
}
