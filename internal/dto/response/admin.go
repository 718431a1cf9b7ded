package response

// DashboardResponse is the admin landing page counters.
type DashboardResponse struct {
	VehicleCount              int64 `json:"vehicleCount"`
	VerifiedUserCount         int64 `json:"verifiedUserCount"`
	NotVerifiedUserCount      int64 `json:"notVerifiedUserCount"`
	AdminCount                int64 `json:"adminCount"`
	PendingReservationCount   int64 `json:"pendingReservationCount"`
	FinishedReservationCount  int64 `json:"finishedReservationCount"`
	CancelledReservationCount int64 `json:"cancelledReservationCount"`
	RejectedReservationCount  int64 `json:"rejectedReservationCount"`
}

// RevenueResponse sums totalPriceAfterOvertime over finished
// reservations, optionally within a month/year window.
type RevenueResponse struct {
	TotalRevenue int64          `json:"totalRevenue"`
	Details      RevenueDetails `json:"details"`
}

type RevenueDetails struct {
	TotalFinishedReservations int64  `json:"totalFinishedReservations"`
	StartDate                 string `json:"startDate"`
	EndDate                   string `json:"endDate"`
	Month                     string `json:"month"`
	Year                      string `json:"year"`
}
