package availability

// TimeSlot is a discrete bookable interval at a club on a given date.
type TimeSlot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Price     int64  `json:"price"`
	PeakHour  bool   `json:"peak_hour,omitempty"`
	CourtID   string `json:"court_id,omitempty"`
}
