// Package plans holds the venue and outing-plan structures carried in the
// agent's final response payload. Field names mirror the backend's JSON.
package plans

// Place is a single venue suggested by the agent.
type Place struct {
	ID          string `json:"id"`
	PlaceID     string `json:"place_id,omitempty"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`

	Vibe       []string `json:"vibe,omitempty"`
	CrowdLevel string   `json:"crowdLevel,omitempty"`
	MusicType  string   `json:"musicType,omitempty"`
	PriceLevel int      `json:"priceLevel,omitempty"`

	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"reviewCount,omitempty"`

	Address      string    `json:"address,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	Distance     float64   `json:"distance,omitempty"`
	Location     *Location `json:"location,omitempty"`

	OpenNow       bool   `json:"openNow,omitempty"`
	CurrentStatus string `json:"currentStatus,omitempty"`

	Images []string `json:"images,omitempty"`

	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`

	Amenities []string `json:"amenities,omitempty"`
	Features  []string `json:"features,omitempty"`

	IsSaved bool `json:"is_saved,omitempty"`
}

// Location is a venue coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Plan is a multi-stop outing plan assembled by the agent.
type Plan struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	City          string `json:"city"`
	CoverImageURL string `json:"cover_image_url,omitempty"`

	Days      []PlanDay `json:"days"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`

	IsPublic  bool   `json:"is_public"`
	ShareCode string `json:"share_code,omitempty"`

	EstimatedCost        float64 `json:"estimated_cost,omitempty"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`
}

// PlanDay groups the ordered events of one day of a plan.
type PlanDay struct {
	DayNumber int         `json:"day_number"`
	Date      string      `json:"date,omitempty"`
	Events    []PlanEvent `json:"events"`
}

// PlanEvent is one stop in a plan.
type PlanEvent struct {
	ID         string `json:"id"`
	Order      int    `json:"order"`
	PlaceID    string `json:"place_id"`
	PlaceName  string `json:"place_name"`
	PlaceType  string `json:"place_type,omitempty"`
	PlaceImage string `json:"place_image,omitempty"`

	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`

	ActivityType string `json:"activity_type"`
	Notes        string `json:"notes,omitempty"`

	TransportToNext *Transport `json:"transport_to_next,omitempty"`
}

// Transport describes how to get from one stop to the next.
type Transport struct {
	Type            string  `json:"type"`
	DurationMinutes int     `json:"duration_minutes"`
	DistanceKm      float64 `json:"distance_km,omitempty"`
}
