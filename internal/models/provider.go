package models

type Provider struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Avatar         string          `json:"avatar"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	Specialty      string          `json:"specialty"`
	Location       string          `json:"location"`
	Coordinates    *Coordinates    `json:"coordinates,omitempty"`
	Distance       string          `json:"distance,omitempty"`
	HourlyRate     string          `json:"hourly_rate"`
	CompletedJobs  int             `json:"completed_jobs"`
	IsVerified     bool            `json:"is_verified"`
	Badges         []string        `json:"badges"`
	Description    string          `json:"description"`
	Qualifications []Qualification `json:"qualifications"`
	IsOnline       bool            `json:"is_online"`
}

type Qualification struct {
	ID                 string `json:"id"`
	Type               string `json:"type"` // certificate, license, experience, reference
	Title              string `json:"title"`
	Description        string `json:"description"`
	ImageURL           string `json:"image_url,omitempty"`
	VerificationStatus string `json:"verification_status"`
	DateAdded          string `json:"date_added"`
}

// ProviderLocationUpdate carries a live position report from a provider.
type ProviderLocationUpdate struct {
	Coordinates Coordinates `json:"coordinates"`
	IsOnline    bool        `json:"is_online"`
}
