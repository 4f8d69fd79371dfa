package repositories

import (
	"time"

	"pieceJobBack/internal/models"
)

type seedBid struct {
	id, providerID, amount, message string
	duration                        int
	ago                             time.Duration
}

type seedJob struct {
	job  models.Job
	ago  time.Duration
	bids []seedBid
}

func coords(lat, lon float64) *models.Coordinates {
	return &models.Coordinates{Latitude: lat, Longitude: lon}
}

var demoProviders = []models.Provider{
	{
		ID: "provider1", Name: "Sarah Mokoena", Rating: 4.9, ReviewCount: 127, Specialty: "Deep Cleaning",
		Location: "Sandton", Coordinates: coords(-26.1076, 28.0567), HourlyRate: "R180/hour", CompletedJobs: 245,
		IsVerified: true, Badges: []string{"Top Rated", "Quick Response", "Eco-Friendly"},
		Description: "Professional cleaner with 8+ years experience. Specializing in residential deep cleaning and move-in/out services.",
		Qualifications: []models.Qualification{{ID: "qual1", Type: "certificate", Title: "Professional Cleaning Certificate",
			Description: "Certified by SA Cleaning Institute", VerificationStatus: "verified", DateAdded: "2023-01-15"}},
		IsOnline: true,
	},
	{
		ID: "provider2", Name: "Themba Dlamini", Rating: 4.8, ReviewCount: 89, Specialty: "Garden Maintenance",
		Location: "Rosebank", Coordinates: coords(-26.1448, 28.0436), HourlyRate: "R150/hour", CompletedJobs: 156,
		IsVerified: true, Badges: []string{"Eco-Friendly", "Reliable", "Landscaping Expert"},
		Description: "Experienced gardener with expertise in lawn care, hedge trimming, and landscape maintenance.",
		Qualifications: []models.Qualification{{ID: "qual2", Type: "certificate", Title: "Horticulture Certificate",
			Description: "Certified in garden maintenance and landscaping", VerificationStatus: "verified", DateAdded: "2023-02-20"}},
		IsOnline: true,
	},
	{
		ID: "provider3", Name: "Maria Santos", Rating: 4.7, ReviewCount: 203, Specialty: "Interior Painting",
		Location: "Melville", Coordinates: coords(-26.1875, 28.0103), HourlyRate: "R200/hour", CompletedJobs: 312,
		IsVerified: true, Badges: []string{"Master Painter", "Quality Guarantee", "Interior Specialist"},
		Description: "Professional painter with 12+ years experience in interior and exterior painting.",
		Qualifications: []models.Qualification{{ID: "qual3", Type: "license", Title: "Professional Painter License",
			Description: "Licensed professional painter", VerificationStatus: "verified", DateAdded: "2023-01-10"}},
		IsOnline: true,
	},
	{
		ID: "provider4", Name: "John Williams", Rating: 4.9, ReviewCount: 156, Specialty: "Plumbing",
		Location: "Fourways", Coordinates: coords(-25.9269, 28.0094), HourlyRate: "R250/hour", CompletedJobs: 189,
		IsVerified: true, Badges: []string{"Licensed Plumber", "Emergency Service", "24/7 Available"},
		Description: "Licensed plumber with 15+ years experience. Available for emergency repairs and installations.",
		Qualifications: []models.Qualification{{ID: "qual4", Type: "license", Title: "Master Plumber License",
			Description: "Licensed master plumber with COC", VerificationStatus: "verified", DateAdded: "2023-01-05"}},
		IsOnline: true,
	},
	{
		ID: "provider5", Name: "Linda Nkomo", Rating: 4.6, ReviewCount: 78, Specialty: "House Cleaning",
		Location: "Sandton", Coordinates: coords(-26.1076, 28.0567), HourlyRate: "R160/hour", CompletedJobs: 134,
		IsVerified: true, Badges: []string{"Reliable", "Detail Oriented"},
		Description: "Professional cleaning service with 6 years experience and excellent references.",
		IsOnline: true,
	},
	{
		ID: "provider6", Name: "David Mthembu", Rating: 4.8, ReviewCount: 92, Specialty: "Electrical Work",
		Location: "Randburg", Coordinates: coords(-26.0939, 27.9621), HourlyRate: "R280/hour", CompletedJobs: 167,
		IsVerified: true, Badges: []string{"Licensed Electrician", "Safety Certified", "COC Provider"},
		Description: "Qualified electrician with 10+ years experience in residential electrical work and safety compliance.",
		Qualifications: []models.Qualification{{ID: "qual5", Type: "license", Title: "Electrical License",
			Description: "Licensed electrician with COC certification", VerificationStatus: "verified", DateAdded: "2023-01-12"}},
		IsOnline: false,
	},
}

// listed oldest first so that inserting at the head leaves the newest on top
var demoJobs = []seedJob{
	{
		job: models.Job{ID: "3", CustomerID: "customer2", Title: "Interior Wall Painting", Category: "Painting",
			Description: "Need to paint the interior walls of my 2-bedroom apartment. All materials will be provided.",
			Location: "Melville, Johannesburg", Coordinates: coords(-26.1875, 28.0103),
			Budget: "R1500 - R2500", EstimatedDuration: 6, Urgency: models.UrgencyMedium},
		ago: 24 * time.Hour,
		bids: []seedBid{{"bid4", "provider3", "R1800",
			"Professional painter with 12+ years experience. I guarantee clean, precise work and will protect all furniture and floors.", 6, 18 * time.Hour}},
	},
	{
		job: models.Job{ID: "8", CustomerID: "customer7", Title: "Handyman - Multiple Small Repairs", Category: "Handyman",
			Description: "Various small repairs around the house: door hinges, broken tiles, holes in walls, loose cabinet handles.",
			Location: "Greenside, Johannesburg", Coordinates: coords(-26.1542, 28.0186),
			Budget: "R800 - R1200", EstimatedDuration: 4, Urgency: models.UrgencyLow},
		ago: 12 * time.Hour,
	},
	{
		job: models.Job{ID: "7", CustomerID: "customer6", Title: "Kitchen Deep Clean & Appliance Service", Category: "Cleaning",
			Description: "Complete kitchen deep clean including oven, refrigerator, microwave, and all surfaces.",
			Location: "Parktown, Johannesburg", Coordinates: coords(-26.1715, 28.0441),
			Budget: "R600 - R900", EstimatedDuration: 4, Urgency: models.UrgencyMedium},
		ago: 8 * time.Hour,
	},
	{
		job: models.Job{ID: "5", CustomerID: "customer4", Title: "Electrical Socket Installation", Category: "Electrical",
			Description: "Need 3 new electrical sockets installed in home office. Must be qualified electrician with valid COC.",
			Location: "Randburg, Johannesburg", Coordinates: coords(-26.0939, 27.9621),
			Budget: "R800 - R1200", EstimatedDuration: 3, Urgency: models.UrgencyMedium},
		ago: 6 * time.Hour,
	},
	{
		job: models.Job{ID: "6", CustomerID: "customer5", Title: "Moving Assistance - 2 Bedroom Apartment", Category: "Moving",
			Description: "Need help moving from 2-bedroom apartment to new house across town. Truck will be provided.",
			Location: "Bryanston, Johannesburg", Coordinates: coords(-26.0469, 28.0187),
			Budget: "R1000 - R1500", EstimatedDuration: 5, Urgency: models.UrgencyHigh},
		ago: 5 * time.Hour,
	},
	{
		job: models.Job{ID: "2", CustomerID: "customer1", Title: "Garden Maintenance & Lawn Care", Category: "Gardening",
			Description: "Weekly garden maintenance needed for large suburban garden. Must have own equipment and transport.",
			Location: "Rosebank, Johannesburg", Coordinates: coords(-26.1448, 28.0436),
			Budget: "R400 - R600", EstimatedDuration: 3, Urgency: models.UrgencyLow},
		ago: 4 * time.Hour,
		bids: []seedBid{{"bid3", "provider2", "R500",
			"I have 10+ years of gardening experience and all professional equipment.", 3, 2 * time.Hour}},
	},
	{
		job: models.Job{ID: "4", CustomerID: "customer3", Title: "Bathroom Plumbing Repair", Category: "Plumbing",
			Description: "Urgent plumbing repair needed in main bathroom. Leaking tap in basin and blocked drain in shower.",
			Location: "Fourways, Johannesburg", Coordinates: coords(-25.9269, 28.0094),
			Budget: "R500 - R800", EstimatedDuration: 2, Urgency: models.UrgencyHigh},
		ago: 3 * time.Hour,
		bids: []seedBid{{"bid5", "provider4", "R650",
			"Licensed plumber with 15+ years experience. All work comes with 6-month guarantee.", 2, time.Hour}},
	},
	{
		job: models.Job{ID: "1", CustomerID: "customer1", Title: "Deep Clean 3-Bedroom House", Category: "Cleaning",
			Description: "Need a thorough cleaning of my 3-bedroom house in Sandton. Kitchen, bathrooms, and all living areas.",
			Location: "Sandton, Johannesburg", Coordinates: coords(-26.1076, 28.0567),
			Budget: "R800 - R1200", EstimatedDuration: 4, Urgency: models.UrgencyMedium},
		ago: 2 * time.Hour,
		bids: []seedBid{
			{"bid1", "provider1", "R950", "Hi! I have 8+ years of experience in deep cleaning and use only eco-friendly products.", 4, time.Hour},
			{"bid2", "provider5", "R850", "Professional cleaning service with 6 years experience. Can start tomorrow morning.", 5, 45 * time.Minute},
		},
	},
}

// Seed loads the Johannesburg demo providers, jobs and bids, with
// timestamps relative to now.
func Seed(r *Registry, now time.Time) error {
	for _, p := range demoProviders {
		r.UpsertProvider(p)
	}
	for _, sj := range demoJobs {
		job := sj.job
		job.PostedAt = now.Add(-sj.ago)
		if _, err := r.CreateJob(job); err != nil {
			return err
		}
		for _, sb := range sj.bids {
			bid := models.Bid{
				ID:                sb.id,
				JobID:             job.ID,
				ProviderID:        sb.providerID,
				Amount:            sb.amount,
				Message:           sb.message,
				EstimatedDuration: sb.duration,
				SubmittedAt:       now.Add(-sb.ago),
			}
			if _, err := r.CreateBid(bid); err != nil {
				return err
			}
		}
	}
	return nil
}
