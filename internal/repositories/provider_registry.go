package repositories

import (
	"math"

	"pieceJobBack/internal/models"
)

// UpsertProvider inserts or replaces a provider profile.
func (r *Registry) UpsertProvider(p models.Provider) models.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneProvider(p)
	stored.Distance = ""
	if _, exists := r.providers[p.ID]; !exists {
		r.providerOrder = append(r.providerOrder, p.ID)
	}
	r.providers[p.ID] = &stored
	return cloneProvider(stored)
}

// GetProvider returns a copy of the provider profile.
func (r *Registry) GetProvider(id string) (models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return models.Provider{}, models.ErrProviderNotFound
	}
	return cloneProvider(*p), nil
}

// ListProviders returns providers in registration order.
func (r *Registry) ListProviders() []models.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Provider, 0, len(r.providerOrder))
	for _, id := range r.providerOrder {
		out = append(out, cloneProvider(*r.providers[id]))
	}
	return out
}

// UpdateProviderLocation records the provider's live position and availability.
func (r *Registry) UpdateProviderLocation(id string, update models.ProviderLocationUpdate) (models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok {
		return models.Provider{}, models.ErrProviderNotFound
	}
	c := update.Coordinates
	p.Coordinates = &c
	p.IsOnline = update.IsOnline
	return cloneProvider(*p), nil
}

// AddReview stores a review. When the reviewee is a provider its rating
// becomes the mean of its stored reviews rounded to one decimal.
func (r *Registry) AddReview(review models.Review) (models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jobs[review.JobID]; !ok {
		return models.Review{}, models.ErrJobNotFound
	}
	r.reviews = append(r.reviews, review)

	p, ok := r.providers[review.RevieweeID]
	if !ok {
		return review, nil
	}
	var sum, count int
	for _, rv := range r.reviews {
		if rv.RevieweeID == p.ID {
			sum += rv.Rating
			count++
		}
	}
	p.Rating = math.Round(float64(sum)/float64(count)*10) / 10
	p.ReviewCount = count
	return review, nil
}

// ListReviews returns reviews left for reviewee in creation order.
func (r *Registry) ListReviews(revieweeID string) []models.Review {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Review{}
	for _, rv := range r.reviews {
		if rv.RevieweeID == revieweeID {
			out = append(out, rv)
		}
	}
	return out
}

func cloneProvider(p models.Provider) models.Provider {
	if p.Coordinates != nil {
		c := *p.Coordinates
		p.Coordinates = &c
	}
	p.Badges = append([]string{}, p.Badges...)
	p.Qualifications = append([]models.Qualification{}, p.Qualifications...)
	return p
}
