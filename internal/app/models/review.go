package models

import "time"

// Rating bounds for reviews
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating left by a reviewer for exactly one of an errand or a
// service offering. Exactly one of ErrandSeq and ServiceOfferingID is set;
// the pair is never repointed after creation.
type Review struct {
	ID                int64     `json:"id"`
	ReviewerID        int64     `json:"reviewerId"`
	Rating            int       `json:"rating"`
	Comments          string    `json:"comments"`
	CreatedDate       time.Time `json:"createdDate"`
	ErrandSeq         *int64    `json:"errandSeq,omitempty"`
	ServiceOfferingID *int64    `json:"serviceOfferingId,omitempty"`
}

// IsErrandReview reports whether the review targets an errand.
func (r *Review) IsErrandReview() bool {
	return r.ErrandSeq != nil
}

// IsServiceOfferingReview reports whether the review targets a service offering.
func (r *Review) IsServiceOfferingReview() bool {
	return r.ServiceOfferingID != nil
}
