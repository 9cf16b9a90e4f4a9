package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
)

// Field length limits, matching the database schema
const (
	TitleMaxLength       = 100
	DescriptionMaxLength = 500
	CommentsMaxLength    = 500
	LocationMaxLength    = 100
	NicknameMaxLength    = 50
	CategoryNameMax      = 50
	CategoryDescMax      = 255
)

// RequireText checks a mandatory string field against a maximum length.
func RequireText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s cannot be empty", field))
	}
	if len(value) > maxLen {
		return apperrors.NewValidationError(fmt.Sprintf("%s exceeds maximum length of %d", field, maxLen))
	}
	return nil
}

// OptionalText checks a non-mandatory string field against a maximum length.
func OptionalText(field, value string, maxLen int) error {
	if len(value) > maxLen {
		return apperrors.NewValidationError(fmt.Sprintf("%s exceeds maximum length of %d", field, maxLen))
	}
	return nil
}

// Rating checks the review rating bounds.
func Rating(rating int) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return apperrors.NewValidationError(fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating))
	}
	return nil
}

// Price checks that a price is not negative.
func Price(price float64) error {
	if price < 0 {
		return apperrors.NewValidationError("price must not be negative")
	}
	return nil
}

// EstimatedTime checks that an errand's estimated time is positive.
// A zero estimate would make the hourly-rate sort divide by zero.
func EstimatedTime(minutes int) error {
	if minutes <= 0 {
		return apperrors.NewValidationError("estimated time must be a positive number of minutes")
	}
	return nil
}

// Deadline checks that an errand deadline lies in the future.
func Deadline(deadline time.Time, now time.Time) error {
	if !deadline.After(now) {
		return apperrors.NewValidationError("deadline must be in the future")
	}
	return nil
}

// ForeignID checks that an opaque foreign identifier is positive.
func ForeignID(field string, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be positive", field))
	}
	return nil
}
