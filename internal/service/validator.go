package service

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Submission messages shown to the client.
const (
	MsgNoData            = "No data provided."
	MsgRatingRequired    = "Please select a rating."
	MsgCategoryRequired  = "Please select a category."
	MsgMessageRequired   = "Please enter a message."
	MsgRecommendRequired = "Please select an option for recommendation."
	MsgRatingRange       = "Rating must be between 1 and 5."
	MsgRatingInvalid     = "Invalid rating value."
)

const (
	MinRating = 1
	MaxRating = 5
)

// Submission is a feedback payload that passed validation.
type Submission struct {
	Rating    int
	Category  string
	Message   string
	Recommend string
	// Name and Email are only read in the ungated variant.
	Name  string
	Email string
}

// ValidateSubmission checks a decoded JSON object and converts it into a Submission.
// Checks run in a fixed order and the first failure is returned.
func ValidateSubmission(payload map[string]any) (Submission, error) {
	if len(payload) == 0 {
		return Submission{}, invalid(MissingField, "", MsgNoData)
	}

	rawRating := payload["rating"]
	if isFalsy(rawRating) {
		return Submission{}, invalid(MissingField, "rating", MsgRatingRequired)
	}

	category, err := requiredText(payload, "category", MsgCategoryRequired)
	if err != nil {
		return Submission{}, err
	}
	message, err := requiredText(payload, "message", MsgMessageRequired)
	if err != nil {
		return Submission{}, err
	}
	recommend, err := requiredText(payload, "recommend", MsgRecommendRequired)
	if err != nil {
		return Submission{}, err
	}

	rating, err := coerceRating(rawRating)
	if err != nil {
		return Submission{}, err
	}
	if rating < MinRating || rating > MaxRating {
		return Submission{}, invalid(OutOfRange, "rating", MsgRatingRange)
	}

	return Submission{
		Rating:    rating,
		Category:  category,
		Message:   message,
		Recommend: recommend,
		Name:      optionalText(payload, "name"),
		Email:     optionalText(payload, "email"),
	}, nil
}

func requiredText(payload map[string]any, field, missingMsg string) (string, error) {
	v, ok := payload[field]
	if !ok || v == nil {
		return "", invalid(MissingField, field, missingMsg)
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(InvalidType, field, "Invalid "+field+" value.")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(MissingField, field, missingMsg)
	}
	return s, nil
}

func optionalText(payload map[string]any, field string) string {
	s, _ := payload[field].(string)
	return strings.TrimSpace(s)
}

// isFalsy treats null, false, zero, the empty string and empty collections as absent.
func isFalsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// coerceRating converts a JSON rating to an int. Fractions truncate toward zero.
func coerceRating(v any) (int, error) {
	switch x := v.(type) {
	case float64:
		t := math.Trunc(x)
		if t < math.MinInt32 || t > math.MaxInt32 {
			return 0, invalid(OutOfRange, "rating", MsgRatingRange)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, invalid(OutOfRange, "rating", MsgRatingRange)
			}
			return 0, invalid(InvalidType, "rating", MsgRatingInvalid)
		}
		return n, nil
	case bool:
		// false never gets here
		return 1, nil
	}
	return 0, invalid(InvalidType, "rating", MsgRatingInvalid)
}
