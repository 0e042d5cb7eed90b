package courses

import (
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Rating is the value a reader gives a chapter.
type Rating int

const (
	RatingNegative Rating = -1
	RatingNeutral  Rating = 0
	RatingPositive Rating = 1
)

func (r Rating) Int() int {
	return int(r)
}

type rateChapterRequest struct {
	Rating int `validate:"oneof=-1 0 1"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ParseRating accepts exactly "-1", "0" or "1".
func ParseRating(raw string) (Rating, error) {
	raw = strings.TrimSpace(raw)
	value, err := strconv.Atoi(raw)
	if err != nil || strconv.Itoa(value) != raw {
		return 0, ErrInvalidRating
	}

	if err := getValidator().Struct(rateChapterRequest{Rating: value}); err != nil {
		return 0, ErrInvalidRating
	}

	return Rating(value), nil
}
