package fields

import (
	"strconv"
)

// Rating is the mean review score of a title. A title without reviews has no
// rating, which is distinct from a rating of zero.
type Rating struct {
	Value float64
	Valid bool
}

func NewRating(value float64) Rating {
	return Rating{Value: value, Valid: true}
}

func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(r.Value, 'f', -1, 64)), nil
}

func (r Rating) String() string {
	if !r.Valid {
		return "none"
	}
	return strconv.FormatFloat(r.Value, 'f', 2, 64)
}
