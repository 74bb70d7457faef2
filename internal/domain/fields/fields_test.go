package fields

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingMarshalJSON(t *testing.T) {
	payload, err := json.Marshal(struct {
		Rating Rating `json:"rating"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating": null}`, string(payload))

	payload, err = json.Marshal(struct {
		Rating Rating `json:"rating"`
	}{NewRating(7.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating": 7.5}`, string(payload))
}
