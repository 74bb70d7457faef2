package decoder

import (
	"net/url"
	"testing"

	"yamdb/proj/internal/domain/filters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	d := New()

	var f filters.TitleFilters
	fieldErrs, err := d.Decode(&f, url.Values{"genre": {"drama"}, "year": {"1994"}})
	require.NoError(t, err)
	assert.Nil(t, fieldErrs)
	assert.Equal(t, filters.TitleFilters{Genre: "drama", Year: 1994}, f)

	f = filters.TitleFilters{}
	fieldErrs, err = d.Decode(&f, url.Values{"year": {"soon"}, "page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, "invalid value, expected int", fieldErrs["year"])
	assert.Equal(t, "unknown query parameter", fieldErrs["page"])
}
