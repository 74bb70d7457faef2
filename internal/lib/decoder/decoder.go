package decoder

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/gorilla/schema"
)

// QueryDecoder fills structs tagged with `schema:"..."` from query strings.
type QueryDecoder struct {
	dec *schema.Decoder
}

func New() *QueryDecoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(false)
	dec.ZeroEmpty(true)
	return &QueryDecoder{dec: dec}
}

// Decode returns per-key messages when the query does not fit dst.
func (d *QueryDecoder) Decode(dst any, src url.Values) (map[string]string, error) {
	err := d.dec.Decode(dst, src)
	if err == nil {
		return nil, nil
	}
	var multiErr schema.MultiError
	if !errors.As(err, &multiErr) {
		return nil, err
	}
	keys := make([]string, 0, len(multiErr))
	for key := range multiErr {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fieldErrs := make(map[string]string, len(multiErr))
	for _, key := range keys {
		fieldErrs[key] = describe(multiErr[key])
	}
	return fieldErrs, nil
}

func describe(err error) string {
	var unknownErr schema.UnknownKeyError
	var convErr schema.ConversionError
	switch {
	case errors.As(err, &unknownErr):
		return "unknown query parameter"
	case errors.As(err, &convErr):
		return fmt.Sprintf("invalid value, expected %s", strings.ToLower(convErr.Type.Kind().String()))
	default:
		return err.Error()
	}
}
