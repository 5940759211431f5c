package business

import (
	"encoding/json"
	"net/url"

	"github.com/google/go-querystring/query"
)

// EncodeQuery turns a request struct with `url` tags into the flat query map
// the transport sends. Fields with several values keep the first.
func EncodeQuery(v any) (map[string]string, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for key, list := range values {
		if len(list) > 0 {
			out[key] = list[0]
		}
	}
	return out, nil
}

// The platform expects list and object parameters as JSON text.
func encodeJSONValue(key string, value any, values *url.Values) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	values.Set(key, string(encoded))
	return nil
}

// IDList encodes as a JSON array of strings.
type IDList []string

func (l IDList) EncodeValues(key string, values *url.Values) error {
	return encodeJSONValue(key, []string(l), values)
}

var (
	_ query.Encoder = IDList(nil)
	_ query.Encoder = AccountFields(nil)
	_ query.Encoder = VideoFields(nil)
	_ query.Encoder = VideoFilters{}
)
