package core

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Extra holds JSON fields the decoder did not map to a named attribute.
type Extra map[string]json.RawMessage

// Keys returns the unknown field names in sorted order.
func (e Extra) Keys() []string {
	if len(e) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Recognizer is implemented by decoded objects that can report whether every
// field (recursively) mapped to a known attribute.
type Recognizer interface {
	Recognized() bool
}

func AllRecognized[T Recognizer](items []T) bool {
	for _, item := range items {
		if !item.Recognized() {
			return false
		}
	}
	return true
}

// Envelope is the shared outer shape of every Business API response.
type Envelope[T any] struct {
	RequestID string `json:"request_id"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      *T     `json:"data,omitempty"`
	Extra     Extra  `json:"-"`
}

type envelopeWire[T any] struct {
	RequestID string `json:"request_id"`
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      *T     `json:"data,omitempty"`
}

func (e *Envelope[T]) UnmarshalJSON(data []byte) error {
	var wire envelopeWire[T]
	if err := UnmarshalWithExtra(data, &wire, &e.Extra); err != nil {
		return err
	}
	e.RequestID = wire.RequestID
	e.Code = wire.Code
	e.Message = wire.Message
	e.Data = wire.Data
	return nil
}

// Recognized reports false when the envelope or its data carries unknown
// fields.
func (e Envelope[T]) Recognized() bool {
	if len(e.Extra) > 0 {
		return false
	}
	if e.Data == nil {
		return true
	}
	if r, ok := any(*e.Data).(Recognizer); ok {
		return r.Recognized()
	}
	if r, ok := any(e.Data).(Recognizer); ok {
		return r.Recognized()
	}
	return true
}

// Err reports a non-zero business code as an api_error. HTTP status is not
// considered.
func (e Envelope[T]) Err() error {
	if e.Code == 0 {
		return nil
	}
	raw := Envelope[json.RawMessage]{
		RequestID: e.RequestID,
		Code:      e.Code,
		Message:   e.Message,
		Extra:     e.Extra,
	}
	return &ClientError{
		Kind:     KindAPI,
		Message:  fmt.Sprintf("platform returned code %d", e.Code),
		Envelope: &raw,
	}
}

// UnmarshalWithExtra decodes data into target and stores every top-level key
// without a matching json tag on target into extra. Matching is
// case-insensitive like encoding/json. extra is set to nil when
// nothing is left over.
func UnmarshalWithExtra(data []byte, target any, extra *Extra) error {
	if err := json.Unmarshal(data, target); err != nil {
		return err
	}
	if extra == nil {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	known := knownJSONFields(reflect.TypeOf(target))
	leftover := Extra{}
	for key, value := range fields {
		if _, ok := known[strings.ToLower(key)]; ok {
			continue
		}
		leftover[key] = value
	}
	if len(leftover) == 0 {
		*extra = nil
		return nil
	}
	*extra = leftover
	return nil
}

func knownJSONFields(t reflect.Type) map[string]struct{} {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	known := map[string]struct{}{}
	if t == nil || t.Kind() != reflect.Struct {
		return known
	}
	collectJSONFields(t, known)
	return known
}

func collectJSONFields(t reflect.Type, known map[string]struct{}) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if field.Anonymous && name == "" {
			embedded := field.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct {
				collectJSONFields(embedded, known)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = field.Name
		}
		known[strings.ToLower(name)] = struct{}{}
	}
}
