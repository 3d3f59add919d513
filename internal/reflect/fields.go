package reflect

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

type Field struct {
	Index    int
	Name     string
	Type     reflect.Type
	Token    string
	Optional bool
	Wildcard bool
}

type fieldCacheKey struct {
	typ reflect.Type
	tag string
}

type fieldsResult struct {
	fields []Field
	err    error
}

var fieldCache sync.Map

// StructFields returns the injectable fields of t, a struct or a pointer to one.
// Only fields carrying tagKey are considered; a tag value of "-" excludes the field.
func StructFields(t reflect.Type, tagKey string) ([]Field, error) {
	if !Constructible(t) {
		return nil, fmt.Errorf("%s is not a struct type", TypeKeyOf(t))
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	key := fieldCacheKey{typ: t, tag: tagKey}
	if cached, ok := fieldCache.Load(key); ok {
		res := cached.(fieldsResult)
		return res.fields, res.err
	}

	fields, err := parseFields(t, tagKey)
	fieldCache.Store(key, fieldsResult{fields: fields, err: err})
	return fields, err
}

func parseFields(t reflect.Type, tagKey string) ([]Field, error) {
	var fields []Field

	for i := range t.NumField() {
		sf := t.Field(i)

		tag, ok := sf.Tag.Lookup(tagKey)
		if !ok || tag == "-" {
			continue
		}

		if !sf.IsExported() {
			return nil, fmt.Errorf("field %s.%s is tagged for injection but unexported", t.Name(), sf.Name)
		}

		token, optional := parseTag(tag)
		fields = append(
			fields, Field{
				Index:    i,
				Name:     sf.Name,
				Type:     sf.Type,
				Token:    token,
				Optional: optional,
				Wildcard: token == "" && IsWildcard(sf.Type),
			},
		)
	}

	return fields, nil
}

func parseTag(tag string) (string, bool) {
	parts := strings.Split(tag, ",")
	token := strings.TrimSpace(parts[0])

	optional := false
	for _, p := range parts[1:] {
		if strings.TrimSpace(p) == "optional" {
			optional = true
		}
	}

	return token, optional
}
