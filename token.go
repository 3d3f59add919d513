package dijay

import (
	"fmt"
	"reflect"
	"strconv"

	ireflect "github.com/danpasecinic/dijay/internal/reflect"
)

// Token identifies a binding. Type tokens come from TypeOf; any other
// comparable value (a string, a *Key) works as an arbitrary key.
type Token = any

func TypeOf[T any]() reflect.Type {
	return ireflect.TypeOf[T]()
}

// Key is a typed token whose identity is its address: two keys created with
// the same name are distinct tokens.
type Key[T any] struct {
	name string
}

func NewKey[T any](name string) *Key[T] {
	return &Key[T]{name: name}
}

func (k *Key[T]) Name() string {
	return k.name
}

func (k *Key[T]) Type() reflect.Type {
	return ireflect.TypeOf[T]()
}

func (k *Key[T]) String() string {
	return fmt.Sprintf("Key[%s](%s)", ireflect.TypeKeyOf(k.Type()), k.name)
}

// TokenName renders a token for errors, logs and graphs.
func TokenName(token Token) string {
	switch t := token.(type) {
	case nil:
		return "<nil>"
	case reflect.Type:
		return ireflect.TypeKeyOf(t)
	case string:
		return strconv.Quote(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%T(%v)", token, token)
	}
}

func tokenNames(tokens []any) []string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = TokenName(t)
	}
	return names
}

// constructibleType returns the struct type a token can be auto-wired as.
func constructibleType(token Token) (reflect.Type, bool) {
	t, ok := token.(reflect.Type)
	if !ok || !ireflect.Constructible(t) {
		return nil, false
	}
	return t, true
}
