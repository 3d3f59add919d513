package reflect

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeFor[context.Context]()
	errorType   = reflect.TypeFor[error]()
)

type Param struct {
	Index    int
	Type     reflect.Type
	Context  bool
	Wildcard bool
}

type Result struct {
	Type     reflect.Type
	HasError bool
}

func (r Result) HasValue() bool {
	return r.Type != nil
}

func FuncParams(fn any) ([]Param, Result, error) {
	if fn == nil {
		return nil, Result{}, errors.New("function is nil")
	}

	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func {
		return nil, Result{}, fmt.Errorf("expected a function, got %s", t)
	}
	if reflect.ValueOf(fn).IsNil() {
		return nil, Result{}, errors.New("function is nil")
	}
	if t.IsVariadic() {
		return nil, Result{}, fmt.Errorf("variadic function %s is not supported", t)
	}

	params := make([]Param, t.NumIn())
	for i := range t.NumIn() {
		in := t.In(i)
		params[i] = Param{
			Index:    i,
			Type:     in,
			Context:  in == contextType,
			Wildcard: in != contextType && IsWildcard(in),
		}
	}

	result, err := funcResult(t)
	if err != nil {
		return nil, Result{}, err
	}

	return params, result, nil
}

func funcResult(t reflect.Type) (Result, error) {
	switch t.NumOut() {
	case 0:
		return Result{}, nil
	case 1:
		if t.Out(0) == errorType {
			return Result{HasError: true}, nil
		}
		return Result{Type: t.Out(0)}, nil
	case 2:
		if t.Out(1) != errorType {
			return Result{}, fmt.Errorf("second result of %s must be error", t)
		}
		return Result{Type: t.Out(0), HasError: true}, nil
	default:
		return Result{}, fmt.Errorf("function %s returns too many values", t)
	}
}

func IsContext(t reflect.Type) bool {
	return t == contextType
}
