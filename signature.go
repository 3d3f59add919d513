package dijay

import (
	"errors"
	"fmt"
	"reflect"

	ireflect "github.com/danpasecinic/dijay/internal/reflect"
)

// TagKey is the struct tag that marks class fields for injection:
//
//	type Service struct {
//		DB     *DB    `dijay:""`
//		DSN    string `dijay:"dsn"`
//		Cache  *Cache `dijay:",optional"`
//		Plugin any    `dijay:""`  // never injected
//	}
const TagKey = "dijay"

// Param is one entry of a provider's parameter schema.
type Param struct {
	Name     string
	Token    Token
	Optional bool
	Skip     bool

	index   int
	typ     reflect.Type
	context bool
}

// Dep declares a Factory parameter.
func Dep(name string, token Token) Param {
	return Param{Name: name, Token: token}
}

func OptionalDep(name string, token Token) Param {
	return Param{Name: name, Token: token, Optional: true}
}

func classParams(t reflect.Type) ([]Param, error) {
	fields, err := ireflect.StructFields(t, TagKey)
	if err != nil {
		return nil, err
	}

	params := make([]Param, len(fields))
	for i, f := range fields {
		var token Token = f.Type
		if f.Token != "" {
			token = f.Token
		}
		params[i] = Param{
			Name:     f.Name,
			Token:    token,
			Optional: f.Optional,
			Skip:     f.Wildcard,
			index:    f.Index,
			typ:      f.Type,
		}
	}
	return params, nil
}

func funcParams(fn any) ([]Param, ireflect.Result, error) {
	in, result, err := ireflect.FuncParams(fn)
	if err != nil {
		return nil, ireflect.Result{}, err
	}

	params := make([]Param, len(in))
	for i, p := range in {
		params[i] = Param{
			Name:    fmt.Sprintf("arg%d", i),
			Token:   p.Type,
			Skip:    p.Wildcard,
			index:   p.Index,
			typ:     p.Type,
			context: p.Context,
		}
	}
	return params, result, nil
}

const selfParam = "self"

// methodHook builds a provider for a lifecycle hook whose first non-context
// parameter is the instance it runs against.
func methodHook(hook any) (*Provider, error) {
	p := Func(hook)
	if p.err != nil {
		return nil, p.err
	}
	for i := range p.params {
		if p.params[i].context {
			continue
		}
		p.params[i].Name = selfParam
		p.params[i].Skip = false
		return p, nil
	}
	return nil, errors.New("hook has no instance parameter")
}

// dependencies lists the tokens a schema resolves, leaving out skipped and
// optional parameters unless withOptional is set.
func dependencies(params []Param, withOptional bool) []Token {
	var deps []Token
	for _, p := range params {
		if p.context || p.Skip || (p.Optional && !withOptional) {
			continue
		}
		deps = append(deps, p.Token)
	}
	return deps
}
