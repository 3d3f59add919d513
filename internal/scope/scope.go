package scope

import (
	"fmt"
	"strings"
)

type Scope int

const (
	Singleton Scope = iota
	Transient
	Request
)

func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	case Request:
		return "request"
	default:
		return "unknown"
	}
}

func (s Scope) Valid() bool {
	return s >= Singleton && s <= Request
}

func Parse(name string) (Scope, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "singleton":
		return Singleton, nil
	case "transient":
		return Transient, nil
	case "request":
		return Request, nil
	default:
		return Singleton, fmt.Errorf("unknown scope %q", name)
	}
}
