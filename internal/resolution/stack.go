// Package resolution tracks the tokens being resolved along a single call path.
//
// A Stack is immutable: Push returns a new Stack sharing its parent, so a
// nested resolution never needs an explicit pop. Once the nested call returns,
// its context (and the extended path with it) simply goes out of scope, which
// holds on success, on error, on panic and on context cancellation alike.
package resolution

import "context"

type Stack struct {
	token  any
	parent *Stack
	depth  int
}

type stackKey struct{}

// FromContext returns the path carried by ctx, or nil for a top-level call.
func FromContext(ctx context.Context) *Stack {
	if s, ok := ctx.Value(stackKey{}).(*Stack); ok {
		return s
	}
	return nil
}

func WithStack(ctx context.Context, s *Stack) context.Context {
	return context.WithValue(ctx, stackKey{}, s)
}

func (s *Stack) Push(token any) *Stack {
	return &Stack{
		token:  token,
		parent: s,
		depth:  s.Depth() + 1,
	}
}

func (s *Stack) Contains(token any) bool {
	for n := s; n != nil; n = n.parent {
		if n.token == token {
			return true
		}
	}
	return false
}

func (s *Stack) Depth() int {
	if s == nil {
		return 0
	}
	return s.depth
}

// Tokens returns the path from the outermost resolution to the innermost.
func (s *Stack) Tokens() []any {
	tokens := make([]any, s.Depth())
	for n := s; n != nil; n = n.parent {
		tokens[n.depth-1] = n.token
	}
	return tokens
}
