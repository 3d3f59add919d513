package dijay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danpasecinic/dijay/internal/graph"
)

// dependencyGraph builds the static graph declared by provider schemas,
// following unregistered struct dependencies the way resolution would
// auto-wire them. Optional and skipped parameters contribute no edges.
func (c *Container) dependencyGraph(seeds ...*entry) (*graph.Graph, []string) {
	g := graph.New()
	var problems []string

	queue := append(c.snapshot(), seeds...)
	seen := make(map[Token]bool, len(queue))

	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		if seen[e.token] {
			continue
		}
		seen[e.token] = true

		name := TokenName(e.token)
		params, err := e.provider.Params()
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", name, err))
			g.AddNode(name, nil)
			continue
		}

		deps := dependencies(params, false)
		g.AddNode(name, tokenNames(deps))

		for _, dep := range deps {
			if seen[dep] || c.Has(dep) {
				continue
			}
			if t, ok := constructibleType(dep); ok {
				queue = append(queue, &entry{token: dep, provider: classOf(t), scope: Transient, isClass: true})
			}
		}
	}

	return g, problems
}

// Validate checks the registry without constructing anything: every
// provider must be well formed, every required dependency registered or
// auto-wirable, and the declared graph acyclic.
func (c *Container) Validate() error {
	g, problems := c.dependencyGraph()

	for _, missing := range g.Missing() {
		problems = append(
			problems,
			fmt.Sprintf("%s is not registered (required by %s)", missing, strings.Join(g.GetDependents(missing), ", ")),
		)
	}

	for _, cycle := range g.CyclePaths() {
		problems = append(problems, "circular dependency: "+strings.Join(cycle, " -> "))
	}

	if len(problems) > 0 {
		return errValidationFailed(problems)
	}
	return nil
}

// Plan returns the order in which resolving token would construct its
// dependencies, ending with token itself.
func (c *Container) Plan(token Token) ([]string, error) {
	var seeds []*entry
	if !c.Has(token) {
		e, ok := c.autowire(token)
		if !ok {
			return nil, errUnregisteredToken(TokenName(token), nil)
		}
		seeds = append(seeds, e)
	}

	g, _ := c.dependencyGraph(seeds...)
	name := TokenName(token)

	order, err := g.ResolutionOrder(name)
	if errors.Is(err, graph.ErrCycleDetected) {
		chain := g.FindCyclePath(name)
		if chain == nil {
			chain = []string{name}
		}
		return nil, errCircularDependency(name, chain)
	}
	return order, err
}
