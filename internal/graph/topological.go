package graph

import "errors"

var ErrCycleDetected = errors.New("cycle detected in graph")

// TopologicalSort orders nodes so every node follows its dependencies.
// Ties keep insertion order.
func (g *Graph) TopologicalSort() ([]string, error) {
	dependents := make(map[string][]string, len(g.nodes))
	inDegree := make(map[string]int, len(g.nodes))

	for _, id := range g.order {
		inDegree[id] = 0
	}

	for _, id := range g.order {
		for _, dep := range g.nodes[id].Dependencies {
			if _, exists := g.nodes[dep]; exists {
				dependents[dep] = append(dependents[dep], id)
				inDegree[id]++
			}
		}
	}

	var queue []string
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		sorted = append(sorted, node)

		for _, dependent := range dependents[node] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(sorted) != len(g.nodes) {
		return nil, ErrCycleDetected
	}

	return sorted, nil
}

// ResolutionOrder returns the dependencies of target in construction order,
// ending with target itself.
func (g *Graph) ResolutionOrder(target string) ([]string, error) {
	if !g.HasNode(target) {
		return []string{target}, nil
	}

	visited := make(map[string]bool)
	visiting := make(map[string]bool)
	var order []string

	var visit func(id string) error
	visit = func(id string) error {
		if visiting[id] {
			return ErrCycleDetected
		}
		if visited[id] {
			return nil
		}

		visiting[id] = true

		for _, dep := range g.nodes[id].Dependencies {
			if _, exists := g.nodes[dep]; !exists {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}

		visiting[id] = false
		visited[id] = true
		order = append(order, id)
		return nil
	}

	if err := visit(target); err != nil {
		return nil, err
	}

	return order, nil
}
