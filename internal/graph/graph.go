// Package graph models the static dependency structure declared by provider
// schemas. A Graph is built on demand and is not safe for concurrent mutation.
package graph

import "slices"

type Node struct {
	ID           string
	Dependencies []string
}

type Graph struct {
	nodes map[string]*Node
	order []string
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
	}
}

// AddNode inserts or replaces id. Insertion order is preserved for iteration.
func (g *Graph) AddNode(id string, dependencies []string) {
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = &Node{
		ID:           id,
		Dependencies: slices.Clone(dependencies),
	}
}

func (g *Graph) HasNode(id string) bool {
	_, exists := g.nodes[id]
	return exists
}

func (g *Graph) GetDependencies(id string) []string {
	node, exists := g.nodes[id]
	if !exists {
		return nil
	}
	return slices.Clone(node.Dependencies)
}

func (g *Graph) GetDependents(id string) []string {
	var dependents []string
	for _, nodeID := range g.order {
		if slices.Contains(g.nodes[nodeID].Dependencies, id) {
			dependents = append(dependents, nodeID)
		}
	}
	return dependents
}

func (g *Graph) Nodes() []string {
	return slices.Clone(g.order)
}

func (g *Graph) Size() int {
	return len(g.nodes)
}

// Missing returns dependencies that are referenced but have no node.
func (g *Graph) Missing() []string {
	var missing []string
	seen := make(map[string]bool)

	for _, id := range g.order {
		for _, dep := range g.nodes[id].Dependencies {
			if _, exists := g.nodes[dep]; !exists && !seen[dep] {
				missing = append(missing, dep)
				seen[dep] = true
			}
		}
	}

	return missing
}
