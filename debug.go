package dijay

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

type GraphInfo struct {
	Services []ServiceInfo
}

type ServiceInfo struct {
	Token        string
	Kind         string
	Scope        Scope
	Dependencies []string
	Dependents   []string
	Instantiated bool
	Hooks        int
}

// Graph describes the registered providers in registration order.
func (c *Container) Graph() GraphInfo {
	g, _ := c.dependencyGraph()
	singletons := c.cache.Singletons()
	entries := c.snapshot()

	services := make([]ServiceInfo, 0, len(entries))
	for _, e := range entries {
		name := TokenName(e.token)
		_, instantiated := singletons[e.token]

		services = append(
			services, ServiceInfo{
				Token:        name,
				Kind:         e.provider.kind.String(),
				Scope:        e.scope,
				Dependencies: g.GetDependencies(name),
				Dependents:   g.GetDependents(name),
				Instantiated: instantiated,
				Hooks:        len(e.provider.bootstrap) + len(e.provider.shutdown),
			},
		)
	}

	return GraphInfo{Services: services}
}

func (c *Container) PrintGraph() {
	c.FprintGraph(os.Stdout)
}

func (c *Container) FprintGraph(w io.Writer) {
	info := c.Graph()

	if len(info.Services) == 0 {
		_, _ = fmt.Fprintln(w, "(empty container)")
		return
	}

	for _, svc := range info.Services {
		status := "○"
		if svc.Instantiated {
			status = "●"
		}

		if len(svc.Dependencies) == 0 {
			_, _ = fmt.Fprintf(w, "%s %s [%s]\n", status, svc.Token, svc.Scope)
		} else {
			_, _ = fmt.Fprintf(w, "%s %s [%s] ← %s\n", status, svc.Token, svc.Scope, strings.Join(svc.Dependencies, ", "))
		}
	}
}

func (c *Container) SprintGraph() string {
	var sb strings.Builder
	c.FprintGraph(&sb)
	return sb.String()
}

func (c *Container) FprintGraphDOT(w io.Writer) {
	info := c.Graph()

	_, _ = fmt.Fprintln(w, "digraph dependencies {")
	_, _ = fmt.Fprintln(w, "  rankdir=LR;")
	_, _ = fmt.Fprintln(w, "  node [shape=box];")

	for _, svc := range info.Services {
		style := ""
		if svc.Instantiated {
			style = ", style=filled, fillcolor=lightblue"
		}
		_, _ = fmt.Fprintf(w, "  %q [label=%q%s];\n", svc.Token, escapeLabel(svc.Token), style)
	}

	_, _ = fmt.Fprintln(w)

	for _, svc := range info.Services {
		for _, dep := range svc.Dependencies {
			_, _ = fmt.Fprintf(w, "  %q -> %q;\n", svc.Token, dep)
		}
	}

	_, _ = fmt.Fprintln(w, "}")
}

func (c *Container) SprintGraphDOT() string {
	var sb strings.Builder
	c.FprintGraphDOT(&sb)
	return sb.String()
}

// FprintTable renders the registry as a table.
func (c *Container) FprintTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Token", "Kind", "Scope", "Dependencies", "Hooks", "Instantiated"})

	for _, svc := range c.Graph().Services {
		t.AppendRow(
			table.Row{
				svc.Token,
				svc.Kind,
				svc.Scope,
				strings.Join(svc.Dependencies, "\n"),
				svc.Hooks,
				svc.Instantiated,
			},
		)
	}

	t.Render()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "*", "")
	s = strings.Trim(s, `"`)
	if idx := strings.LastIndex(s, "/"); idx != -1 {
		s = s[idx+1:]
	}
	return s
}
