package dijay

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	ireflect "github.com/danpasecinic/dijay/internal/reflect"
)

type ModuleKind int

const (
	ModuleStatic ModuleKind = iota
	ModuleDynamic
)

func (k ModuleKind) String() string {
	switch k {
	case ModuleStatic:
		return "static"
	case ModuleDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("ModuleKind(%d)", int(k))
	}
}

// ModuleNode is either a *Module or a DynamicModule.
type ModuleNode interface {
	Kind() ModuleKind
	Descriptor() Descriptor
}

// Descriptor is the shape every module node exposes to the composer. Base is
// set only for dynamic nodes.
type Descriptor struct {
	Name      string
	Providers []ProviderRef
	Imports   []ModuleNode
	Exports   []Token
	Global    bool
	Base      ModuleNode
}

// ProviderRef is an entry of a module's provider list: a *Provider, which
// registers under its own token and scope, or a Binding.
type ProviderRef interface {
	registerInto(c *Container) error
}

func (p *Provider) registerInto(c *Container) error {
	return c.Provide(p)
}

// Binding registers a provider under an explicit token. A zero Binding
// registers nothing.
type Binding struct {
	token Token
	use   *Provider
	scope Scope
}

func UseValue(token Token, v any) Binding {
	return Binding{token: token, use: Value(v), scope: Singleton}
}

// UseClass registers impl, a class *Provider or a struct type, under token.
func UseClass(token Token, impl any) Binding {
	return Binding{token: token, use: toProvider(impl), scope: Singleton}
}

// UseFactory registers fn under token. fn may be a FactoryFunc, any func
// whose parameters are resolved by type, or a *Provider.
func UseFactory(token Token, fn any) Binding {
	var p *Provider
	switch f := fn.(type) {
	case FactoryFunc:
		p = Factory(f)
	case func(context.Context, Args) (any, error):
		p = Factory(f)
	default:
		p = toProvider(fn)
	}
	return Binding{token: token, use: p, scope: Singleton}
}

func (b Binding) WithScope(s Scope) Binding {
	b.scope = s
	return b
}

func (b Binding) Token() Token {
	return b.token
}

func (b Binding) registerInto(c *Container) error {
	if b.use == nil {
		return nil
	}
	return c.Register(b.token, b.use, WithScope(b.scope))
}

// Module is a named, statically declared group of providers and imports.
type Module struct {
	name      string
	providers []ProviderRef
	imports   []ModuleNode
	exports   []Token
	global    bool
}

func NewModule(name string) *Module {
	return &Module{
		name: name,
	}
}

func (m *Module) Name() string {
	return m.name
}

func (m *Module) Provide(refs ...ProviderRef) *Module {
	m.providers = append(m.providers, refs...)
	return m
}

func (m *Module) Import(nodes ...ModuleNode) *Module {
	m.imports = append(m.imports, nodes...)
	return m
}

// Export records tokens the module intends to expose. Every provider of a
// composed module is visible to the whole container regardless.
func (m *Module) Export(tokens ...Token) *Module {
	m.exports = append(m.exports, tokens...)
	return m
}

func (m *Module) Global() *Module {
	m.global = true
	return m
}

func (m *Module) Kind() ModuleKind {
	return ModuleStatic
}

func (m *Module) Descriptor() Descriptor {
	return Descriptor{
		Name:      m.name,
		Providers: m.providers,
		Imports:   m.imports,
		Exports:   m.exports,
		Global:    m.global,
	}
}

// DynamicModule is a module configured at runtime, typically returned by a
// ForRoot style constructor. Its imports and providers are composed before
// those of Module.
type DynamicModule struct {
	Module    *Module
	Providers []ProviderRef
	Imports   []ModuleNode
	Exports   []Token
	Global    bool
}

func (d DynamicModule) Kind() ModuleKind {
	return ModuleDynamic
}

func (d DynamicModule) Descriptor() Descriptor {
	desc := Descriptor{
		Providers: d.Providers,
		Imports:   d.Imports,
		Exports:   d.Exports,
		Global:    d.Global,
	}
	if d.Module != nil {
		desc.Name = d.Module.Name()
		desc.Base = d.Module
	}
	return desc
}

// Compose builds a new container from the module tree rooted at root.
func Compose(root ModuleNode, opts ...Option) (*Container, error) {
	c := New(opts...)
	if err := c.Apply(root); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply composes each node into c depth first: imports, then the node's own
// providers, so a module overrides the bindings it imports.
func (c *Container) Apply(nodes ...ModuleNode) error {
	for _, node := range nodes {
		cp := &composer{
			container: c,
			visiting:  make(map[ModuleNode]bool),
		}
		if err := cp.compose(node); err != nil {
			return err
		}
	}
	return nil
}

type composer struct {
	container *Container
	visiting  map[ModuleNode]bool
	path      []string
}

func (cp *composer) compose(node ModuleNode) error {
	if node == nil || ireflect.IsNil(node) {
		return nil
	}

	desc := node.Descriptor()
	name := moduleName(desc)

	if ireflect.Comparable(node) {
		if cp.visiting[node] {
			return errModuleCycle(append(slices.Clone(cp.path), name))
		}
		cp.visiting[node] = true
		defer delete(cp.visiting, node)
	}

	cp.path = append(cp.path, name)
	defer func() { cp.path = cp.path[:len(cp.path)-1] }()

	cp.container.logger.Debug(
		"composing module",
		zap.String("module", name),
		zap.Stringer("kind", node.Kind()),
		zap.Int("providers", len(desc.Providers)),
	)

	switch node.Kind() {
	case ModuleStatic:
		return cp.composeDescriptor(name, desc)
	case ModuleDynamic:
		if err := cp.composeDescriptor(name, desc); err != nil {
			return err
		}
		return cp.compose(desc.Base)
	default:
		return errInvalidModule(name, fmt.Sprintf("unknown module kind %s", node.Kind()))
	}
}

func (cp *composer) composeDescriptor(name string, desc Descriptor) error {
	for _, imp := range desc.Imports {
		if err := cp.compose(imp); err != nil {
			return err
		}
	}

	for _, ref := range desc.Providers {
		if ref == nil {
			continue
		}
		if err := ref.registerInto(cp.container); err != nil {
			return errModuleApplyFailed(name, err)
		}
	}
	return nil
}

func moduleName(desc Descriptor) string {
	if desc.Name == "" {
		return "<anonymous>"
	}
	return desc.Name
}

func errModuleApplyFailed(name string, cause error) *Error {
	return newError(
		ErrCodeModuleApplyFailed,
		fmt.Sprintf("module %s failed to register a provider", name),
		cause,
	)
}

func errModuleCycle(path []string) *Error {
	return newError(
		ErrCodeModuleCycle,
		"module import cycle: "+strings.Join(path, " -> "),
		nil,
	).WithStack(path)
}

func errInvalidModule(name, reason string) *Error {
	return newError(
		ErrCodeInvalidModule,
		fmt.Sprintf("invalid module %s: %s", name, reason),
		nil,
	)
}
