// Package dijay is a dependency injection container with scoped instances,
// lifecycle hooks and module composition.
//
// # Quick Start
//
//	c := dijay.New(dijay.WithLogger(logger))
//
//	_ = c.Register(dijay.TypeOf[*Config](), dijay.Value(&Config{Port: 8080}))
//	_ = c.Provide(dijay.Func(NewServer))
//
//	srv, err := dijay.Invoke[*Server](ctx, c)
//
// # Tokens
//
// A token identifies a binding. Types are the usual tokens; any comparable
// value, typically a string or a typed key, works as well:
//
//	dijay.TypeOf[*Server]()         // type token
//	"dsn"                            // string token
//	dijay.NewKey[string]("dsn")      // typed key, compared by identity
//
// # Providers
//
//	dijay.Func(NewServer)                      // parameters resolved by type
//	dijay.Class[*Service]()                    // tagged fields injected
//	dijay.Value(cfg)                           // the value itself
//	dijay.Factory(fn, dijay.Dep("db", dbToken)) // explicit parameter list
//
// Class fields opt in with the dijay tag:
//
//	type Service struct {
//	    DB    *Database `dijay:""`          // by type
//	    DSN   string    `dijay:"dsn"`       // by token
//	    Cache *Cache    `dijay:",optional"` // nil when unavailable
//	}
//
// A context.Context parameter receives the resolution context and a trailing
// error result fails the resolution. Errors returned by providers reach the
// caller unchanged.
//
// # Scopes
//
//	dijay.Singleton // one instance per container (default)
//	dijay.Transient // new instance on every resolution
//	dijay.Request   // one instance per request id
//
// Request ids travel in the context:
//
//	ctx, id := dijay.NewRequest(ctx)
//	defer c.ReleaseRequest(id)
//
// # Auto-Wiring
//
// Resolving an unregistered struct type builds it from its tagged fields.
// Such instances are never cached. Any other unregistered token fails with
// ErrUnregisteredToken.
//
// # Lifecycle
//
//	c.OnBootstrap(func(ctx context.Context, db *Database) error { ... })
//	_ = c.Provide(dijay.Func(NewDatabase).
//	    OnBootstrap((*Database).Connect).
//	    OnShutdown((*Database).Close))
//
//	err := c.Run(ctx, func(ctx context.Context) error { ... })
//
// Shutdown hooks attached to a provider run only when its singleton was
// created.
//
// # Modules
//
//	db := dijay.NewModule("db").Provide(dijay.Func(NewDatabase))
//	app := dijay.NewModule("app").
//	    Import(db).
//	    Provide(dijay.UseValue("dsn", "postgres://..."))
//
//	c, err := dijay.Compose(app)
//
// Imports are composed before the importing module's providers, so a module
// overrides what it imports. Exports are recorded but do not restrict
// visibility.
//
// # Errors
//
//	dijay.IsUnregisteredToken(err)
//	dijay.IsCircularDependency(err)
//	errors.Is(err, dijay.ErrTypeMismatch)
package dijay
