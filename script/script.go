// Package script runs node behaviors written as Go source, interpreted with
// yaegi.
//
// A script is a Go file (the package clause is optional) that may declare any
// of these top-level functions:
//
//	func Init()               // or func Init() error
//	func Update(dt float64)   // or func Update(dt float64) error
//	func Draw()               // or func Draw() error
//
// Scripts reach the engine through the "zen" import:
//
//	import "zen"
//
//	func Update(dt float64) {
//		self := zen.Self()
//		if zen.Engine().IsKeyPressed(zen.KeyRight) {
//			self.X += 120 * dt
//		}
//	}
//
// Each node gets its own interpreter, so package-level variables are per-node
// state. Only a small standard library subset is importable.
package script

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"reflect"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/phanxgames/zen"
)

const defaultPackage = "behavior"

// allowedStdlib lists the standard packages scripts may import.
var allowedStdlib = []string{
	"fmt/fmt",
	"math/math",
	"math/rand/rand",
	"sort/sort",
	"strconv/strconv",
	"strings/strings",
	"time/time",
	"unicode/unicode",
}

// Source is a parsed script ready to be instantiated per node.
type Source struct {
	name  string
	code  string
	pkg   string
	hooks map[string]bool
}

// Parse checks src for syntax errors and records which hooks it declares.
// name only labels errors.
func Parse(name, src string) (*Source, error) {
	fset := token.NewFileSet()
	code := src
	f, err := parser.ParseFile(fset, name, code, parser.PackageClauseOnly)
	if err != nil {
		code = "package " + defaultPackage + "; " + src
	}
	f, err = parser.ParseFile(fset, name, code, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	s := &Source{name: name, code: code, pkg: f.Name.Name, hooks: make(map[string]bool)}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil {
			continue
		}
		switch fn.Name.Name {
		case "Init", "Update", "Draw":
			s.hooks[fn.Name.Name] = true
		}
	}
	return s, nil
}

// Name returns the label given to Parse.
func (s *Source) Name() string {
	return s.name
}

// Has reports whether the script declares the named hook.
func (s *Source) Has(hook string) bool {
	return s.hooks[hook]
}

// Factory returns a behavior factory instantiating the script.
func (s *Source) Factory() zen.BehaviorFactory {
	return func() (zen.Behavior, error) {
		return &Behavior{src: s}, nil
	}
}

// Register parses src and registers it in b under tag.
func Register(b *zen.Behaviors, tag, src string) error {
	s, err := Parse(tag, src)
	if err != nil {
		return err
	}
	b.Register(tag, s.Factory())
	return nil
}

// Behavior is one node's instance of a script. The script's top-level code
// runs when the node is bound, followed by its Init hook.
type Behavior struct {
	src    *Source
	ctx    *zen.Context
	interp *interp.Interpreter

	update func(float64) error
	draw   func() error
}

// Init implements zen.Initer.
func (b *Behavior) Init(ctx *zen.Context) error {
	b.ctx = ctx

	i := interp.New(interp.Options{
		SourcecodeFilesystem: emptyFS{},
		Stdout:               io.Discard,
		Stderr:               io.Discard,
	})
	if err := i.Use(stdlibSubset()); err != nil {
		return fmt.Errorf("script %s: %w", b.src.name, err)
	}
	if err := i.Use(b.exports()); err != nil {
		return fmt.Errorf("script %s: %w", b.src.name, err)
	}
	if _, err := i.Eval(b.src.code); err != nil {
		return fmt.Errorf("script %s: %w", b.src.name, err)
	}
	b.interp = i

	if b.src.Has("Update") {
		v, err := b.lookup("Update")
		if err != nil {
			return err
		}
		switch fn := v.Interface().(type) {
		case func(float64):
			b.update = func(dt float64) error { fn(dt); return nil }
		case func(float64) error:
			b.update = fn
		default:
			return fmt.Errorf("script %s: Update has type %T, want func(float64)", b.src.name, fn)
		}
	}
	if b.src.Has("Draw") {
		fn, err := b.noArgs("Draw")
		if err != nil {
			return err
		}
		b.draw = fn
	}
	if b.src.Has("Init") {
		fn, err := b.noArgs("Init")
		if err != nil {
			return err
		}
		return fn()
	}
	return nil
}

// Update implements zen.Updater.
func (b *Behavior) Update(_ *zen.Context, dt float64) error {
	if b.update == nil {
		return nil
	}
	return b.update(dt)
}

// Draw implements zen.Drawer. Scripts draw through zen.Engine().
func (b *Behavior) Draw(_ *zen.Context, _ zen.Renderer) error {
	if b.draw == nil {
		return nil
	}
	return b.draw()
}

// Eval evaluates an expression in the script's package, for tests and
// debugging consoles.
func (b *Behavior) Eval(expr string) (reflect.Value, error) {
	if b.interp == nil {
		return reflect.Value{}, fmt.Errorf("script %s: not initialized", b.src.name)
	}
	return b.interp.Eval(b.src.pkg + "." + expr)
}

func (b *Behavior) lookup(name string) (reflect.Value, error) {
	v, err := b.interp.Eval(b.src.pkg + "." + name)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("script %s: lookup %s: %w", b.src.name, name, err)
	}
	return v, nil
}

func (b *Behavior) noArgs(name string) (func() error, error) {
	v, err := b.lookup(name)
	if err != nil {
		return nil, err
	}
	switch fn := v.Interface().(type) {
	case func():
		return func() error { fn(); return nil }, nil
	case func() error:
		return fn, nil
	default:
		return nil, fmt.Errorf("script %s: %s has type %T, want func()", b.src.name, name, fn)
	}
}

// exports builds the "zen" package seen by this script instance. Self, Engine
// and DT read the live context, which the engine refreshes before each hook.
func (b *Behavior) exports() interp.Exports {
	ctx := b.ctx
	return interp.Exports{
		"zen/zen": {
			"Self":   reflect.ValueOf(func() *zen.Node { return ctx.Self }),
			"Engine": reflect.ValueOf(func() *zen.Engine { return ctx.Engine }),
			"DT":     reflect.ValueOf(func() float64 { return ctx.DT }),
			"RGB":    reflect.ValueOf(zen.RGB),

			"Node":       reflect.ValueOf((*zen.Node)(nil)),
			"NodeConfig": reflect.ValueOf((*zen.NodeConfig)(nil)),
			"Color":      reflect.ValueOf((*zen.Color)(nil)),
			"Rect":       reflect.ValueOf((*zen.Rect)(nil)),

			"Black": reflect.ValueOf(&zen.Black).Elem(),
			"White": reflect.ValueOf(&zen.White).Elem(),
			"Red":   reflect.ValueOf(&zen.Red).Elem(),
			"Green": reflect.ValueOf(&zen.Green).Elem(),
			"Blue":  reflect.ValueOf(&zen.Blue).Elem(),

			"KeyEscape":    reflect.ValueOf(zen.KeyEscape),
			"KeyEnter":     reflect.ValueOf(zen.KeyEnter),
			"KeyTab":       reflect.ValueOf(zen.KeyTab),
			"KeyBackspace": reflect.ValueOf(zen.KeyBackspace),
			"KeySpace":     reflect.ValueOf(zen.KeySpace),
			"KeyUp":        reflect.ValueOf(zen.KeyUp),
			"KeyDown":      reflect.ValueOf(zen.KeyDown),
			"KeyLeft":      reflect.ValueOf(zen.KeyLeft),
			"KeyRight":     reflect.ValueOf(zen.KeyRight),
		},
	}
}

func stdlibSubset() interp.Exports {
	sub := make(interp.Exports, len(allowedStdlib))
	for _, k := range allowedStdlib {
		if syms, ok := stdlib.Symbols[k]; ok {
			sub[k] = syms
		}
	}
	return sub
}

// emptyFS keeps the interpreter from loading packages from source.
type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
