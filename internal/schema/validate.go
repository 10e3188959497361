package schema

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed appdata.cue
var appDataCUE string

// DefaultFilename labels positions when Validate is given no filename.
const DefaultFilename = "document.json"

// ValidationError describes the first schema violation in a document.
type ValidationError struct {
	// Path is the dotted location of the offending value, e.g. "accounts.0.icon".
	Path string

	// Message is CUE's description of the violation.
	Message string

	// Pos points into the document when CUE reports a position there.
	Pos token.Pos
}

func (e *ValidationError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "document"
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			loc, e.Message)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// cue.Context is not safe for concurrent use; every Validate call holds mu.
var (
	mu         sync.Mutex
	compiled   bool
	cueCtx     *cue.Context
	definition cue.Value
	compileErr error
)

func appData() (*cue.Context, cue.Value, error) {
	if compiled {
		return cueCtx, definition, compileErr
	}
	compiled = true

	cueCtx = cuecontext.New()
	v := cueCtx.CompileString(appDataCUE, cue.Filename("appdata.cue"))
	if err := v.Err(); err != nil {
		compileErr = fmt.Errorf("compile appdata schema: %w", err)
		return nil, cue.Value{}, compileErr
	}
	definition = v.LookupPath(cue.ParsePath("#AppData"))
	if !definition.Exists() {
		compileErr = fmt.Errorf("compile appdata schema: #AppData not defined")
		return nil, cue.Value{}, compileErr
	}
	return cueCtx, definition, nil
}

// Validate checks raw JSON against #AppData. It returns nil, a
// *ValidationError, or an error when raw is not JSON at all.
func Validate(raw []byte, filename string) error {
	if filename == "" {
		filename = DefaultFilename
	}

	mu.Lock()
	defer mu.Unlock()

	ctx, def, err := appData()
	if err != nil {
		return err
	}

	expr, err := cuejson.Extract(filename, raw)
	if err != nil {
		return fmt.Errorf("parse %s: %w", filename, err)
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return formatCUEError(err, filename)
	}

	unified := def.Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err, filename)
	}
	return nil
}

// formatCUEError reduces a CUE error list to its first error. The position
// inside the document is preferred over one inside the schema.
func formatCUEError(err error, filename string) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Message: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	ve := &ValidationError{
		Path:    strings.Join(errors.Path(first), "."),
		Message: fmt.Sprintf(format, args...),
	}

	positions := errors.Positions(first)
	for _, p := range positions {
		if p.Filename() == filename {
			ve.Pos = p
			return ve
		}
	}
	if len(positions) > 0 {
		ve.Pos = positions[0]
	}
	return ve
}
