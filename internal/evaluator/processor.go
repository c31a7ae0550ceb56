package evaluator

import (
	"io"

	"github.com/go-logr/logr"

	"github.com/funvibe/refina/internal/config"
	"github.com/funvibe/refina/internal/diagnostics"
	"github.com/funvibe/refina/internal/pipeline"
)

// Processor is the engine's pipeline stage: it evaluates the parsed program
// and folds output and failures into the run context.
type Processor struct {
	// Out mirrors print output when set; the context's Output slice is
	// filled either way.
	Out     io.Writer
	Log     logr.Logger
	Options config.Options
}

// NewProcessor builds an evaluation stage with default limits and no
// mirroring writer.
func NewProcessor() *Processor {
	return &Processor{Log: logr.Discard(), Options: config.Default()}
}

func (p *Processor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.Program == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	eval := New()
	eval.Out = p.Out
	eval.Log = p.Log.WithValues("run", ctx.RunID.String())
	eval.Options = p.Options

	env := NewEnvironment()
	RegisterBuiltins(env)
	eval.GlobalEnv = env

	result := eval.Eval(ctx.Program, env)
	ctx.Output = eval.Output

	if err := errorOf(result); err != nil {
		code := diagnostics.ErrR001
		if err.IsInvariant {
			code = diagnostics.ErrR002
		}
		if err.Internal {
			code = diagnostics.ErrI001
		}
		diag := diagnostics.NewError(code, diagnostics.Pos{Line: err.Line, Column: err.Column}, err.Message)
		diag.Dump = err.Dump
		ctx.Errors = append(ctx.Errors, diag)
	}
	return ctx
}
