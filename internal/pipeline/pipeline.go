// Package pipeline chains processing stages over a shared run context. The
// external front-end contributes its own stages (lexing, parsing, static
// checking); the engine contributes the evaluation stage.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/funvibe/refina/internal/ast"
	"github.com/funvibe/refina/internal/diagnostics"
)

// Context is the state threaded through the stages of one program run.
type Context struct {
	// RunID correlates outputs and diagnostics of concurrent runs.
	RunID uuid.UUID
	// Program is the AST produced by the front-end.
	Program *ast.Program
	// Output is the ordered list of print results.
	Output []string
	// Errors accumulates diagnostics from every stage.
	Errors []diagnostics.Diagnostic
}

// NewContext stamps a fresh run context for a parsed program.
func NewContext(program *ast.Program) *Context {
	return &Context{
		RunID:   uuid.New(),
		Program: program,
	}
}

// Failed reports whether any stage emitted an error.
func (c *Context) Failed() bool {
	return len(c.Errors) > 0
}

// Processor is a single stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages after a failed one still run so hosts
// collect diagnostics from every stage.
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
