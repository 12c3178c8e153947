// Package compile runs card records through translation and template resolution in
// parallel and assembles the results into set documents.
package compile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arcanaland/cardsmith/internal/card"
	"github.com/arcanaland/cardsmith/internal/markup"
	"github.com/arcanaland/cardsmith/internal/mse"
	"github.com/arcanaland/cardsmith/internal/resource"
	"github.com/arcanaland/cardsmith/internal/template"
)

// ErrEmptyResult is returned when not a single card compiled
var ErrEmptyResult = errors.New("no card compiled successfully")

// Options configure a compilation
type Options struct {
	Template      template.Options
	Set           mse.Options
	NewWedgeOrder bool

	// Jobs is the number of cards processed at once; zero uses every CPU
	Jobs int
}

// Failure records why one card could not be compiled
type Failure struct {
	Name string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Name, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of a compilation that produced at least one card
type Result struct {
	Documents map[template.Routing]*mse.SetDocument
	Failures  []Failure
	Succeeded int
}

// Summary describes the result for the user
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s compiled", r.Succeeded, plural(r.Succeeded, "card", "cards"))
	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, ", %d failed:", len(r.Failures))
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "\n  %s: %v", f.Name, f.Err)
		}
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Compiler turns card records into set documents
type Compiler struct {
	opts       Options
	translator markup.Translator
	resolver   *template.Resolver
	logger     *zap.Logger
}

// New creates a compiler. resources may be nil when no art is available.
func New(opts Options, resources resource.Provider, logger *zap.Logger) *Compiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	return &Compiler{
		opts:       opts,
		translator: markup.Translator{NewWedgeOrder: opts.NewWedgeOrder},
		resolver:   template.NewResolver(opts.Template, resources, logger),
		logger:     logger,
	}
}

type outcome struct {
	entry *template.Entry
	err   error
}

// Compile translates and resolves every record, then assembles the entries. A card that
// fails is reported in Result.Failures and does not stop the others; faces of the same
// card fail together. Compile itself only fails for problems that affect the whole set,
// when no card succeeded, or when ctx is cancelled.
func (c *Compiler) Compile(ctx context.Context, records []card.Record) (*Result, error) {
	if err := c.opts.Set.CheckVersion(); err != nil {
		return nil, err
	}

	faces := make([]template.Face, len(records))
	for i := range records {
		group := records[i].FaceGroup(i)
		faces[i] = template.Face{Group: group[0], Index: slices.Index(group, i)}
	}

	outcomes := make([]outcome, len(records))
	g := new(errgroup.Group)
	g.SetLimit(c.opts.Jobs)
	for i := range records {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, err := c.compileOne(ctx, records, i, faces[i])
			outcomes[i] = outcome{entry: e, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	failGroups(records, faces, outcomes)

	result := &Result{}
	var entries []*template.Entry
	for i, o := range outcomes {
		if o.err != nil {
			c.logger.Warn("card failed", zap.String("card", records[i].Name), zap.Error(o.err))
			result.Failures = append(result.Failures, Failure{Name: records[i].Name, Err: o.err})
			continue
		}
		entries = append(entries, o.entry)
		result.Succeeded++
	}
	if result.Succeeded == 0 {
		return nil, fmt.Errorf("%w: %d of %d cards failed", ErrEmptyResult, len(result.Failures), len(records))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	docs, err := mse.Assemble(entries, c.opts.Set)
	if err != nil {
		return nil, err
	}
	for routing, doc := range docs {
		c.logger.Debug("assembled set",
			zap.Stringer("routing", routing),
			zap.Int("cards", len(doc.Cards)),
			zap.Int("members", len(doc.Blobs)+1))
	}
	result.Documents = docs
	return result, nil
}

func (c *Compiler) compileOne(ctx context.Context, records []card.Record, i int, face template.Face) (*template.Entry, error) {
	rec := &records[i]
	if err := rec.Validate(i, len(records)); err != nil {
		return nil, err
	}
	m, err := c.translator.Translate(rec.Rules, rec.ManaCost)
	if err != nil {
		return nil, err
	}
	return c.resolver.Resolve(ctx, rec, face, m)
}

// Resolve compiles the record at index i on its own, without assembling a set
func (c *Compiler) Resolve(ctx context.Context, records []card.Record, i int) (*template.Entry, error) {
	if i < 0 || i >= len(records) {
		return nil, fmt.Errorf("no record %d", i)
	}
	group := records[i].FaceGroup(i)
	return c.compileOne(ctx, records, i, template.Face{Group: group[0], Index: slices.Index(group, i)})
}

// failGroups fails every face whose sibling failed
func failGroups(records []card.Record, faces []template.Face, outcomes []outcome) {
	failed := make(map[int]int)
	for i, o := range outcomes {
		if o.err != nil {
			if _, ok := failed[faces[i].Group]; !ok {
				failed[faces[i].Group] = i
			}
		}
	}
	for i := range outcomes {
		first, ok := failed[faces[i].Group]
		if !ok || outcomes[i].err != nil {
			continue
		}
		outcomes[i] = outcome{err: fmt.Errorf("face %q failed: %w", records[first].Name, outcomes[first].err)}
	}
}

// Write serializes every document of the result and places it at its output path.
// Nothing is written once ctx is cancelled.
func (c *Compiler) Write(ctx context.Context, result *Result, outputs map[template.Routing]string, stdout io.Writer) error {
	for _, routing := range template.Routings {
		doc, ok := result.Documents[routing]
		if !ok {
			continue
		}
		path := outputs[routing]
		if path == "" {
			return fmt.Errorf("%w: no output path for the %s set", mse.ErrArchiveWrite, routing)
		}

		data, err := mse.Serialize(doc)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := mse.WriteArchive(path, data, stdout); err != nil {
			return err
		}
		c.logger.Debug("wrote archive", zap.Stringer("routing", routing), zap.String("path", path), zap.Int("bytes", len(data)))
	}
	return nil
}
