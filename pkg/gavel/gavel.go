package gavel

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"golang.org/x/sync/errgroup"

	"github.com/cognicore/gavel/pkg/gavel/assemble"
	"github.com/cognicore/gavel/pkg/gavel/internalerr"
	"github.com/cognicore/gavel/pkg/gavel/resolve"
	"github.com/cognicore/gavel/pkg/gavel/roster"
	"github.com/cognicore/gavel/pkg/gavel/segment"
	"github.com/cognicore/gavel/pkg/gavel/store"
)

// Gavel is the main transcript parsing facade
type Gavel struct {
	store     store.Store
	index     *roster.Index
	segmenter *segment.Segmenter
	resolver  *resolve.Resolver
	assembler *assemble.Assembler
	workers   int
	persist   bool
}

// Options configures a Gavel instance
type Options struct {
	Store store.Store
	Index *roster.Index
	// Segmenter overrides the default; nil gets the default rule set.
	Segmenter *segment.Segmenter
	// Workers bounds per-hearing parallelism; <= 0 means sequential.
	Workers        int
	RolePrecedence assemble.RolePrecedence
	// PersistStatements writes parsed statements back to the store.
	PersistStatements bool
}

// New creates a Gavel instance with the given dependencies
func New(opts Options) *Gavel {
	seg := opts.Segmenter
	if seg == nil {
		seg = segment.NewSegmenter(nil)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Gavel{
		store:     opts.Store,
		index:     opts.Index,
		segmenter: seg,
		resolver:  resolve.New(opts.Index),
		assembler: assemble.New(opts.RolePrecedence),
		workers:   workers,
		persist:   opts.PersistStatements,
	}
}

// Close cleanly shuts down the Gavel instance
func (g *Gavel) Close() error {
	return g.store.Close()
}

// Failure records one hearing that could not be parsed. A failed hearing
// never aborts the run.
type Failure struct {
	Jacket string
	Err    error
}

// Result holds the outcome of a parse run.
type Result struct {
	Statements map[string][]store.Statement
	Failures   []Failure
}

var jacketRe = regexp.MustCompile(`^CHRG-\d+[a-z]+hrg\d+$`)

// ValidJacket reports whether a jacket identifier follows the GPO naming
// convention, e.g. CHRG-113jhrg79942.
func ValidJacket(jacket string) bool {
	return jacketRe.MatchString(jacket)
}

// Parse processes the given hearings: fetch, segment, resolve, assemble.
// Hearings are processed independently under bounded parallelism; per-jacket
// failures are recorded and the run continues.
func (g *Gavel) Parse(ctx context.Context, jackets []string) (Result, error) {
	stmts := make([][]store.Statement, len(jackets))
	errs := make([]error, len(jackets))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.workers)
	for i, jacket := range jackets {
		i, jacket := i, jacket
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stmts[i], errs[i] = g.parseOne(gctx, jacket)
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Statements: make(map[string][]store.Statement, len(jackets))}
	for i, jacket := range jackets {
		if errs[i] != nil {
			result.Failures = append(result.Failures, Failure{Jacket: jacket, Err: errs[i]})
			continue
		}
		result.Statements[jacket] = stmts[i]
	}
	return result, nil
}

// ParseAll processes every hearing in the store.
func (g *Gavel) ParseAll(ctx context.Context) (Result, error) {
	jackets, err := g.store.ListJackets(ctx)
	if err != nil {
		return Result{}, err
	}
	return g.Parse(ctx, jackets)
}

func (g *Gavel) parseOne(ctx context.Context, jacket string) ([]store.Statement, error) {
	if !ValidJacket(jacket) {
		return nil, fmt.Errorf("jacket %q: %w", jacket, internalerr.ErrInvalidJacket)
	}

	h, found, err := g.store.GetHearing(ctx, jacket)
	if err != nil {
		return nil, fmt.Errorf("get hearing %s: %w", jacket, err)
	}
	if !found {
		return nil, fmt.Errorf("hearing %s: %w", jacket, internalerr.ErrNotFound)
	}
	if h.Transcript == "" {
		return nil, fmt.Errorf("hearing %s: %w", jacket, internalerr.ErrNoTranscript)
	}

	segs := g.segmenter.Segment(h.Transcript)
	if len(segs) == 0 {
		return nil, fmt.Errorf("hearing %s: %w", jacket, internalerr.ErrNoTranscript)
	}

	rh := resolve.Hearing{
		Chamber:    h.Chamber,
		Congress:   h.Congress,
		Committees: h.Committees,
		Witnesses:  h.Witnesses,
	}
	if segs[0].Header == "" {
		rh.ChairName = resolve.FindChair(segs[0].Body)
	}

	headers := 0
	statements := make([]store.Statement, 0, len(segs))
	for _, seg := range segs {
		if seg.Header != "" {
			headers++
		}
		sp := g.resolver.Resolve(seg.Header, rh)
		statements = append(statements, g.assembler.Build(h, seg, sp))
	}
	if headers == 0 {
		log.Printf("gavel: hearing %s: no speaker headers recognized, emitting single segment", jacket)
	}

	if g.persist {
		if err := g.store.ReplaceStatements(ctx, jacket, statements); err != nil {
			return nil, fmt.Errorf("persist statements %s: %w", jacket, err)
		}
	}
	return statements, nil
}
