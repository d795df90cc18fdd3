package evaluation

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm/docgrade/internal/codeobject"
)

// Record is the evaluation of one tree object. Parameters are evaluated
// alongside their method rather than as separate records.
type Record struct {
	Evaluation

	// Parameters holds one evaluation per method parameter, in parameter
	// order. Empty for other kinds.
	Parameters []Evaluation

	// Children are the paths of a namespace's immediate members.
	Children []string

	// Height is set for namespaces only.
	Height int
}

// Path is the path of the evaluated object.
func (r Record) Path() string {
	return r.Object.Path()
}

// Run evaluates every object of tree concurrently. Records come back in
// tree pre-order regardless of scheduling.
func (e *Engine) Run(ctx context.Context, tree *codeobject.Tree) ([]Record, error) {
	objects := tree.Objects()
	records := make([]Record, len(objects))

	workers := e.workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var (
		mu   sync.Mutex
		done int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, obj := range objects {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			records[i] = e.record(obj)
			if e.progress != nil {
				mu.Lock()
				done++
				e.progress(done, len(objects))
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluating %d objects: %w", len(objects), err)
	}

	e.logger.Debug("evaluation complete", "objects", len(records))
	return records, nil
}

func (e *Engine) record(obj codeobject.CodeObject) Record {
	rec := Record{Evaluation: e.Evaluate(obj)}

	switch o := obj.(type) {
	case *codeobject.Namespace:
		for _, child := range o.Children() {
			rec.Children = append(rec.Children, child.Path())
		}
		rec.Height = o.Height()
	case *codeobject.Method:
		for _, p := range o.Parameters() {
			rec.Parameters = append(rec.Parameters, e.Evaluate(p))
		}
	}
	return rec
}
