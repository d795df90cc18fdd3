package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/pthm/docgrade/internal/adapter"
	"github.com/pthm/docgrade/internal/adapter/manifest"
	"github.com/pthm/docgrade/internal/codeobject"
	"github.com/pthm/docgrade/internal/config"
	"github.com/pthm/docgrade/internal/discover"
	"github.com/pthm/docgrade/internal/evaluation"
	"github.com/pthm/docgrade/internal/reporter"
	"github.com/pthm/docgrade/internal/source"
	"github.com/pthm/docgrade/internal/ui"

	// Registered front-ends
	_ "github.com/pthm/docgrade/internal/adapter/python"
	_ "github.com/pthm/docgrade/internal/adapter/ruby"
)

// ErrNoSources is returned when discovery finds nothing to read.
var ErrNoSources = errors.New("no source files found")

// options are the flags shared by every evaluating command.
type options struct {
	lang     string
	manifest string
	config   string

	// Negative means the flag was not given.
	manyParameters int
	manyLines      int
}

// pipeline is the outcome of one evaluation run.
type pipeline struct {
	root    string
	adapter adapter.Adapter
	config  config.Config
	tree    *codeobject.Tree
	records []evaluation.Record
	sources *source.Cache
}

// result packages the run for reporters.
func (p *pipeline) result() reporter.Result {
	return reporter.NewResult(p.records, p.tree.Skipped())
}

// evaluate runs config loading, discovery, parsing, tree building and
// evaluation for path.
func evaluate(ctx context.Context, path string, o options, log *slog.Logger, progress *ui.ProgressController) (*pipeline, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	p := &pipeline{root: root}

	progress.SetStage(ui.StageLoadConfig)
	if p.config, err = loadConfig(root, o); err != nil {
		return nil, err
	}

	var (
		decls []adapter.Declaration
		lang  adapter.Language
		files []adapter.SourceFile
	)
	if o.manifest != "" {
		progress.SetStage(ui.StageParse)
		m, err := manifest.Load(o.manifest)
		if err != nil {
			return nil, err
		}
		decls, lang = m.Declarations, m.Conventions()
		p.adapter, _ = adapter.Get("manifest")
	} else {
		progress.SetStage(ui.StageDiscover)
		files, err = p.discover(o, log)
		if err != nil {
			return nil, err
		}

		progress.SetStage(ui.StageParse)
		progress.SetOperation(fmt.Sprintf("%d files", len(files)))
		decls, err = p.adapter.Parse(ctx, files)
		if err != nil {
			return nil, fmt.Errorf("parsing %s sources: %w", p.adapter.Name(), err)
		}
		lang = p.adapter.Language()
	}
	log.Debug("declarations read", "count", len(decls), "language", lang.Name)

	progress.SetStage(ui.StageBuildTree)
	if p.sources, err = source.NewCache(sourceBase(root), 0); err != nil {
		return nil, err
	}
	p.sources.Prime(files)
	p.tree, err = codeobject.Build(decls, lang,
		codeobject.WithSourceReader(p.sources),
		codeobject.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("building object tree: %w", err)
	}

	progress.SetStage(ui.StageEvaluate)
	progress.SetTotal(p.tree.Len())
	engine, err := evaluation.NewEngine(p.config, nil,
		evaluation.WithLogger(log),
		evaluation.WithProgress(func(done, _ int) { progress.Evaluated(done) }),
	)
	if err != nil {
		return nil, err
	}
	if p.records, err = engine.Run(ctx, p.tree); err != nil {
		return nil, err
	}
	progress.SetStage(ui.StageDone)
	return p, nil
}

func loadConfig(root string, o options) (config.Config, error) {
	path := o.config
	if path == "" {
		path = config.Find(sourceBase(root))
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if o.manyParameters >= 0 {
		cfg.ManyParametersThreshold = o.manyParameters
	}
	if o.manyLines >= 0 {
		cfg.ManyLinesThreshold = o.manyLines
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// discover picks the front-end and reads its files. Without --lang, the
// language with the most files wins.
func (p *pipeline) discover(o options, log *slog.Logger) ([]adapter.SourceFile, error) {
	var only adapter.Adapter
	if o.lang != "" {
		a, err := adapter.Get(o.lang)
		if err != nil {
			return nil, err
		}
		only = a
	}

	entries, err := discover.Files(p.root, discover.Options{Adapter: only, Exclude: p.config.Exclude})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", p.root, ErrNoSources)
	}

	lang := dominantLanguage(entries)
	if only == nil {
		if others := len(entries) - countLanguage(entries, lang); others > 0 {
			log.Info("reading one language per run; use --lang to choose",
				"language", lang, "skipped_files", others)
		}
	}
	p.adapter, err = adapter.Get(lang)
	if err != nil {
		return nil, err
	}

	var selected []discover.FileEntry
	for _, e := range entries {
		if e.Language == lang {
			selected = append(selected, e)
		}
	}
	return discover.Read(p.root, selected)
}

func dominantLanguage(entries []discover.FileEntry) string {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Language]++
	}
	langs := make([]string, 0, len(counts))
	for l := range counts {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		if counts[langs[i]] != counts[langs[j]] {
			return counts[langs[i]] > counts[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs[0]
}

func countLanguage(entries []discover.FileEntry, lang string) int {
	n := 0
	for _, e := range entries {
		if e.Language == lang {
			n++
		}
	}
	return n
}

// sourceBase is the directory file locations are relative to.
func sourceBase(root string) string {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return filepath.Dir(root)
	}
	return root
}
