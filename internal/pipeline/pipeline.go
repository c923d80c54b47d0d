// Package pipeline wires scanning, parsing, merging and interpolation
// into one run over a data directory.
package pipeline

import (
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/field-logger/driftnorm/internal/cache"
	"github.com/field-logger/driftnorm/internal/config"
	"github.com/field-logger/driftnorm/internal/models"
	"github.com/field-logger/driftnorm/internal/parser"
	"github.com/field-logger/driftnorm/internal/scan"
)

// Result is the outcome of one run: the interpolated timeline and the
// per-file record of what contributed to it.
type Result struct {
	Timeline *models.Timeline
	Sources  []*models.SourceFile
}

// Pipeline processes one directory of logger files sequentially. Each
// file parse produces an independent Timeline; a pure merge folds them
// in discovery order, then forward-fill closes the gaps.
type Pipeline struct {
	cfg   *config.Config
	log   *zap.Logger
	cache *cache.Store
}

// New builds a pipeline from config. The parse cache is enabled only
// when a cache directory is configured.
func New(cfg *config.Config, log *zap.Logger) (*Pipeline, error) {
	if log == nil {
		log = zap.NewNop()
	}

	p := &Pipeline{cfg: cfg, log: log}
	if cfg.CacheDir != "" {
		store, err := cache.NewStore(cfg.CacheDir, log)
		if err != nil {
			return nil, err
		}
		p.cache = store
	}
	return p, nil
}

// Run scans dir and produces the normalized timeline. Unreadable files
// and files with an unrecognized column label contribute nothing but
// do not stop the run; only a failed directory scan is fatal.
func (p *Pipeline) Run(dir string) (*Result, error) {
	scanner := scan.NewScanner(p.cfg.Extensions, p.cfg.ExcludeMarker)
	files, err := scanner.Scan(dir)
	if err != nil {
		return nil, err
	}

	fp := parser.NewFileParser(p.cfg.OffsetHours, p.log)

	timelines := make([]*models.Timeline, 0, len(files))
	sources := make([]*models.SourceFile, 0, len(files))
	skipped := 0

	for _, file := range files {
		src := &models.SourceFile{ID: uuid.New().String(), Path: file}
		sources = append(sources, src)

		tl := p.parseFile(fp, file, src)
		if tl == nil {
			skipped++
			tl = models.NewTimeline()
		}
		src.Readings = tl.Len()
		src.Kind = string(fieldKindOf(tl))
		timelines = append(timelines, tl)
	}

	merged := parser.ForwardFill(parser.MergeTimelines(timelines))

	p.log.Info("run complete",
		zap.Int("files", len(files)),
		zap.Int("skipped", skipped),
		zap.Int("readings", merged.Len()))

	return &Result{Timeline: merged, Sources: sources}, nil
}

// fieldKindOf reports which reading column a single-file timeline
// feeds. A file populates exactly one column group, so inspecting any
// reading is enough; an empty timeline has no kind.
func fieldKindOf(tl *models.Timeline) models.FieldKind {
	keys := tl.Keys()
	if len(keys) == 0 {
		return ""
	}
	r := tl.Get(keys[0])
	switch {
	case r.Temp != nil:
		return models.FieldTemp
	case r.Light != nil:
		return models.FieldLight
	case r.Wets != nil:
		return models.FieldWets
	case r.WetTempMin != nil:
		return models.FieldWetTemp
	case r.WetDry != nil:
		return models.FieldWetDry
	}
	return ""
}

// parseFile parses one logger file, going through the cache when it is
// enabled. Returns nil when the file contributed nothing.
func (p *Pipeline) parseFile(fp *parser.FileParser, file string, src *models.SourceFile) *models.Timeline {
	if p.cache != nil {
		if tl, ok := p.cache.Get(file); ok {
			p.log.Info("using cached parse", zap.String("file", file))
			return tl
		}
	}

	p.log.Info("parsing logger file", zap.String("file", file))

	tl, err := fp.Parse(file)
	if err != nil {
		src.Err = err.Error()
		var labelErr *parser.ErrUnknownFieldLabel
		if errors.As(err, &labelErr) {
			p.log.Warn("skipping file with unknown column label",
				zap.String("file", file), zap.String("label", labelErr.Label))
		} else {
			p.log.Warn("could not read file",
				zap.String("file", file), zap.Error(err))
		}
		return nil
	}

	if p.cache != nil {
		if err := p.cache.Put(file, tl); err != nil {
			p.log.Warn("could not cache parse", zap.String("file", file), zap.Error(err))
		}
	}
	return tl
}
