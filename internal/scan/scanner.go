// Package scan drives the traversal pipeline: walk the tree, classify
// candidate executables, probe their architecture and NEEDED entries, and
// record matches against the configured search terms.
package scan

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dpttk/bldd/internal/constants"
	"github.com/dpttk/bldd/internal/elfprobe"
	"github.com/dpttk/bldd/internal/index"
)

// Scanner wires the walker, classifier, prober and matcher into one
// sequential pipeline. Per-file failures are isolated: a bad binary skips
// its own contribution and never halts the run.
type Scanner struct {
	logger     zerolog.Logger
	walker     *Walker
	classifier *Classifier
	prober     elfprobe.Prober
	matcher    *Matcher
}

// NewScanner creates a scanner over the given prober and search terms.
func NewScanner(logger zerolog.Logger, prober elfprobe.Prober, matcher *Matcher) *Scanner {
	return &Scanner{
		logger:     logger.With().Str("component", "scanner").Logger(),
		walker:     NewWalker(logger),
		classifier: NewClassifier(prober),
		prober:     prober,
		matcher:    matcher,
	}
}

// Run scans root and records every match into store. Only an inaccessible
// root (or context cancellation) is returned as an error; everything else
// degrades to a logged skip.
func (s *Scanner) Run(ctx context.Context, root string, store *index.Store) error {
	s.logger.Info().
		Str("dir", root).
		Strs("libraries", s.matcher.Canonical()).
		Msg("Scanning directory")

	classified := 0

	err := s.walker.Walk(ctx, root, func(path string) error {
		if !s.classifier.Classify(path) {
			return nil
		}

		classified++
		if classified%constants.ProgressInterval == 0 {
			s.logger.Info().
				Int("executables", classified).
				Int("matches", store.TotalExecutables()).
				Msg("Scan progress")
		}

		res, err := s.prober.Probe(path)
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("Probe failed, skipping file")
			return nil
		}
		if res.Arch == elfprobe.ArchUnknown {
			// Unknown machine types are excluded, silently.
			return nil
		}

		for _, dep := range res.Needed {
			if canon, ok := s.matcher.Match(dep); ok {
				store.Record(res.Arch, canon, path)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("executables", classified).
		Int("matches", store.TotalExecutables()).
		Msg("Scan complete")

	return nil
}
