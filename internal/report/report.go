// Package report renders a finalized scan index into the requested output
// formats. Rendering reads the store but never mutates it.
package report

import (
	"github.com/rs/zerolog"

	"github.com/dpttk/bldd/internal/config"
	"github.com/dpttk/bldd/internal/index"
)

// Generate writes the report files selected by format, using base as the
// extension-less output name. A failed format is logged and does not stop
// the other one; output failures are never fatal once scanning completed.
func Generate(logger zerolog.Logger, store *index.Store, format config.Format, base string) {
	log := logger.With().Str("component", "report").Logger()

	if format.Text() {
		path := base + ".txt"
		if err := SaveText(store, path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to write text report")
		} else {
			log.Info().Str("path", path).Msg("Text report saved")
		}
	}

	if format.PDF() {
		path := base + ".pdf"
		if err := SavePDF(store, path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to write PDF report")
		} else {
			log.Info().Str("path", path).Msg("PDF report saved")
		}
	}
}
