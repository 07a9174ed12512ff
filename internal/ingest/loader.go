// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest is the data-access boundary. It reads the exported JSON
// documents, normalizes heterogeneous upstream field names and encodings
// into the canonical types, and assembles an immutable snapshot.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-directory/pkg/types"
)

// Default document names in the data directory.
const (
	DefaultExpertsFile            = "experts.json"
	DefaultExpertDetailsFile      = "expert_details.json"
	DefaultSimilarFile            = "expert_similar_profiles.json"
	DefaultAgenciesFile           = "agencies.json"
	DefaultOpportunitiesFile      = "Opportunities.json"
	DefaultOpportunityDetailsFile = "Opportunities_details.json"
	DefaultPageSize               = 24
)

// LoadError reports a failure to load one document. Other documents in the
// same load are unaffected.
type LoadError struct {
	Document string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Document, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads a data directory into snapshots.
type Loader struct {
	cfg    types.DirectoryConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewLoader returns a Loader for cfg. Empty file names fall back to the
// defaults. A nil logger discards log output.
func NewLoader(cfg types.DirectoryConfig, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cfg: WithDefaults(cfg), logger: logger, now: time.Now}
}

// WithDefaults fills empty document names and page size.
func WithDefaults(cfg types.DirectoryConfig) types.DirectoryConfig {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	def(&cfg.ExpertsFile, DefaultExpertsFile)
	def(&cfg.ExpertDetailsFile, DefaultExpertDetailsFile)
	def(&cfg.SimilarFile, DefaultSimilarFile)
	def(&cfg.AgenciesFile, DefaultAgenciesFile)
	def(&cfg.OpportunitiesFile, DefaultOpportunitiesFile)
	def(&cfg.OpportunityDetailsFile, DefaultOpportunityDetailsFile)
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return cfg
}

// Load reads every document and returns a complete snapshot. The snapshot
// is never nil: a document that fails to load leaves its collection empty,
// and the failures are returned joined as *LoadError values. Missing
// optional documents (details, similar profiles, agencies) are not errors.
func (l *Loader) Load(ctx context.Context) (*types.Snapshot, error) {
	snap := types.Empty()
	var errs []error

	steps := []struct {
		file     string
		required bool
		apply    func([]byte) error
	}{
		{l.cfg.ExpertsFile, true, func(b []byte) error {
			experts, raw, err := ParseExperts(b)
			if err == nil {
				snap.Experts, snap.ExpertRaw = experts, raw
			}
			return err
		}},
		{l.cfg.ExpertDetailsFile, false, func(b []byte) error {
			idx, err := ParseDetails(b, "id")
			if err == nil {
				snap.ExpertDetails = idx
			}
			return err
		}},
		{l.cfg.SimilarFile, false, func(b []byte) error {
			similar, err := ParseSimilar(b)
			if err == nil {
				snap.Similar = similar
			}
			return err
		}},
		{l.cfg.AgenciesFile, false, func(b []byte) error {
			agencies, err := ParseAgencies(b)
			if err == nil {
				snap.Agencies = agencies
			}
			return err
		}},
		{l.cfg.OpportunitiesFile, true, func(b []byte) error {
			opps, raw, err := ParseOpportunities(b)
			if err == nil {
				snap.Opportunities, snap.OpportunityRaw = opps, raw
			}
			return err
		}},
		{l.cfg.OpportunityDetailsFile, false, func(b []byte) error {
			idx, err := ParseDetails(b, "opp_id")
			if err == nil {
				snap.OpportunityDetails = idx
			}
			return err
		}},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			return snap, ctx.Err()
		default:
		}

		path := filepath.Join(l.cfg.DataDir, step.file)
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) && !step.required {
				l.logger.Debug("optional document missing", zap.String("document", step.file))
				continue
			}
			errs = append(errs, &LoadError{Document: step.file, Err: err})
			l.logger.Warn("document load failed", zap.String("document", step.file), zap.Error(err))
			continue
		}
		if err := step.apply(data); err != nil {
			errs = append(errs, &LoadError{Document: step.file, Err: err})
			l.logger.Warn("document parse failed", zap.String("document", step.file), zap.Error(err))
		}
	}

	snap.LoadedAt = l.now()
	l.logger.Info("snapshot loaded",
		zap.Int("experts", len(snap.Experts)),
		zap.Int("expert_details", len(snap.ExpertDetails)),
		zap.Int("opportunities", len(snap.Opportunities)),
		zap.Int("opportunity_details", len(snap.OpportunityDetails)),
		zap.Int("agencies", len(snap.Agencies)),
		zap.Int("failed_documents", len(errs)),
	)
	return snap, errors.Join(errs...)
}

// Paths returns the absolute-or-relative paths of every document the
// loader reads, used by the data-directory watcher.
func (l *Loader) Paths() []string {
	files := []string{
		l.cfg.ExpertsFile, l.cfg.ExpertDetailsFile, l.cfg.SimilarFile,
		l.cfg.AgenciesFile, l.cfg.OpportunitiesFile, l.cfg.OpportunityDetailsFile,
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = filepath.Join(l.cfg.DataDir, f)
	}
	return paths
}

// DataDir returns the directory the loader reads from.
func (l *Loader) DataDir() string { return l.cfg.DataDir }

// PageSize returns the configured "load more" window size.
func (l *Loader) PageSize() int { return l.cfg.PageSize }

