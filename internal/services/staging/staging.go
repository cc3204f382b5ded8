// Package staging stages multipart upload bytes to a transient directory
// between receiving a request and handing the file to the Gemini gateway.
// Staged files are released on both success and failure paths; a cron
// janitor sweeps anything a crashed request left behind.
package staging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
)

// stagingSubdir keeps staged files apart from other tenants of the temp
// directory so the janitor never touches foreign files.
const stagingSubdir = "reperio-uploads"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// Service implements interfaces.StagingService.
type Service struct {
	dir        string
	staleAfter time.Duration
	schedule   string
	logger     arbor.ILogger
	cron       *cron.Cron
}

// NewService creates the staging service and its directory.
func NewService(cfg *common.Config, logger arbor.ILogger) (*Service, error) {
	dir := filepath.Join(cfg.Upload.StagingDir, stagingSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create staging directory %s: %w", dir, err)
	}

	return &Service{
		dir:        dir,
		staleAfter: cfg.UploadStaleAfter(),
		schedule:   cfg.Upload.JanitorSchedule,
		logger:     logger,
	}, nil
}

// Dir returns the staging directory path.
func (s *Service) Dir() string {
	return s.dir
}

// Stage writes r to a unique file and returns its path. The uuid prefix
// avoids collisions between concurrent uploads of the same filename.
func (s *Service) Stage(filename string, r io.Reader) (string, error) {
	safe := unsafeFilenameChars.ReplaceAllString(filename, "_")
	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s", uuid.New().String(), safe))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create staged file: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		s.Release(path)
		return "", fmt.Errorf("failed to write staged file: %w", err)
	}

	if err := file.Close(); err != nil {
		s.Release(path)
		return "", fmt.Errorf("failed to close staged file: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug().
			Str("path", path).
			Msg("Upload staged")
	}
	return path, nil
}

// Release removes a staged file. A removal failure is a resource leak, not a
// correctness error: it is logged and never masks the primary error the
// caller is propagating. The janitor picks the file up later.
func (s *Service) Release(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if s.logger != nil {
			s.logger.Warn().
				Str("path", path).
				Err(err).
				Msg("Failed to remove staged file")
		}
	}
}

// SweepStale removes staged files older than the TTL and returns the count.
func (s *Service) SweepStale() int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn().Err(err).Msg("Failed to read staging directory")
		}
		return 0
	}

	removed := 0
	cutoff := time.Now().Add(-s.staleAfter)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			if s.logger != nil {
				s.logger.Warn().Str("path", path).Err(err).Msg("Failed to remove stale staged file")
			}
			continue
		}
		removed++
	}

	if removed > 0 && s.logger != nil {
		s.logger.Info().
			Int("removed", removed).
			Msg("Swept stale staged files")
	}
	return removed
}

// Start schedules the janitor sweep.
func (s *Service) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, func() { s.SweepStale() }); err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()

	if s.logger != nil {
		s.logger.Info().
			Str("schedule", s.schedule).
			Str("dir", s.dir).
			Msg("Staging janitor started")
	}
	return nil
}

// Stop halts the janitor.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
