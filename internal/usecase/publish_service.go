package usecase

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nuchoate/league-archive/internal/platform/logging"
)

// PublishService replicates the generated report tree into the publish
// directory used for static hosting. Existing publish content is
// cleared first, except a root README.md, so stale pages never linger.
type PublishService struct {
	reportsDir string
	publishDir string
	logger     *logging.Logger
}

func NewPublishService(reportsDir, publishDir string, logger *logging.Logger) *PublishService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PublishService{reportsDir: reportsDir, publishDir: publishDir, logger: logger}
}

func (s *PublishService) CopyReports() error {
	if _, err := os.Stat(s.reportsDir); err != nil {
		return fmt.Errorf("%w: reports directory %s, generate reports first", ErrNotFound, s.reportsDir)
	}

	if err := os.MkdirAll(s.publishDir, 0o755); err != nil {
		return fmt.Errorf("create publish dir: %w", err)
	}
	if err := s.clearPublishDir(); err != nil {
		return err
	}

	copied := 0
	err := filepath.WalkDir(s.reportsDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.reportsDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		dest := filepath.Join(s.publishDir, rel)
		if entry.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		if err := copyFile(path, dest); err != nil {
			return err
		}
		copied++
		return nil
	})
	if err != nil {
		return fmt.Errorf("copy reports: %w", err)
	}

	s.logger.Info("reports published", "files", copied, "dir", s.publishDir)
	return nil
}

func (s *PublishService) clearPublishDir() error {
	entries, err := os.ReadDir(s.publishDir)
	if err != nil {
		return fmt.Errorf("read publish dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == "README.md" {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.publishDir, entry.Name())); err != nil {
			return fmt.Errorf("clear publish dir: %w", err)
		}
	}

	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
