package usecase

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nuchoate/league-archive/internal/domain/recap"
	"github.com/nuchoate/league-archive/internal/platform/logging"
	"github.com/nuchoate/league-archive/internal/reports"
)

// ReportService renders the munged tree into a static HTML site:
// a front page, one index per season, one page per week, and a
// postseason page where a bracket exists.
type ReportService struct {
	library recap.Library
	outDir  string
	logger  *logging.Logger
}

func NewReportService(library recap.Library, outDir string, logger *logging.Logger) *ReportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ReportService{library: library, outDir: outDir, logger: logger}
}

func (s *ReportService) GenerateAll() error {
	seasons, err := s.library.Seasons()
	if err != nil {
		return fmt.Errorf("list munged seasons: %w", err)
	}
	if len(seasons) == 0 {
		return fmt.Errorf("%w: no munged seasons, run the munger first", ErrNotFound)
	}

	links := make([]reports.SeasonLink, 0, len(seasons))
	for _, season := range seasons {
		if err := s.generateSeason(season); err != nil {
			return err
		}

		link := reports.SeasonLink{Season: season, Href: season + "/index.html"}
		if s.library.HasPostseason(season) {
			if post, err := s.library.ReadPostseasonRecap(season); err == nil {
				link.Champion = post.Champion
			}
		}
		links = append(links, link)
	}

	hasAllTime, err := s.generateAllTime()
	if err != nil {
		return err
	}

	body, err := reports.RenderIndex(reports.IndexPage{Seasons: links, HasAllTime: hasAllTime})
	if err != nil {
		return err
	}
	if err := s.writePage(filepath.Join(s.outDir, "index.html"), body); err != nil {
		return err
	}

	s.logger.Info("reports generated", "seasons", len(seasons), "dir", s.outDir)
	return nil
}

func (s *ReportService) generateSeason(season string) error {
	seasonRecap, err := s.library.ReadSeasonRecap(season)
	if err != nil {
		s.logger.Warn("skip season report: no season recap", "season", season, "error", err)
		return nil
	}

	weeks, err := s.library.RegularWeeks(season)
	if err != nil {
		return err
	}

	weekLinks := make([]reports.WeekLink, 0, len(weeks))
	for _, week := range weeks {
		weekRecap, err := s.library.ReadWeeklyRecap(season, week)
		if err != nil {
			s.logger.Warn("skip week page: recap unreadable", "season", season, "week", week, "error", err)
			continue
		}
		transactions, err := s.library.ReadWeeklyTransactions(season, week)
		if err != nil {
			transactions = nil
		}

		body, err := reports.RenderWeekly(reports.WeeklyPage{
			Season:       season,
			Week:         week,
			Recap:        weekRecap,
			Transactions: transactions,
		})
		if err != nil {
			return err
		}

		name := fmt.Sprintf("week_%d.html", week)
		if err := s.writePage(filepath.Join(s.outDir, season, name), body); err != nil {
			return err
		}
		weekLinks = append(weekLinks, reports.WeekLink{Week: week, Href: name})
	}

	page := reports.SeasonPage{
		Season:     season,
		LeagueName: seasonRecap.LeagueName,
		Standings:  seasonRecap.Standings,
		Weeks:      weekLinks,
	}

	if draft, err := s.library.ReadDraft(season); err == nil {
		page.Draft = draft
	}

	if s.library.HasPostseason(season) {
		if err := s.generatePostseason(season, &page); err != nil {
			return err
		}
	}

	body, err := reports.RenderSeason(page)
	if err != nil {
		return err
	}

	return s.writePage(filepath.Join(s.outDir, season, "index.html"), body)
}

// generateAllTime renders the cross-season records page when the
// munger has produced one.
func (s *ReportService) generateAllTime() (bool, error) {
	if !s.library.HasAllTime() {
		return false, nil
	}

	rec, err := s.library.ReadAllTime()
	if err != nil {
		s.logger.Warn("skip all-time page: recap unreadable", "error", err)
		return false, nil
	}

	body, err := reports.RenderAllTime(reports.AllTimePage{Recap: rec})
	if err != nil {
		return false, err
	}
	if err := s.writePage(filepath.Join(s.outDir, "all_time", "index.html"), body); err != nil {
		return false, err
	}

	return true, nil
}

func (s *ReportService) generatePostseason(season string, page *reports.SeasonPage) error {
	post, err := s.library.ReadPostseasonRecap(season)
	if err != nil {
		s.logger.Warn("skip postseason page: recap unreadable", "season", season, "error", err)
		return nil
	}

	weeks, err := s.library.PostseasonWeeks(season)
	if err != nil {
		return err
	}

	weekRecaps := make([]recap.WeeklyRecap, 0, len(weeks))
	for _, week := range weeks {
		if weekRecap, err := s.library.ReadPostseasonWeek(season, week); err == nil {
			weekRecaps = append(weekRecaps, weekRecap)
		}
	}

	body, err := reports.RenderPostseason(reports.PostseasonPage{
		Season: season,
		Recap:  post,
		Weeks:  weekRecaps,
	})
	if err != nil {
		return err
	}
	if err := s.writePage(filepath.Join(s.outDir, season, "postseason.html"), body); err != nil {
		return err
	}

	page.HasPostseason = true
	page.Champion = post.Champion
	return nil
}

func (s *ReportService) writePage(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
