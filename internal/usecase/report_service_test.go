package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nuchoate/league-archive/internal/infrastructure/store"
	"github.com/nuchoate/league-archive/internal/platform/logging"
)

func TestGenerateAll_WritesFullSiteTree(t *testing.T) {
	t.Parallel()

	svc, munged, _ := newMungeFixture(t)
	if err := svc.ProcessSeason("2024"); err != nil {
		t.Fatalf("munge fixture season: %v", err)
	}

	outDir := t.TempDir()
	reportSvc := NewReportService(munged, outDir, logging.NewNop())
	if err := reportSvc.GenerateAll(); err != nil {
		t.Fatalf("generate reports: %v", err)
	}

	for _, rel := range []string{
		"index.html",
		filepath.Join("2024", "index.html"),
		filepath.Join("2024", "week_1.html"),
		filepath.Join("2024", "week_2.html"),
		filepath.Join("2024", "postseason.html"),
	} {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Fatalf("expected report page %s: %v", rel, err)
		}
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "2024/index.html") {
		t.Fatalf("front page does not link the season: %s", index)
	}
	if !strings.Contains(string(index), "Sharks") {
		t.Fatalf("front page does not name the champion: %s", index)
	}

	seasonPage, err := os.ReadFile(filepath.Join(outDir, "2024", "index.html"))
	if err != nil {
		t.Fatalf("read season page: %v", err)
	}
	if !strings.Contains(string(seasonPage), "Backyard Football League") {
		t.Fatalf("season page missing league name")
	}
	if !strings.Contains(string(seasonPage), "Josh Allen") {
		t.Fatalf("season page missing draft board")
	}
}

func TestGenerateAll_IncludesAllTimePage(t *testing.T) {
	t.Parallel()

	svc, munged := newAllTimeFixture(t)
	if err := svc.ProcessAllSeasons(); err != nil {
		t.Fatalf("munge fixture seasons: %v", err)
	}

	outDir := t.TempDir()
	reportSvc := NewReportService(munged, outDir, logging.NewNop())
	if err := reportSvc.GenerateAll(); err != nil {
		t.Fatalf("generate reports: %v", err)
	}

	allTime, err := os.ReadFile(filepath.Join(outDir, "all_time", "index.html"))
	if err != nil {
		t.Fatalf("expected all-time page: %v", err)
	}
	for _, want := range []string{"Career Standings", "alice", "Head-to-Head", "Josh Allen"} {
		if !strings.Contains(string(allTime), want) {
			t.Fatalf("all-time page missing %q", want)
		}
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if !strings.Contains(string(index), "all_time/index.html") {
		t.Fatalf("front page does not link the all-time records: %s", index)
	}
}

func TestGenerateAll_NoMungedSeasons(t *testing.T) {
	t.Parallel()

	svc := NewReportService(store.NewMungedStore(t.TempDir()), t.TempDir(), logging.NewNop())
	if err := svc.GenerateAll(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
