package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/nuchoate/league-archive/internal/domain/recap"
)

// MungedStore keeps the flattened records in a tree parallel to the raw
// one. All writes funnel through one marshal helper so repeated runs
// over the same raw tree produce byte-identical files.
//
// Layout:
//
//	<root>/<season>/regular_season/week_<n>/recap.json
//	<root>/<season>/regular_season/week_<n>/transactions.json
//	<root>/<season>/reg_season_recap.json
//	<root>/<season>/postseason/week_<n>/recap.json
//	<root>/<season>/postseason/recap.json
//	<root>/<season>/draft.json
//	<root>/all_time/recap.json
type MungedStore struct {
	root string
}

func NewMungedStore(root string) *MungedStore {
	return &MungedStore{root: root}
}

func (s *MungedStore) WriteWeeklyRecap(season string, week int, rec recap.WeeklyRecap) error {
	return s.writeJSON(filepath.Join(s.root, season, "regular_season", weekDir(week), "recap.json"), rec)
}

func (s *MungedStore) WriteWeeklyTransactions(season string, week int, rows []recap.MappedTransaction) error {
	return s.writeJSON(filepath.Join(s.root, season, "regular_season", weekDir(week), "transactions.json"), rows)
}

func (s *MungedStore) WriteSeasonRecap(rec recap.SeasonRecap) error {
	return s.writeJSON(filepath.Join(s.root, rec.Season, "reg_season_recap.json"), rec)
}

func (s *MungedStore) WritePostseasonWeek(season string, week int, rec recap.WeeklyRecap) error {
	return s.writeJSON(filepath.Join(s.root, season, "postseason", weekDir(week), "recap.json"), rec)
}

func (s *MungedStore) WritePostseasonRecap(rec recap.PostseasonRecap) error {
	return s.writeJSON(filepath.Join(s.root, rec.Season, "postseason", "recap.json"), rec)
}

func (s *MungedStore) WriteDraft(d recap.SeasonDraft) error {
	return s.writeJSON(filepath.Join(s.root, d.Season, "draft.json"), d)
}

func (s *MungedStore) WriteAllTime(rec recap.AllTimeRecap) error {
	return s.writeJSON(filepath.Join(s.root, "all_time", "recap.json"), rec)
}

func (s *MungedStore) ReadWeeklyRecap(season string, week int) (recap.WeeklyRecap, error) {
	var rec recap.WeeklyRecap
	err := s.readJSON(filepath.Join(s.root, season, "regular_season", weekDir(week), "recap.json"), &rec)
	return rec, err
}

func (s *MungedStore) ReadWeeklyTransactions(season string, week int) ([]recap.MappedTransaction, error) {
	var rows []recap.MappedTransaction
	err := s.readJSON(filepath.Join(s.root, season, "regular_season", weekDir(week), "transactions.json"), &rows)
	return rows, err
}

func (s *MungedStore) ReadSeasonRecap(season string) (recap.SeasonRecap, error) {
	var rec recap.SeasonRecap
	err := s.readJSON(filepath.Join(s.root, season, "reg_season_recap.json"), &rec)
	return rec, err
}

func (s *MungedStore) ReadPostseasonWeek(season string, week int) (recap.WeeklyRecap, error) {
	var rec recap.WeeklyRecap
	err := s.readJSON(filepath.Join(s.root, season, "postseason", weekDir(week), "recap.json"), &rec)
	return rec, err
}

func (s *MungedStore) ReadPostseasonRecap(season string) (recap.PostseasonRecap, error) {
	var rec recap.PostseasonRecap
	err := s.readJSON(filepath.Join(s.root, season, "postseason", "recap.json"), &rec)
	return rec, err
}

func (s *MungedStore) ReadDraft(season string) (recap.SeasonDraft, error) {
	var d recap.SeasonDraft
	err := s.readJSON(filepath.Join(s.root, season, "draft.json"), &d)
	return d, err
}

func (s *MungedStore) ReadAllTime() (recap.AllTimeRecap, error) {
	var rec recap.AllTimeRecap
	err := s.readJSON(filepath.Join(s.root, "all_time", "recap.json"), &rec)
	return rec, err
}

func (s *MungedStore) Seasons() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read munged root %s: %w", s.root, err)
	}

	seasons := make([]string, 0, len(entries))
	for _, entry := range entries {
		// Season dirs are four-digit years; this keeps all_time out.
		if entry.IsDir() && isSeasonDir(entry.Name()) {
			seasons = append(seasons, entry.Name())
		}
	}
	sort.Strings(seasons)

	return seasons, nil
}

func isSeasonDir(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// RegularWeeks lists the munged regular-season week numbers, ascending.
func (s *MungedStore) RegularWeeks(season string) ([]int, error) {
	return s.weeks(filepath.Join(s.root, season, "regular_season"))
}

func (s *MungedStore) PostseasonWeeks(season string) ([]int, error) {
	return s.weeks(filepath.Join(s.root, season, "postseason"))
}

func (s *MungedStore) HasPostseason(season string) bool {
	info, err := os.Stat(filepath.Join(s.root, season, "postseason", "recap.json"))
	return err == nil && !info.IsDir()
}

func (s *MungedStore) HasAllTime() bool {
	info, err := os.Stat(filepath.Join(s.root, "all_time", "recap.json"))
	return err == nil && !info.IsDir()
}

func (s *MungedStore) weeks(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read week dir %s: %w", dir, err)
	}

	weeks := make([]int, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		number, ok := parseWeekDir(entry.Name())
		if !ok {
			continue
		}
		weeks = append(weeks, number)
	}
	sort.Ints(weeks)

	return weeks, nil
}

func (s *MungedStore) writeJSON(path string, value any) error {
	body, err := MarshalDeterministic(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create munged dir: %w", err)
	}
	if err := os.WriteFile(path, body, filePerm); err != nil {
		return fmt.Errorf("write munged file %s: %w", path, err)
	}

	return nil
}

func (s *MungedStore) readJSON(path string, target any) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read munged file %s: %w", path, err)
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode munged file %s: %w", path, err)
	}

	return nil
}

// MarshalDeterministic encodes with sorted map keys and fixed
// indentation so identical inputs always yield identical bytes.
func MarshalDeterministic(value any) ([]byte, error) {
	body, err := sonic.ConfigStd.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(body, '\n'), nil
}

func weekDir(week int) string {
	return fmt.Sprintf("week_%d", week)
}

func parseWeekDir(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "week_")
	if !ok {
		return 0, false
	}
	number, err := strconv.Atoi(rest)
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}
