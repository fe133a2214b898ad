// Package reports renders munged league records into static HTML pages.
package reports

import (
	"fmt"

	"github.com/nuchoate/league-archive/internal/domain/recap"
	"github.com/valyala/bytebufferpool"
)

// SeasonLink is one entry on the archive's front page.
type SeasonLink struct {
	Season   string
	Href     string
	Champion string
}

type IndexPage struct {
	Seasons    []SeasonLink
	HasAllTime bool
}

// WeekLink points a season index at one of its weekly pages.
type WeekLink struct {
	Week int
	Href string
}

type SeasonPage struct {
	Season        string
	LeagueName    string
	Champion      string
	Standings     []recap.StandingRow
	Weeks         []WeekLink
	HasPostseason bool
	Draft         recap.SeasonDraft
}

type WeeklyPage struct {
	Season       string
	Week         int
	Recap        recap.WeeklyRecap
	Transactions []recap.MappedTransaction
}

type PostseasonPage struct {
	Season string
	Recap  recap.PostseasonRecap
	Weeks  []recap.WeeklyRecap
}

type AllTimePage struct {
	Recap recap.AllTimeRecap
}

func RenderIndex(page IndexPage) ([]byte, error) {
	return render("main_index", page)
}

func RenderSeason(page SeasonPage) ([]byte, error) {
	return render("season_index", page)
}

func RenderWeekly(page WeeklyPage) ([]byte, error) {
	return render("weekly_page", page)
}

func RenderPostseason(page PostseasonPage) ([]byte, error) {
	return render("postseason_page", page)
}

func RenderAllTime(page AllTimePage) ([]byte, error) {
	return render("all_time_page", page)
}

func render(name string, data any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := pageTemplates.ExecuteTemplate(buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}

	// The pooled buffer is recycled, so hand back a copy.
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
