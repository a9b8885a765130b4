package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"stallion/domain"
)

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func success(s string) string { return color.New(color.FgGreen).Render(s) }
func failure(s string) string { return color.New(color.FgRed).Render(s) }
func skip(s string) string    { return color.New(color.FgYellow).Render(s) }

func title(out io.Writer, s string) {
	fmt.Fprintln(out, color.New(color.BgBlack, color.FgGreen, color.OpBold).Render(" "+s+" "))
}

func roleLabel(role string) string {
	if role == "" {
		return skip("opaque key")
	}
	return success(role)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func intOrDash(p *int) string {
	if p == nil {
		return "-"
	}
	return strconv.Itoa(*p)
}

func decimalOrDash(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func printHorse(out io.Writer, h domain.Horse) {
	title(out, h.DisplayName())
	table := newTable(out, "Field", "Value")
	table.Append([]string{"ID", h.ID})
	table.Append([]string{"English name", orDash(h.NameEn)})
	table.Append([]string{"Sex", orDash(string(h.Sex))})
	birth := "-"
	if h.BirthDate != nil {
		birth = h.BirthDate.Format(time.DateOnly)
	}
	table.Append([]string{"Birth date", birth})
	table.Append([]string{"Sire", orDash(h.SireID)})
	table.Append([]string{"Dam", orDash(h.DamID)})
	table.Append([]string{"Maternal grandsire", orDash(h.MaternalGrandsireID)})
	table.Append([]string{"Trainer", orDash(h.Profile.Trainer)})
	table.Append([]string{"Owner", orDash(h.Profile.Owner)})
	table.Append([]string{"Breeder", orDash(h.Profile.Breeder)})
	if c := h.Profile.CareerRecord; c != nil {
		table.Append([]string{"Career", fmt.Sprintf("%d starts, %d wins (%.1f%%)", c.Starts, c.Wins, c.WinRate)})
	}
	table.Append([]string{"Prize (万円)", intOrDash(h.Profile.PrizeCentral)})
	for _, v := range h.Profile.MainVictories {
		table.Append([]string{"Victory", fmt.Sprintf("%s %s", v.RaceName, v.Grade)})
	}
	table.Render()
}

func printReport(out io.Writer, r domain.BatchReport) {
	title(out, fmt.Sprintf("Run %s", r.RunID))
	fmt.Fprintf(out, "total %d | %s | %s | %s | %s\n",
		r.Total,
		success(fmt.Sprintf("ok %d", len(r.Success))),
		failure(fmt.Sprintf("failed %d", len(r.Failed))),
		skip(fmt.Sprintf("skipped %d", len(r.Skipped))),
		r.Duration().Round(time.Second))
	if len(r.Failed) == 0 {
		return
	}
	table := newTable(out, "Horse", "Name", "Reason")
	for _, o := range r.Failed {
		table.Append([]string{o.HorseID, o.Name, failure(o.Reason)})
	}
	table.Render()
}

func printStoreStats(out io.Writer, s domain.StoreStats) {
	fmt.Fprintf(out, "total %d | %s | %s | %s\n",
		s.Total,
		success(fmt.Sprintf("stored %d", s.Success)),
		skip(fmt.Sprintf("skipped %d", s.Skipped)),
		failure(fmt.Sprintf("failed %d", s.Failed)))
	for _, msg := range s.Errors {
		fmt.Fprintln(out, failure(msg))
	}
}

func printRace(out io.Writer, d domain.RaceDetail) {
	r := d.Race
	title(out, fmt.Sprintf("%s %s", r.RaceName, orDash(r.Grade)))
	fmt.Fprintf(out, "%s %s %dR | %s%s %dm | %s %s | %s\n",
		r.RaceDate.Format(time.DateOnly), r.TrackName, r.RaceNumber,
		r.TrackType, r.TrackDirection, r.Distance,
		orDash(r.Weather), orDash(r.TrackCondition), orDash(r.StartTime))
	table := newTable(out, "Pos", "No", "Horse", "Jockey", "Time", "Odds", "Pop")
	for _, res := range d.Results {
		table.Append([]string{
			intOrDash(res.FinishPosition),
			strconv.Itoa(res.HorseNumber),
			res.HorseName,
			res.JockeyName,
			orDash(res.FinishTime),
			decimalOrDash(res.Odds),
			intOrDash(res.Popularity),
		})
	}
	table.Render()
}

func printRaceList(out io.Writer, races []domain.RaceSummary) {
	table := newTable(out, "Race", "Date", "Track", "Name", "Grade", "Course", "Winner")
	for _, r := range races {
		table.Append([]string{
			r.RaceID,
			r.RaceDate.Format(time.DateOnly),
			r.TrackName,
			r.RaceName,
			orDash(r.Grade),
			fmt.Sprintf("%s%d", r.TrackType, r.Distance),
			orDash(r.WinnerName),
		})
	}
	table.Render()
}

type rankingLine struct {
	id, name string
	perf     domain.Performance
}

func rankingLines(r domain.Rankings) []rankingLine {
	var lines []rankingLine
	lines = append(lines, lo.Map(r.Jockeys, func(j domain.Jockey, _ int) rankingLine {
		return rankingLine{j.JockeyID, j.NameJa, j.Performance}
	})...)
	lines = append(lines, lo.Map(r.Trainers, func(t domain.Trainer, _ int) rankingLine {
		return rankingLine{t.TrainerID, t.NameJa, t.Performance}
	})...)
	lines = append(lines, lo.Map(r.Owners, func(o domain.Owner, _ int) rankingLine {
		return rankingLine{o.OwnerID, o.NameJa, o.Performance}
	})...)
	lines = append(lines, lo.Map(r.Breeders, func(b domain.Breeder, _ int) rankingLine {
		return rankingLine{b.BreederID, b.NameJa, b.Performance}
	})...)
	return lines
}

func printRankings(out io.Writer, r domain.Rankings) {
	title(out, fmt.Sprintf("%s ranking, %d entries", r.Kind, r.Len()))
	table := newTable(out, "#", "ID", "Name", "Starts", "Wins", "Win %", "Show %", "Prize (円)")
	for i, line := range rankingLines(r) {
		table.Append([]string{
			strconv.Itoa(i + 1),
			line.id,
			line.name,
			strconv.Itoa(line.perf.TotalRaces),
			strconv.Itoa(line.perf.Wins),
			fmt.Sprintf("%.2f", line.perf.WinRate),
			fmt.Sprintf("%.2f", line.perf.ShowRate),
			fmt.Sprintf("%.0f", line.perf.TotalPrizeMoney),
		})
	}
	table.Render()
}

func printRaceStats(out io.Writer, s domain.RaceStats) {
	latest := "-"
	if s.LatestRaceDate != nil {
		latest = s.LatestRaceDate.Format(time.DateOnly)
	}
	fmt.Fprintf(out, "%d races, %d results, latest %s\n", s.TotalRaces, s.TotalResults, latest)
	table := newTable(out, "Breakdown", "Value", "Races")
	for _, group := range []struct {
		name   string
		counts map[string]int
	}{{"grade", s.ByGrade}, {"track", s.ByTrack}} {
		keys := lo.Keys(group.counts)
		sort.Strings(keys)
		for _, k := range keys {
			table.Append([]string{group.name, orDash(k), strconv.Itoa(group.counts[k])})
		}
	}
	table.Render()
}
