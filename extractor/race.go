package extractor

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"stallion/domain"
	"stallion/errors"
	"stallion/parser"
	"stallion/scraping"
)

const minResultCells = 15

// RaceList reads the result table of the race search page. Rows without a race link are dropped.
func (e *Extractor) RaceList(doc *scraping.Node) []domain.RaceSummary {
	table := doc.Find("table", scraping.AttrEquals("summary", "レース検索結果"))
	if table == nil {
		e.log.Warn("Race result table not found")
		return nil
	}
	var races []domain.RaceSummary
	for _, row := range table.Rows() {
		tds := cells(row.Cells())
		if len(tds) < 10 {
			continue
		}
		name, href, ok := tds.link(4)
		if !ok {
			continue
		}
		race := domain.RaceSummary{
			RaceID:         parser.RaceID(href),
			RaceName:       name,
			Grade:          parser.ListGrade(name),
			Weather:        tds.text(2),
			TotalHorses:    lo.FromPtr(parser.Int(tds.text(7))),
			TrackCondition: tds.text(8),
			WinningTime:    tds.text(9),
			Pace:           tds.text(10),
		}
		race.RaceNumber = lo.FromPtr(parser.Int(tds.text(3)))
		if date, _, ok := tds.link(0); ok {
			race.RaceDate, _ = parser.ListDate(date)
		}
		if venue, _, ok := tds.link(1); ok {
			v := parser.ParseVenue(venue)
			race.TrackName, race.MeetingNumber, race.DayNumber = v.TrackName, v.MeetingNumber, v.DayNumber
		}
		course := parser.ParseDistance(tds.text(6))
		race.TrackType, race.TrackDirection, race.Distance = course.TrackType, course.Direction, course.Distance
		if len(tds) > 13 {
			race.WinnerName, _, _ = tds.link(11)
			race.WinnerJockey, _, _ = tds.link(12)
			race.WinnerTrainer, _, _ = tds.link(13)
			race.WinnerTrainerRegion = parser.EastWest(tds.text(13))
		}
		races = append(races, race)
	}
	e.log.Debug("Races extracted from list", "count", len(races))
	return races
}

// RaceDetail reads a /race/<id>/ page. A missing date falls back on today and a missing race number on 1.
func (e *Extractor) RaceDetail(doc *scraping.Node, raceID string) (domain.RaceDetail, error) {
	title := doc.Find("h1")
	if title == nil {
		return domain.RaceDetail{}, fmt.Errorf("%w: no title for %s", errors.ErrRaceInfoNotFound, raceID)
	}
	racedata := doc.Find("dl", scraping.HasClass("racedata"))
	if racedata == nil {
		return domain.RaceDetail{}, fmt.Errorf("%w: no racedata for %s", errors.ErrRaceInfoNotFound, raceID)
	}

	race := domain.Race{RaceID: raceID, RaceName: title.Text()}
	race.Grade = parser.DetailGrade(race.RaceName)
	conditions := parser.ParseConditions(racedata.RawText())
	race.TrackType = conditions.TrackType
	race.TrackDirection = conditions.Direction
	race.Distance = conditions.Distance
	race.Weather = conditions.Weather
	race.TrackCondition = conditions.TrackCondition
	race.StartTime = conditions.StartTime

	race.RaceNumber = parser.RaceNumber(doc.Find("dt").Text())
	if race.RaceNumber == 0 {
		race.RaceNumber = 1
	}
	venue := doc.Find("p", scraping.HasClass("smalltxt")).RawText()
	race.TrackName = parser.MeetingTrack(venue)
	date, ok := parser.JapaneseDate(venue)
	if !ok {
		now := e.now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	race.RaceDate = date

	results := e.raceResults(doc, raceID)
	if len(results) == 0 {
		return domain.RaceDetail{Race: race}, fmt.Errorf("%w: %s", errors.ErrRaceResultsMissing, raceID)
	}
	race.TotalHorses = len(results)
	race.WinningTime = results[0].FinishTime
	if winner, ok := (domain.RaceDetail{Results: results}).Winner(); ok {
		race.Prize1st = winner.PrizeMoney
	}
	return domain.RaceDetail{Race: race, Results: results}, nil
}

func (e *Extractor) raceResults(doc *scraping.Node, raceID string) []domain.RaceResult {
	table := doc.FindFirst(
		func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.HasClass("race_table_01")) },
		func(d *scraping.Node) *scraping.Node { return d.Find("table") },
	)
	var results []domain.RaceResult
	for _, row := range table.Rows() {
		tds := cells(row.Cells())
		if len(tds) < minResultCells {
			continue
		}
		results = append(results, resultRow(tds, raceID))
	}
	return results
}

func resultRow(tds cells, raceID string) domain.RaceResult {
	result := domain.RaceResult{
		RaceID:           raceID,
		FinishPosition:   parser.Int(tds.text(0)),
		BracketNumber:    lo.FromPtr(parser.Int(tds.text(1))),
		HorseNumber:      lo.FromPtr(parser.Int(tds.text(2))),
		JockeyWeight:     parser.Decimal(tds.text(5)),
		FinishTime:       tds.text(7),
		Margin:           tds.text(8),
		PassingPositions: tds.text(10),
		Last3F:           parser.Decimal(tds.text(11)),
		Odds:             parser.Decimal(tds.text(12)),
		Popularity:       parser.Int(tds.text(13)),
		PrizeMoney:       parser.Decimal(tds.text(20)),
	}
	if name, href, ok := tds.link(3); ok {
		result.HorseName = name
		result.HorseID = parser.HorseID(href)
	} else {
		result.HorseName = tds.text(3)
	}
	if result.HorseID == "" {
		result.HorseID = fmt.Sprintf("UNKNOWN_%s_%d", raceID, result.HorseNumber)
	}
	result.Sex, result.Age = parser.SexAge(tds.text(4))
	if result.Sex == "" {
		result.Sex = "不明"
	}
	if name, href, ok := tds.link(6); ok {
		result.JockeyName = name
		result.JockeyID = parser.RecentResultID("jockey", href)
	} else {
		result.JockeyName = tds.text(6)
	}
	result.HorseWeight, result.WeightChange = parser.HorseWeight(tds.text(14))
	if name, href, ok := tds.link(18); ok {
		result.TrainerName = name
		result.TrainerID = parser.RecentResultID("trainer", href)
	}
	result.TrainerRegion = parser.EastWest(tds.text(18))
	if name, href, ok := tds.link(19); ok {
		result.OwnerName = name
		result.OwnerID = parser.RecentResultID("owner", href)
	}
	return result
}
