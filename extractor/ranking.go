package extractor

import (
	"strconv"
	"strings"
	"time"

	"stallion/domain"
	"stallion/errors"
	"stallion/parser"
	"stallion/scraping"
)

// Minimum number of cells of a data row, per ranking table.
const (
	jockeyCells  = 19
	trainerCells = 22
	ownerCells   = 20
	breederCells = 20
)

const (
	rankingHeaderRows = 2
	manYen            = 10000
)

// Rankings reads one page of the ranking list of kind.
func (e *Extractor) Rankings(kind domain.RankingKind, doc *scraping.Node) (domain.Rankings, error) {
	rankings := domain.Rankings{Kind: kind}
	switch kind {
	case domain.RankingJockey:
		rankings.Jockeys = e.Jockeys(doc)
	case domain.RankingTrainer:
		rankings.Trainers = e.Trainers(doc)
	case domain.RankingOwner:
		rankings.Owners = e.Owners(doc)
	case domain.RankingBreeder:
		rankings.Breeders = e.Breeders(doc)
	default:
		return rankings, errors.ErrUnknownRankingKind
	}
	return rankings, nil
}

func (e *Extractor) Jockeys(doc *scraping.Node) []domain.Jockey {
	var jockeys []domain.Jockey
	for _, tds := range e.rankingRows(doc, jockeyCells) {
		name, href, _ := tds.link(0)
		id := parser.PersonID("jockey", href)
		if id == "" {
			continue
		}
		affiliation := tds.stripped(1)
		jockeys = append(jockeys, domain.Jockey{
			JockeyID:    id,
			NameJa:      name,
			Region:      region(affiliation),
			TrainerName: affiliatedTrainer(tds, affiliation),
			Birthdate:   birthdate(tds.stripped(2)),
			Performance: e.performance(tds, 3),
		})
	}
	return jockeys
}

func (e *Extractor) Trainers(doc *scraping.Node) []domain.Trainer {
	var trainers []domain.Trainer
	for _, tds := range e.rankingRows(doc, trainerCells) {
		name, href, _ := tds.link(0)
		id := parser.PersonID("trainer", href)
		if id == "" {
			continue
		}
		trainers = append(trainers, domain.Trainer{
			TrainerID:   id,
			NameJa:      name,
			Region:      tds.stripped(1),
			Birthdate:   birthdate(tds.stripped(2)),
			Performance: e.performance(tds, 3),
		})
	}
	return trainers
}

// Owners reads the owner list. The list carries no horse count, it is estimated at one horse per 8 starts.
func (e *Extractor) Owners(doc *scraping.Node) []domain.Owner {
	var owners []domain.Owner
	for _, tds := range e.rankingRows(doc, ownerCells) {
		name, href, _ := tds.link(0)
		id := parser.PersonID("owner", href)
		if id == "" {
			continue
		}
		perf := e.performance(tds, 1)
		horses := estimate(perf.TotalRaces, 8)
		perf.YearlyStats[e.year()] = withEstimate(perf.YearlyStats[e.year()], func(y *domain.YearStats) { y.EstimatedHorses = horses })
		owners = append(owners, domain.Owner{
			OwnerID:      id,
			NameJa:       name,
			OwnerType:    e.keywords.OwnerType(name),
			TotalHorses:  horses,
			ActiveHorses: horses,
			StakesWins:   perf.RaceStats.Grade.Wins + perf.RaceStats.Special.Wins,
			Performance:  perf,
		})
	}
	return owners
}

// Breeders reads the breeder list. Produced and debut counts are estimated from the number of starts.
func (e *Extractor) Breeders(doc *scraping.Node) []domain.Breeder {
	var breeders []domain.Breeder
	for _, tds := range e.rankingRows(doc, breederCells) {
		name, href, _ := tds.link(0)
		id := parser.PersonID("breeder", href)
		if id == "" {
			continue
		}
		perf := e.performance(tds, 1)
		produced := estimate(perf.TotalRaces, 6)
		perf.YearlyStats[e.year()] = withEstimate(perf.YearlyStats[e.year()], func(y *domain.YearStats) { y.EstimatedProduced = produced })
		breeders = append(breeders, domain.Breeder{
			BreederID:           id,
			NameJa:              name,
			BreederType:         e.keywords.BreederType(name),
			Location:            e.keywords.BreederLocation(name),
			TotalHorsesProduced: produced,
			ActiveHorses:        estimate(perf.TotalRaces, 10),
			StakesWins:          perf.RaceStats.Grade.Wins + perf.RaceStats.Special.Wins,
			DebutHorses:         estimate(perf.TotalRaces, 8),
			Performance:         perf,
		})
	}
	return breeders
}

func (e *Extractor) rankingRows(doc *scraping.Node, minCells int) []cells {
	table := doc.Find("table", scraping.HasClass("nk_tb_common", "race_table_01"))
	if table == nil {
		e.log.Warn("Ranking table not found")
		return nil
	}
	rows := table.Rows()
	if len(rows) <= rankingHeaderRows {
		return nil
	}
	var out []cells
	for _, row := range rows[rankingHeaderRows:] {
		tds := cells(row.Cells())
		if len(tds) < minCells {
			continue
		}
		out = append(out, tds)
	}
	return out
}

// performance reads the results block starting at column first:
// 1st, 2nd, 3rd, unplaced, graded/special/normal entries and wins, turf and dirt entries and wins,
// three rates, prize in 万円 and the representative horse. Rates are recomputed from the counters.
func (e *Extractor) performance(tds cells, first int) domain.Performance {
	col := func(i int) int { return parser.LooseInt(tds.stripped(first + i)) }
	entries := func(i int) domain.Entries { return domain.Entries{Entries: col(i), Wins: col(i + 1)} }

	perf := domain.Performance{
		Wins:    col(0),
		Seconds: col(1),
		Thirds:  col(2),
		RaceStats: domain.RaceClassStats{
			Grade:   entries(4),
			Special: entries(6),
			Normal:  entries(8),
		},
		TrackStats: domain.TrackStats{
			Turf: entries(10),
			Dirt: entries(12),
		},
		TotalPrizeMoney: parser.LooseDecimal(tds.stripped(first+17)) * manYen,
	}
	perf.TotalRaces = perf.Wins + perf.Seconds + perf.Thirds + col(3)
	perf.YearlyStats = map[string]domain.YearStats{
		e.year(): {
			Races:               perf.TotalRaces,
			Wins:                perf.Wins,
			Seconds:             perf.Seconds,
			Thirds:              perf.Thirds,
			RepresentativeHorse: tds.stripped(first + 18),
		},
	}
	perf.UpdateStats()
	return perf
}

func (e *Extractor) year() string {
	return strconv.Itoa(e.now().Year())
}

func withEstimate(y domain.YearStats, set func(*domain.YearStats)) domain.YearStats {
	set(&y)
	return y
}

// estimate divides the number of starts, never returning less than one.
func estimate(races, perHorse int) int {
	return max(1, races/perHorse)
}

func region(affiliation string) string {
	switch {
	case strings.Contains(affiliation, "[東]"):
		return "東"
	case strings.Contains(affiliation, "[西]"):
		return "西"
	case strings.Contains(affiliation, "[地方]"):
		return "地方"
	default:
		return ""
	}
}

// affiliatedTrainer is the stable of a jockey, "フリー" for freelancers.
func affiliatedTrainer(tds cells, affiliation string) string {
	if name, _, ok := tds.link(1); ok {
		return name
	}
	if strings.Contains(affiliation, "フリー") {
		return "フリー"
	}
	return parser.StripRegion(affiliation)
}

func birthdate(s string) *time.Time {
	d, ok := parser.ListDate(s)
	if !ok {
		return nil
	}
	return &d
}
