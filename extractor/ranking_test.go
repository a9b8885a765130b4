package extractor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stallion/domain"
	"stallion/errors"
)

const rankingHeader = `<tr><th rowspan="2">名前</th><th colspan="4">成績</th></tr><tr><th>1着</th><th>2着</th></tr>`

// results renders the shared results block: 1st to unplaced, class and surface stats, rates, prize, horse.
const results = `<td>100</td><td>80</td><td>60</td><td>260</td>` +
	`<td>40</td><td>8</td><td>120</td><td>30</td><td>340</td><td>62</td>` +
	`<td>300</td><td>70</td><td>200</td><td>30</td>` +
	`<td>99.9%</td><td>-</td><td>0%</td><td>25,000</td><td>イクイノックス</td>`

func rankingPage(rows ...string) string {
	return fmt.Sprintf(`<html><body><table class="nk_tb_common race_table_01">%s%s</table></body></html>`,
		rankingHeader, strings.Join(rows, "\n"))
}

func requireResults(t *testing.T, perf domain.Performance) {
	t.Helper()
	req := require.New(t)
	req.Equal(500, perf.TotalRaces)
	req.Equal(100, perf.Wins)
	req.Equal(80, perf.Seconds)
	req.Equal(60, perf.Thirds)
	// Rates come from the counters, the rate columns are ignored.
	req.Equal(20.0, perf.WinRate)
	req.Equal(36.0, perf.SecondRate)
	req.Equal(48.0, perf.ShowRate)
	req.Equal(250000000.0, perf.TotalPrizeMoney)
	req.Equal(domain.RaceClassStats{
		Grade:   domain.Entries{Entries: 40, Wins: 8},
		Special: domain.Entries{Entries: 120, Wins: 30},
		Normal:  domain.Entries{Entries: 340, Wins: 62},
	}, perf.RaceStats)
	req.Equal(domain.TrackStats{
		Turf: domain.Entries{Entries: 300, Wins: 70},
		Dirt: domain.Entries{Entries: 200, Wins: 30},
	}, perf.TrackStats)
	req.Equal("イクイノックス", perf.YearlyStats["2025"].RepresentativeHorse)
	req.Equal(500, perf.YearlyStats["2025"].Races)
}

func TestExtractor_Jockeys(t *testing.T) {
	req := require.New(t)
	page := rankingPage(
		`<tr><td><a href="/jockey/05339/">ルメール</a></td><td>[東]フリー</td><td>1979/05/20</td>`+results+`</tr>`,
		`<tr><td><a href="/jockey/01170/">北村友一</a></td><td>[西]<a href="/trainer/01157/">斉藤崇史</a></td><td>1986/10/03</td>`+results+`</tr>`,
		`<tr><td><a href="/jockey/a0001/">地方騎手</a></td><td>[地方]大井</td><td>-</td>`+results+`</tr>`,
		`<tr><td>too short</td></tr>`,
	)

	jockeys := newExtractor(t).Jockeys(parse(t, page))
	req.Len(jockeys, 2)

	lemaire := jockeys[0]
	req.Equal("05339", lemaire.JockeyID)
	req.Equal("ルメール", lemaire.NameJa)
	req.Equal("東", lemaire.Region)
	req.Equal("フリー", lemaire.TrainerName)
	req.Equal(time.Date(1979, 5, 20, 0, 0, 0, 0, time.UTC), *lemaire.Birthdate)
	requireResults(t, lemaire.Performance)

	req.Equal("西", jockeys[1].Region)
	req.Equal("斉藤崇史", jockeys[1].TrainerName)
}

func TestExtractor_Jockeys_Affiliation(t *testing.T) {
	req := require.New(t)
	page := rankingPage(`<tr><td><a href="/jockey/31001/">的場文男</a></td><td>[地方]大井</td><td>-</td>` + results + `</tr>`)

	jockeys := newExtractor(t).Jockeys(parse(t, page))
	req.Len(jockeys, 1)
	req.Equal("地方", jockeys[0].Region)
	req.Equal("大井", jockeys[0].TrainerName)
	req.Nil(jockeys[0].Birthdate)
}

func TestExtractor_Trainers(t *testing.T) {
	req := require.New(t)
	page := rankingPage(`<tr><td><a href="/trainer/01126/">木村哲也</a></td><td>美浦</td><td>1972/09/10</td>` + results + `</tr>`)

	trainers := newExtractor(t).Trainers(parse(t, page))
	req.Len(trainers, 1)
	req.Equal("01126", trainers[0].TrainerID)
	req.Equal("美浦", trainers[0].Region)
	requireResults(t, trainers[0].Performance)
}

func TestExtractor_Owners(t *testing.T) {
	req := require.New(t)
	page := rankingPage(`<tr><td><a href="/owner/226800/">シルクレーシング</a></td>` + results + `</tr>`)

	owners := newExtractor(t).Owners(parse(t, page))
	req.Len(owners, 1)
	owner := owners[0]
	req.Equal("226800", owner.OwnerID)
	req.Equal("corporation", owner.OwnerType)
	req.Equal(62, owner.TotalHorses)
	req.Equal(62, owner.ActiveHorses)
	req.Equal(38, owner.StakesWins)
	req.Equal(62, owner.YearlyStats["2025"].EstimatedHorses)
	requireResults(t, owner.Performance)
}

func TestExtractor_Breeders(t *testing.T) {
	req := require.New(t)
	page := rankingPage(`<tr><td><a href="/breeder/373126/">ノーザンファーム</a></td>` + results + `</tr>`)

	breeders := newExtractor(t).Breeders(parse(t, page))
	req.Len(breeders, 1)
	breeder := breeders[0]
	req.Equal("373126", breeder.BreederID)
	req.Equal("farm", breeder.BreederType)
	req.Equal("北海道", breeder.Location)
	req.Equal(83, breeder.TotalHorsesProduced)
	req.Equal(50, breeder.ActiveHorses)
	req.Equal(62, breeder.DebutHorses)
	req.Equal(83, breeder.YearlyStats["2025"].EstimatedProduced)
	requireResults(t, breeder.Performance)
}

func TestExtractor_Rankings(t *testing.T) {
	req := require.New(t)
	e := newExtractor(t)
	doc := parse(t, rankingPage(`<tr><td><a href="/owner/1/">個人馬主</a></td>`+results+`</tr>`))

	rankings, err := e.Rankings(domain.RankingOwner, doc)
	req.NoError(err)
	req.Equal(1, rankings.Len())
	req.Equal("individual", rankings.Owners[0].OwnerType)

	_, err = e.Rankings("groom", doc)
	req.ErrorIs(err, errors.ErrUnknownRankingKind)

	empty, err := e.Rankings(domain.RankingJockey, parse(t, `<html><body></body></html>`))
	req.NoError(err)
	req.Zero(empty.Len())
}
