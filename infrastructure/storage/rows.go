package storage

import (
	"reflect"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"stallion/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	tableHorses      = "horses"
	tableRelations   = "horse_relations"
	tableRaces       = "races"
	tableRaceResults = "race_results"
	tableJockeys     = "jockeys"
	tableTrainers    = "trainers"
	tableOwners      = "owners"
	tableBreeders    = "breeders"

	dateLayout = "2006-01-02"
)

// Rows mirror the tables column for column. Both the PostgREST and the PostgreSQL backends exchange
// them as JSON, empty optional columns are left out so that an upsert never blanks a stored value.

type horseRow struct {
	ID                  string          `json:"id"`
	NameJa              string          `json:"name_ja,omitempty"`
	NameEn              string          `json:"name_en,omitempty"`
	BirthDate           string          `json:"birth_date,omitempty"`
	Sex                 string          `json:"sex,omitempty"`
	SireID              string          `json:"sire_id,omitempty"`
	DamID               string          `json:"dam_id,omitempty"`
	MaternalGrandsireID string          `json:"maternal_grandsire_id,omitempty"`
	Profile             *domain.Profile `json:"profile,omitempty"`
}

func fromHorse(h domain.Horse) horseRow {
	row := horseRow{
		ID:                  h.ID,
		NameJa:              h.NameJa,
		NameEn:              h.NameEn,
		BirthDate:           formatDate(h.BirthDate),
		Sex:                 string(h.Sex),
		SireID:              h.SireID,
		DamID:               h.DamID,
		MaternalGrandsireID: h.MaternalGrandsireID,
	}
	if !reflect.ValueOf(h.Profile).IsZero() {
		profile := h.Profile
		row.Profile = &profile
	}
	return row
}

func (r horseRow) toHorse() domain.Horse {
	h := domain.Horse{
		ID:                  r.ID,
		NameJa:              r.NameJa,
		NameEn:              r.NameEn,
		BirthDate:           parseDate(r.BirthDate),
		Sex:                 domain.Sex(r.Sex),
		SireID:              r.SireID,
		DamID:               r.DamID,
		MaternalGrandsireID: r.MaternalGrandsireID,
	}
	if r.Profile != nil {
		h.Profile = *r.Profile
	}
	return h
}

type relationRow struct {
	ID           int64    `json:"id,omitempty"`
	HorseAID     string   `json:"horse_a_id"`
	HorseBID     string   `json:"horse_b_id"`
	RelationType string   `json:"relation_type"`
	ChildrenIDs  []string `json:"children_ids,omitempty"`
}

func fromRelation(r domain.Relation) relationRow {
	return relationRow{
		HorseAID:     r.HorseAID,
		HorseBID:     r.HorseBID,
		RelationType: string(r.Type),
		ChildrenIDs:  r.ChildrenIDs,
	}
}

func (r relationRow) toRelation() domain.Relation {
	return domain.Relation{
		ID:          r.ID,
		HorseAID:    r.HorseAID,
		HorseBID:    r.HorseBID,
		Type:        domain.RelationType(r.RelationType),
		ChildrenIDs: r.ChildrenIDs,
	}
}

type raceRow struct {
	RaceID         string   `json:"race_id"`
	RaceDate       string   `json:"race_date"`
	TrackName      string   `json:"track_name"`
	RaceNumber     int      `json:"race_number"`
	RaceName       string   `json:"race_name"`
	Grade          string   `json:"grade,omitempty"`
	Distance       int      `json:"distance"`
	TrackType      string   `json:"track_type"`
	TrackDirection string   `json:"track_direction,omitempty"`
	Weather        string   `json:"weather,omitempty"`
	TrackCondition string   `json:"track_condition,omitempty"`
	StartTime      string   `json:"start_time,omitempty"`
	TotalHorses    int      `json:"total_horses"`
	WinningTime    string   `json:"winning_time,omitempty"`
	Pace           string   `json:"pace,omitempty"`
	Prize1st       *float64 `json:"prize_1st,omitempty"`
	RaceClass      string   `json:"race_class,omitempty"`
	RaceConditions string   `json:"race_conditions,omitempty"`
}

func fromRace(r domain.Race) raceRow {
	return raceRow{
		RaceID:         r.RaceID,
		RaceDate:       r.RaceDate.Format(dateLayout),
		TrackName:      r.TrackName,
		RaceNumber:     r.RaceNumber,
		RaceName:       r.RaceName,
		Grade:          r.Grade,
		Distance:       r.Distance,
		TrackType:      r.TrackType,
		TrackDirection: r.TrackDirection,
		Weather:        r.Weather,
		TrackCondition: r.TrackCondition,
		StartTime:      r.StartTime,
		TotalHorses:    r.TotalHorses,
		WinningTime:    r.WinningTime,
		Pace:           r.Pace,
		Prize1st:       r.Prize1st,
		RaceClass:      r.RaceClass,
		RaceConditions: r.RaceConditions,
	}
}

func (r raceRow) toRace() domain.Race {
	race := domain.Race{
		RaceID:         r.RaceID,
		TrackName:      r.TrackName,
		RaceNumber:     r.RaceNumber,
		RaceName:       r.RaceName,
		Grade:          r.Grade,
		Distance:       r.Distance,
		TrackType:      r.TrackType,
		TrackDirection: r.TrackDirection,
		Weather:        r.Weather,
		TrackCondition: r.TrackCondition,
		StartTime:      trimSeconds(r.StartTime),
		TotalHorses:    r.TotalHorses,
		WinningTime:    r.WinningTime,
		Pace:           r.Pace,
		Prize1st:       r.Prize1st,
		RaceClass:      r.RaceClass,
		RaceConditions: r.RaceConditions,
	}
	if d := parseDate(r.RaceDate); d != nil {
		race.RaceDate = *d
	}
	return race
}

type raceResultRow struct {
	RaceID         string   `json:"race_id"`
	HorseID        string   `json:"horse_id"`
	HorseName      string   `json:"horse_name"`
	FinishPosition *int     `json:"finish_position"`
	BracketNumber  int      `json:"bracket_number"`
	HorseNumber    int      `json:"horse_number"`
	Age            int      `json:"age"`
	Sex            string   `json:"sex"`
	JockeyWeight   *float64 `json:"jockey_weight,omitempty"`
	JockeyID       string   `json:"jockey_id,omitempty"`
	JockeyName     string   `json:"jockey_name"`
	TrainerRegion  string   `json:"trainer_region,omitempty"`
	TrainerID      string   `json:"trainer_id,omitempty"`
	TrainerName    string   `json:"trainer_name"`
	RaceTime       string   `json:"race_time,omitempty"`
	TimeDiff       string   `json:"time_diff,omitempty"`
	PassingOrder   string   `json:"passing_order,omitempty"`
	Last3F         *float64 `json:"last_3f,omitempty"`
	Odds           *float64 `json:"odds,omitempty"`
	Popularity     *int     `json:"popularity,omitempty"`
	HorseWeight    *int     `json:"horse_weight,omitempty"`
	WeightChange   *int     `json:"weight_change,omitempty"`
	PrizeMoney     *float64 `json:"prize_money,omitempty"`
	OwnerID        string   `json:"owner_id,omitempty"`
	OwnerName      string   `json:"owner_name,omitempty"`
}

func fromRaceResult(r domain.RaceResult) raceResultRow {
	return raceResultRow{
		RaceID:         r.RaceID,
		HorseID:        r.HorseID,
		HorseName:      r.HorseName,
		FinishPosition: r.FinishPosition,
		BracketNumber:  r.BracketNumber,
		HorseNumber:    r.HorseNumber,
		Age:            r.Age,
		Sex:            r.Sex,
		JockeyWeight:   r.JockeyWeight,
		JockeyID:       r.JockeyID,
		JockeyName:     r.JockeyName,
		TrainerRegion:  r.TrainerRegion,
		TrainerID:      r.TrainerID,
		TrainerName:    r.TrainerName,
		RaceTime:       r.FinishTime,
		TimeDiff:       r.Margin,
		PassingOrder:   r.PassingPositions,
		Last3F:         r.Last3F,
		Odds:           r.Odds,
		Popularity:     r.Popularity,
		HorseWeight:    r.HorseWeight,
		WeightChange:   r.WeightChange,
		PrizeMoney:     r.PrizeMoney,
		OwnerID:        r.OwnerID,
		OwnerName:      r.OwnerName,
	}
}

func (r raceResultRow) toRaceResult() domain.RaceResult {
	return domain.RaceResult{
		RaceID:           r.RaceID,
		HorseID:          r.HorseID,
		HorseName:        r.HorseName,
		HorseNumber:      r.HorseNumber,
		BracketNumber:    r.BracketNumber,
		FinishPosition:   r.FinishPosition,
		Sex:              r.Sex,
		Age:              r.Age,
		JockeyWeight:     r.JockeyWeight,
		JockeyName:       r.JockeyName,
		JockeyID:         r.JockeyID,
		FinishTime:       r.RaceTime,
		Margin:           r.TimeDiff,
		PassingPositions: r.PassingOrder,
		Last3F:           r.Last3F,
		Odds:             r.Odds,
		Popularity:       r.Popularity,
		HorseWeight:      r.HorseWeight,
		WeightChange:     r.WeightChange,
		TrainerName:      r.TrainerName,
		TrainerID:        r.TrainerID,
		TrainerRegion:    r.TrainerRegion,
		OwnerName:        r.OwnerName,
		OwnerID:          r.OwnerID,
		PrizeMoney:       r.PrizeMoney,
	}
}

// historyRow is a race_results row with its race embedded, as returned by select=*,races!inner(*).
type historyRow struct {
	raceResultRow
	Race raceRow `json:"races"`
}

type performanceRow struct {
	TotalRaces      int                         `json:"total_races"`
	Wins            int                         `json:"wins"`
	Seconds         int                         `json:"seconds"`
	Thirds          int                         `json:"thirds"`
	WinRate         float64                     `json:"win_rate"`
	SecondRate      float64                     `json:"second_rate"`
	ShowRate        float64                     `json:"show_rate"`
	TotalPrizeMoney float64                     `json:"total_prize_money"`
	YearlyStats     map[string]domain.YearStats `json:"yearly_stats,omitempty"`
	RaceStats       *domain.RaceClassStats      `json:"race_stats,omitempty"`
	TrackStats      *domain.TrackStats          `json:"track_stats,omitempty"`
}

func fromPerformance(p domain.Performance) performanceRow {
	row := performanceRow{
		TotalRaces:      p.TotalRaces,
		Wins:            p.Wins,
		Seconds:         p.Seconds,
		Thirds:          p.Thirds,
		WinRate:         p.WinRate,
		SecondRate:      p.SecondRate,
		ShowRate:        p.ShowRate,
		TotalPrizeMoney: p.TotalPrizeMoney,
		YearlyStats:     p.YearlyStats,
	}
	if p.RaceStats != (domain.RaceClassStats{}) {
		row.RaceStats = &p.RaceStats
	}
	if p.TrackStats != (domain.TrackStats{}) {
		row.TrackStats = &p.TrackStats
	}
	return row
}

type jockeyRow struct {
	JockeyID    string `json:"jockey_id"`
	NameJa      string `json:"name_ja"`
	NameEn      string `json:"name_en,omitempty"`
	Region      string `json:"region,omitempty"`
	TrainerName string `json:"trainer_name,omitempty"`
	Birthdate   string `json:"birthdate,omitempty"`
	Status      string `json:"status,omitempty"`
	performanceRow
}

type trainerRow struct {
	TrainerID string `json:"trainer_id"`
	NameJa    string `json:"name_ja"`
	Region    string `json:"region,omitempty"`
	Birthdate string `json:"birthdate,omitempty"`
	Status    string `json:"status,omitempty"`
	performanceRow
}

type ownerRow struct {
	OwnerID       string `json:"owner_id"`
	NameJa        string `json:"name_ja"`
	OwnerType     string `json:"owner_type,omitempty"`
	Status        string `json:"status,omitempty"`
	TotalHorses   int    `json:"total_horses"`
	ActiveHorses  int    `json:"active_horses"`
	RetiredHorses int    `json:"retired_horses"`
	StakesWins    int    `json:"stakes_wins"`
	Grade1Wins    int    `json:"grade1_wins"`
	performanceRow
}

type breederRow struct {
	BreederID           string `json:"breeder_id"`
	NameJa              string `json:"name_ja"`
	BreederType         string `json:"breeder_type,omitempty"`
	Location            string `json:"location,omitempty"`
	TotalHorsesProduced int    `json:"total_horses_produced"`
	ActiveHorses        int    `json:"active_horses"`
	RetiredHorses       int    `json:"retired_horses"`
	StakesWins          int    `json:"stakes_wins"`
	Grade1Wins          int    `json:"grade1_wins"`
	DebutHorses         int    `json:"debut_horses"`
	performanceRow
}

func fromJockeys(jockeys []domain.Jockey) []jockeyRow {
	rows := make([]jockeyRow, 0, len(jockeys))
	for _, j := range jockeys {
		rows = append(rows, jockeyRow{
			JockeyID:       j.JockeyID,
			NameJa:         j.NameJa,
			NameEn:         j.NameEn,
			Region:         j.Region,
			TrainerName:    j.TrainerName,
			Birthdate:      formatDate(j.Birthdate),
			Status:         j.Status,
			performanceRow: fromPerformance(j.Performance),
		})
	}
	return rows
}

func fromTrainers(trainers []domain.Trainer) []trainerRow {
	rows := make([]trainerRow, 0, len(trainers))
	for _, t := range trainers {
		rows = append(rows, trainerRow{
			TrainerID:      t.TrainerID,
			NameJa:         t.NameJa,
			Region:         t.Region,
			Birthdate:      formatDate(t.Birthdate),
			Status:         t.Status,
			performanceRow: fromPerformance(t.Performance),
		})
	}
	return rows
}

func fromOwners(owners []domain.Owner) []ownerRow {
	rows := make([]ownerRow, 0, len(owners))
	for _, o := range owners {
		rows = append(rows, ownerRow{
			OwnerID:        o.OwnerID,
			NameJa:         o.NameJa,
			OwnerType:      o.OwnerType,
			Status:         o.Status,
			TotalHorses:    o.TotalHorses,
			ActiveHorses:   o.ActiveHorses,
			RetiredHorses:  o.RetiredHorses,
			StakesWins:     o.StakesWins,
			Grade1Wins:     o.Grade1Wins,
			performanceRow: fromPerformance(o.Performance),
		})
	}
	return rows
}

func fromBreeders(breeders []domain.Breeder) []breederRow {
	rows := make([]breederRow, 0, len(breeders))
	for _, b := range breeders {
		rows = append(rows, breederRow{
			BreederID:           b.BreederID,
			NameJa:              b.NameJa,
			BreederType:         b.BreederType,
			Location:            b.Location,
			TotalHorsesProduced: b.TotalHorsesProduced,
			ActiveHorses:        b.ActiveHorses,
			RetiredHorses:       b.RetiredHorses,
			StakesWins:          b.StakesWins,
			Grade1Wins:          b.Grade1Wins,
			DebutHorses:         b.DebutHorses,
			performanceRow:      fromPerformance(b.Performance),
		})
	}
	return rows
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(s string) *time.Time {
	if len(s) < len(dateLayout) {
		return nil
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return nil
	}
	return &t
}

// trimSeconds turns the "15:40:00" of a time column back into "15:40".
func trimSeconds(s string) string {
	if strings.Count(s, ":") == 2 {
		return s[:strings.LastIndex(s, ":")]
	}
	return s
}
