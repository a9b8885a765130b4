package storage

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"stallion/domain"
)

func TestFromHorse_Drops_Empty_Columns(t *testing.T) {
	req := require.New(t)
	raw, err := json.Marshal(fromHorse(domain.Horse{ID: "2019105219", NameJa: "イクイノックス"}))
	req.NoError(err)
	req.JSONEq(`{"id":"2019105219","name_ja":"イクイノックス"}`, string(raw))
}

func TestFromHorse_Keeps_Profile_As_Object(t *testing.T) {
	req := require.New(t)
	birth := time.Date(2019, 3, 23, 0, 0, 0, 0, time.UTC)
	horse := domain.Horse{
		ID:        "2019105219",
		NameJa:    "イクイノックス",
		NameEn:    "Equinox",
		BirthDate: &birth,
		Sex:       domain.SexStallion,
		SireID:    "2012104511",
		Profile: domain.Profile{
			Trainer:      "木村哲也",
			PrizeCentral: lo.ToPtr(221544),
		},
	}
	raw, err := json.Marshal(fromHorse(horse))
	req.NoError(err)
	req.JSONEq(`{
		"id":"2019105219","name_ja":"イクイノックス","name_en":"Equinox","birth_date":"2019-03-23",
		"sex":"stallion","sire_id":"2012104511",
		"profile":{"trainer":"木村哲也","total_prize_central":221544}
	}`, string(raw))

	var row horseRow
	req.NoError(json.Unmarshal(raw, &row))
	req.Equal(horse, row.toHorse())
}

func TestRaceRow_Reads_Database_Formats(t *testing.T) {
	req := require.New(t)
	var row raceRow
	req.NoError(json.Unmarshal([]byte(`{"race_id":"202505021211","race_date":"2025-06-01","race_name":"日本ダービー",
		"distance":2400,"start_time":"15:40:00","prize_1st":30000,"grade":null}`), &row))

	race := row.toRace()
	req.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), race.RaceDate)
	req.Equal("15:40", race.StartTime)
	req.Equal(30000.0, *race.Prize1st)
	req.Empty(race.Grade)
}

func TestFromRaceResult_Renames_Columns(t *testing.T) {
	req := require.New(t)
	raw, err := json.Marshal(fromRaceResult(domain.RaceResult{
		RaceID:           "202505021211",
		HorseID:          "2022105081",
		HorseName:        "クロワデュノール",
		FinishPosition:   lo.ToPtr(1),
		FinishTime:       "2:23.7",
		Margin:           "",
		PassingPositions: "3-3-3-3",
	}))
	req.NoError(err)
	req.JSONEq(`{"race_id":"202505021211","horse_id":"2022105081","horse_name":"クロワデュノール",
		"finish_position":1,"bracket_number":0,"horse_number":0,"age":0,"sex":"","jockey_name":"","trainer_name":"",
		"race_time":"2:23.7","passing_order":"3-3-3-3"}`, string(raw))
}

func TestFromPerformance_Omits_Empty_Stats(t *testing.T) {
	req := require.New(t)
	row := fromPerformance(domain.Performance{TotalRaces: 10, Wins: 2})
	req.Nil(row.RaceStats)
	req.Nil(row.TrackStats)

	row = fromPerformance(domain.Performance{TrackStats: domain.TrackStats{Turf: domain.Entries{Entries: 3, Wins: 1}}})
	req.NotNil(row.TrackStats)
}
