package domain

import "time"

// Race is the header of a race detail page.
type Race struct {
	RaceID         string `validate:"required,len=12,numeric"`
	RaceDate       time.Time
	TrackName      string
	RaceNumber     int
	RaceName       string `validate:"required"`
	Grade          string
	Distance       int `validate:"gt=0"`
	TrackType      string
	TrackDirection string
	Weather        string
	TrackCondition string
	StartTime      string
	TotalHorses    int
	WinningTime    string
	Pace           string
	Prize1st       *float64
	RaceClass      string
	RaceConditions string
}

// RaceResult is one finisher of a race. FinishPosition is nil for scratches and disqualifications.
type RaceResult struct {
	RaceID           string `validate:"required"`
	HorseID          string `validate:"required"`
	HorseName        string
	HorseNumber      int
	BracketNumber    int
	FinishPosition   *int
	Sex              string
	Age              int
	JockeyWeight     *float64
	JockeyName       string
	JockeyID         string
	FinishTime       string
	Margin           string
	PassingPositions string
	Last3F           *float64
	Odds             *float64
	Popularity       *int
	HorseWeight      *int
	WeightChange     *int
	TrainerName      string
	TrainerID        string
	TrainerRegion    string
	OwnerName        string
	OwnerID          string
	PrizeMoney       *float64
}

// RaceSummary is a row of the race search list.
type RaceSummary struct {
	RaceID              string
	RaceDate            time.Time
	TrackName           string
	MeetingNumber       int
	DayNumber           int
	Weather             string
	RaceNumber          int
	RaceName            string
	Grade               string
	TrackType           string
	TrackDirection      string
	Distance            int
	TotalHorses         int
	TrackCondition      string
	WinningTime         string
	Pace                string
	WinnerName          string
	WinnerJockey        string
	WinnerTrainer       string
	WinnerTrainerRegion string
}

// RaceDetail is a race together with its results.
type RaceDetail struct {
	Race    Race
	Results []RaceResult
}

// RaceStats summarises what the race tables hold.
type RaceStats struct {
	TotalRaces     int
	TotalResults   int
	ByGrade        map[string]int
	ByTrack        map[string]int
	LatestRaceDate *time.Time
}

// RaceHistory is one line of a horse race record, a result joined with its race header.
type RaceHistory struct {
	Race   Race
	Result RaceResult
}

// Winner returns the result placed first, if any.
func (d RaceDetail) Winner() (RaceResult, bool) {
	for _, result := range d.Results {
		if result.FinishPosition != nil && *result.FinishPosition == 1 {
			return result, true
		}
	}
	return RaceResult{}, false
}

// RaceConditions is what the search form of the race list accepts.
type RaceConditions struct {
	Word      string
	StartYear int
	EndYear   int
	Grades    []string
	Tracks    []string
	Venues    []string
	Limit     int
}
