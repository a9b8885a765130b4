package domain

import (
	"math"
	"time"

	"stallion/errors"
)

type RankingKind string

const (
	RankingJockey  RankingKind = "jockey"
	RankingTrainer RankingKind = "trainer"
	RankingOwner   RankingKind = "owner"
	RankingBreeder RankingKind = "breeder"
)

func ParseRankingKind(s string) (RankingKind, error) {
	switch kind := RankingKind(s); kind {
	case RankingJockey, RankingTrainer, RankingOwner, RankingBreeder:
		return kind, nil
	default:
		return "", errors.ErrUnknownRankingKind
	}
}

type Entries struct {
	Entries int `json:"entries"`
	Wins    int `json:"wins"`
}

type RaceClassStats struct {
	Grade   Entries `json:"grade"`
	Special Entries `json:"special"`
	Normal  Entries `json:"normal"`
}

type TrackStats struct {
	Turf Entries `json:"turf"`
	Dirt Entries `json:"dirt"`
}

type YearStats struct {
	Races               int    `json:"races"`
	Wins                int    `json:"wins"`
	Seconds             int    `json:"seconds"`
	Thirds              int    `json:"thirds"`
	RepresentativeHorse string `json:"representative_horse,omitempty"`
	EstimatedHorses     int    `json:"estimated_horses,omitempty"`
	EstimatedProduced   int    `json:"estimated_produced,omitempty"`
}

// Performance is the results block shared by every ranking table. Prize money is in 円.
type Performance struct {
	TotalRaces      int
	Wins            int
	Seconds         int
	Thirds          int
	WinRate         float64
	SecondRate      float64
	ShowRate        float64
	TotalPrizeMoney float64
	YearlyStats     map[string]YearStats
	RaceStats       RaceClassStats
	TrackStats      TrackStats
}

// UpdateStats recomputes the three rates from the counters.
// SecondRate counts top two finishes and ShowRate top three.
func (p *Performance) UpdateStats() {
	if p.TotalRaces <= 0 {
		p.WinRate, p.SecondRate, p.ShowRate = 0, 0, 0
		return
	}
	p.WinRate = Percentage(p.Wins, p.TotalRaces)
	p.SecondRate = Percentage(p.Wins+p.Seconds, p.TotalRaces)
	p.ShowRate = Percentage(p.Wins+p.Seconds+p.Thirds, p.TotalRaces)
}

// Percentage returns part/total as a percentage rounded to two decimals, 0 when total is not positive.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round(float64(part)/float64(total)*100, 2)
}

func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

type Jockey struct {
	JockeyID    string
	NameJa      string
	NameEn      string
	Region      string
	TrainerName string
	Birthdate   *time.Time
	Status      string
	Performance
}

type Trainer struct {
	TrainerID string
	NameJa    string
	Region    string
	Birthdate *time.Time
	Status    string
	Performance
}

type Owner struct {
	OwnerID       string
	NameJa        string
	OwnerType     string
	Status        string
	TotalHorses   int
	ActiveHorses  int
	RetiredHorses int
	StakesWins    int
	Grade1Wins    int
	Performance
}

// HorsePerformanceRate is the share of the owner horses that won a stakes race.
func (o Owner) HorsePerformanceRate() float64 {
	return Percentage(o.StakesWins, o.TotalHorses)
}

type Breeder struct {
	BreederID           string
	NameJa              string
	BreederType         string
	Location            string
	TotalHorsesProduced int
	ActiveHorses        int
	RetiredHorses       int
	StakesWins          int
	Grade1Wins          int
	DebutHorses         int
	Performance
}

func (b Breeder) DebutRate() float64 {
	return Percentage(b.DebutHorses, b.TotalHorsesProduced)
}

func (b Breeder) StakesRate() float64 {
	return Percentage(b.StakesWins, b.TotalHorsesProduced)
}

// Rankings is one scraped page set of a ranking kind. Only the slice matching Kind is filled.
type Rankings struct {
	Kind     RankingKind
	Jockeys  []Jockey
	Trainers []Trainer
	Owners   []Owner
	Breeders []Breeder
}

func (r Rankings) Len() int {
	return len(r.Jockeys) + len(r.Trainers) + len(r.Owners) + len(r.Breeders)
}
