package domain

import "time"

type Sex string

const (
	SexStallion Sex = "stallion"
	SexMare     Sex = "mare"
	SexGelding  Sex = "gelding"
)

// Horse is a horse detail page flattened into the columns stored in the horses table.
// Everything that is not a direct column ends up in Profile.
type Horse struct {
	ID                  string     `validate:"required,alphanum"`
	NameJa              string     `validate:"required"`
	NameEn              string
	BirthDate           *time.Time
	Sex                 Sex `validate:"omitempty,oneof=stallion mare gelding"`
	SireID              string
	DamID               string
	MaternalGrandsireID string
	Profile             Profile
}

// HorseLink is a reference to another horse found in a profile or pedigree cell.
type HorseLink struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CareerRecord struct {
	Starts  int     `json:"starts"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
	First   *int    `json:"first,omitempty"`
	Second  *int    `json:"second,omitempty"`
	Third   *int    `json:"third,omitempty"`
	Others  *int    `json:"others,omitempty"`
}

// Offering describes a syndicated (club) horse: price per share in 万円 and number of shares.
type Offering struct {
	PricePerUnit *int   `json:"price_per_unit,omitempty"`
	TotalUnits   *int   `json:"total_units,omitempty"`
	RawText      string `json:"raw_text"`
}

type Victory struct {
	RaceName string `json:"race_name"`
	RaceID   string `json:"race_id,omitempty"`
	Grade    string `json:"grade"`
}

// Profile holds the profile table of a horse detail page. Prizes are expressed in 万円.
type Profile struct {
	Trainer           string        `json:"trainer,omitempty"`
	Owner             string        `json:"owner,omitempty"`
	Breeder           string        `json:"breeder,omitempty"`
	Birthplace        string        `json:"birthplace,omitempty"`
	Weight            string        `json:"weight,omitempty"`
	Height            string        `json:"height,omitempty"`
	Sire              *HorseLink    `json:"sire,omitempty"`
	Dam               *HorseLink    `json:"dam,omitempty"`
	MaternalGrandsire *HorseLink    `json:"maternal_grandsire,omitempty"`
	CareerRecord      *CareerRecord `json:"career_record,omitempty"`
	PrizeCentral      *int          `json:"total_prize_central,omitempty"`
	PrizeLocal        *int          `json:"total_prize_local,omitempty"`
	GradedWins        string        `json:"graded_wins,omitempty"`
	MainVictoriesText string        `json:"main_victories_text,omitempty"`
	MainVictories     []Victory     `json:"main_victories,omitempty"`
	Offering          *Offering     `json:"offering_info,omitempty"`
	AuctionPrice      string        `json:"auction_price,omitempty"`
	RelatedHorses     string        `json:"related_horses,omitempty"`
}

// HorseSummary is a row of the horse search list.
type HorseSummary struct {
	ID        string
	NameJa    string
	Sex       string
	BirthYear int
}

// PedigreeIDs are the three pedigree links kept as direct columns on a horse.
type PedigreeIDs struct {
	SireID              string
	DamID               string
	MaternalGrandsireID string
}

// ApplyPedigree overwrites the pedigree columns with every non-empty id of p.
func (h *Horse) ApplyPedigree(p PedigreeIDs) {
	if p.SireID != "" {
		h.SireID = p.SireID
	}
	if p.DamID != "" {
		h.DamID = p.DamID
	}
	if p.MaternalGrandsireID != "" {
		h.MaternalGrandsireID = p.MaternalGrandsireID
	}
}

func (h Horse) Pedigree() PedigreeIDs {
	return PedigreeIDs{
		SireID:              h.SireID,
		DamID:               h.DamID,
		MaternalGrandsireID: h.MaternalGrandsireID,
	}
}

// DisplayName prefers the japanese name, falling back on the english one and finally the id.
func (h Horse) DisplayName() string {
	switch {
	case h.NameJa != "":
		return h.NameJa
	case h.NameEn != "":
		return h.NameEn
	default:
		return h.ID
	}
}
