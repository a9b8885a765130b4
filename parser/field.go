package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"stallion/domain"
)

var (
	horseHrefRe    = regexp.MustCompile(`/horse/([0-9a-zA-Z]*\d[0-9a-zA-Z]*)/`)
	pedHrefRe      = regexp.MustCompile(`/horse/ped/([0-9a-zA-Z]+)/`)
	raceHrefRe     = regexp.MustCompile(`/race/(\d{12})/?`)
	japaneseDateRe = regexp.MustCompile(`(\d{4})年(\d{1,2})月(\d{1,2})日`)
	okuRe          = regexp.MustCompile(`(\d+)億`)
	manRe          = regexp.MustCompile(`([\d,]+)万円`)
	careerRe       = regexp.MustCompile(`(\d+)戦(\d+)勝`)
	careerDetailRe = regexp.MustCompile(`\[(\d+)-(\d+)-(\d+)-(\d+)\]`)
	offeringRe     = regexp.MustCompile(`1口:(\d+)万円/(\d+)口`)
	nonDigitRe     = regexp.MustCompile(`[^\d]`)
	nonDecimalRe   = regexp.MustCompile(`[^\d.]`)
)

// CleanText trims s and treats "-" as an absent value.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "-" {
		return ""
	}
	return s
}

// HorseLink builds a link out of an anchor pointing at /horse/<id>/.
func HorseLink(href, text string) *domain.HorseLink {
	id := HorseID(href)
	if id == "" {
		return nil
	}
	return &domain.HorseLink{ID: id, Name: strings.TrimSpace(text)}
}

// HorseID extracts the id of /horse/<id>/. Section paths such as /horse/ped/ carry no digit and never match.
func HorseID(href string) string {
	return firstGroup(horseHrefRe, href)
}

func PedigreeHorseID(href string) string {
	return firstGroup(pedHrefRe, href)
}

func RaceID(href string) string {
	return firstGroup(raceHrefRe, href)
}

// JapaneseDate parses "2019年3月23日" anywhere in s.
func JapaneseDate(s string) (time.Time, bool) {
	m := japaneseDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// Prize converts "17億5,655万円" or "1,234万円" into 万円. Unparsable text yields 0.
func Prize(s string) int {
	if !strings.Contains(s, "万円") {
		return 0
	}
	total := 0
	if m := okuRe.FindStringSubmatch(s); m != nil {
		oku, _ := strconv.Atoi(m[1])
		total += oku * 10000
	}
	if m := manRe.FindStringSubmatch(s); m != nil {
		man, _ := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		total += man
	}
	return total
}

// CareerRecord parses "10戦8勝 [8-2-0-0]". The breakdown is optional.
func CareerRecord(s string) *domain.CareerRecord {
	m := careerRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	starts, _ := strconv.Atoi(m[1])
	wins, _ := strconv.Atoi(m[2])
	record := &domain.CareerRecord{Starts: starts, Wins: wins}
	if starts > 0 {
		record.WinRate = domain.Round(float64(wins)/float64(starts)*100, 1)
	}
	if d := careerDetailRe.FindStringSubmatch(s); d != nil {
		record.First = intPtr(d[1])
		record.Second = intPtr(d[2])
		record.Third = intPtr(d[3])
		record.Others = intPtr(d[4])
	}
	return record
}

// Offering parses "1口:8万円/500口". Any other non-empty text is kept raw.
func Offering(s string) *domain.Offering {
	s = CleanText(s)
	if s == "" {
		return nil
	}
	offering := &domain.Offering{RawText: s}
	if m := offeringRe.FindStringSubmatch(s); m != nil {
		offering.PricePerUnit = intPtr(m[1])
		offering.TotalUnits = intPtr(m[2])
	}
	return offering
}

// Sex maps the japanese sex marker found in a horse title line.
func Sex(s string) domain.Sex {
	switch {
	case strings.Contains(s, "牡"):
		return domain.SexStallion
	case strings.Contains(s, "牝"):
		return domain.SexMare
	case strings.Contains(s, "せん"), strings.Contains(s, "セン"):
		return domain.SexGelding
	default:
		return ""
	}
}

// Int parses a plain integer cell, returning nil when it is not one.
func Int(s string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}

// Decimal parses a decimal cell such as "56.0" or "1,234.5".
func Decimal(s string) *float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// LooseInt keeps the digits of s only, "1,234" and "12勝" both parse. Empty yields 0.
func LooseInt(s string) int {
	v, err := strconv.Atoi(nonDigitRe.ReplaceAllString(s, ""))
	if err != nil {
		return 0
	}
	return v
}

// LooseDecimal keeps digits and dots only, "12.5%" parses as 12.5. Empty yields 0.
func LooseDecimal(s string) float64 {
	v, err := strconv.ParseFloat(nonDecimalRe.ReplaceAllString(s, ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func intPtr(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
