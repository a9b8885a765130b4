package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	Turf = "芝"
	Dirt = "ダート"
)

var (
	venueRe         = regexp.MustCompile(`^(\d+)([^\d]+)(\d+)`)
	distanceRe      = regexp.MustCompile(`(\d+)`)
	courseRe        = regexp.MustCompile(`(芝|ダート|ダ)([左右直線]*?)(\d+)m`)
	weatherRe       = regexp.MustCompile(`天候\s*[:：]\s*([^\s/&]+)`)
	goingRe         = regexp.MustCompile(`(芝|ダート|ダ)\s*[:：]\s*([^\s/&]+)`)
	postTimeRe      = regexp.MustCompile(`発走\s*[:：]\s*(\d{1,2}):(\d{2})`)
	raceNumberRe    = regexp.MustCompile(`(\d+)\s*R`)
	meetingTrackRe  = regexp.MustCompile(`回([^日]+?)\d+日目`)
	sexAgeRe        = regexp.MustCompile(`^([牡牝セ])(\d+)`)
	horseWeightRe   = regexp.MustCompile(`^(\d+)\(([+-]?\d+)\)`)
	eastWestRe      = regexp.MustCompile(`\[(東|西)\]`)
	bracketRegionRe = regexp.MustCompile(`\[.*?\]`)
)

// Venue is the "2東京10" cell of the race list: meeting 2 at Tokyo, day 10.
type Venue struct {
	TrackName     string
	MeetingNumber int
	DayNumber     int
}

func ParseVenue(s string) Venue {
	s = strings.TrimSpace(s)
	m := venueRe.FindStringSubmatch(s)
	if m == nil {
		return Venue{TrackName: s}
	}
	meeting, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[3])
	return Venue{TrackName: m[2], MeetingNumber: meeting, DayNumber: day}
}

// ListDate parses "2025/05/25".
func ListDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006/01/02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type Course struct {
	TrackType string
	Direction string
	Distance  int
}

// ParseDistance reads the distance cell of the race list, "芝2400", "ダ1200" or "芝左2400".
// Missing surface defaults to turf.
func ParseDistance(s string) Course {
	s = strings.TrimSpace(s)
	var course Course
	rest := s
	switch {
	case strings.Contains(s, Turf):
		course.TrackType = Turf
		rest = strings.ReplaceAll(s, Turf, "")
	case strings.Contains(s, "ダ"):
		course.TrackType = Dirt
		rest = strings.ReplaceAll(strings.ReplaceAll(s, Dirt, ""), "ダ", "")
	default:
		course.TrackType = Turf
	}
	for _, direction := range []string{"左", "右", "直線"} {
		if strings.Contains(rest, direction) {
			course.Direction = direction
			rest = strings.ReplaceAll(rest, direction, "")
			break
		}
	}
	if m := distanceRe.FindStringSubmatch(rest); m != nil {
		course.Distance, _ = strconv.Atoi(m[1])
	}
	return course
}

// Conditions is the text of the racedata block of a race page:
// "芝左2400m / 天候 : 晴 / 芝 : 良 / 発走 : 15:40".
type Conditions struct {
	Course
	Weather        string
	TrackCondition string
	StartTime      string
}

func ParseConditions(s string) Conditions {
	var c Conditions
	if m := courseRe.FindStringSubmatch(s); m != nil {
		c.TrackType = m[1]
		if strings.HasPrefix(c.TrackType, "ダ") {
			c.TrackType = Dirt
		}
		c.Direction = m[2]
		c.Distance, _ = strconv.Atoi(m[3])
	}
	if m := weatherRe.FindStringSubmatch(s); m != nil {
		c.Weather = strings.TrimSpace(m[1])
	}
	if m := goingRe.FindStringSubmatch(s); m != nil {
		c.TrackCondition = strings.TrimSpace(m[2])
	}
	if m := postTimeRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		c.StartTime = fmt.Sprintf("%02d:%02d", hour, minute)
	}
	return c
}

// RaceNumber reads "11 R".
func RaceNumber(s string) int {
	m := raceNumberRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// MeetingTrack reads the course out of "2025年05月25日 2回東京10日目".
func MeetingTrack(s string) string {
	return firstGroup(meetingTrackRe, s)
}

// SexAge splits "牝3".
func SexAge(s string) (string, int) {
	m := sexAgeRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", 0
	}
	age, _ := strconv.Atoi(m[2])
	return m[1], age
}

// HorseWeight splits "474(+4)" into the weight and its change.
func HorseWeight(s string) (*int, *int) {
	m := horseWeightRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, nil
	}
	return intPtr(m[1]), intPtr(m[2])
}

// EastWest extracts the [東] or [西] stable marker.
func EastWest(s string) string {
	return firstGroup(eastWestRe, s)
}

// StripRegion removes every bracketed marker such as [東] from s.
func StripRegion(s string) string {
	return strings.TrimSpace(bracketRegionRe.ReplaceAllString(s, ""))
}

// ListGrade derives the grade or class of a race from its name as shown in the race list.
func ListGrade(name string) string {
	switch {
	case strings.Contains(name, "(GI)"), strings.Contains(name, "(G1)"):
		return "G1"
	case strings.Contains(name, "(GII)"), strings.Contains(name, "(G2)"):
		return "G2"
	case strings.Contains(name, "(GIII)"), strings.Contains(name, "(G3)"):
		return "G3"
	case strings.Contains(name, "(L)"), strings.Contains(name, "Listed"):
		return "Listed"
	case strings.Contains(name, "OP"), strings.Contains(name, "オープン"):
		return "OP"
	case strings.Contains(name, "1600万"):
		return "1600万"
	case strings.Contains(name, "1000万"):
		return "1000万"
	case strings.Contains(name, "500万"):
		return "500万"
	case strings.Contains(name, "未勝利"):
		return "未勝利"
	default:
		return ""
	}
}

// DetailGrade only recognises graded stakes, which is all the race page title carries.
func DetailGrade(name string) string {
	switch grade := ListGrade(name); grade {
	case "G1", "G2", "G3":
		return grade
	default:
		return ""
	}
}

var personIDRes = map[string]*regexp.Regexp{
	"jockey":         regexp.MustCompile(`/jockey/(\d+)/`),
	"trainer":        regexp.MustCompile(`/trainer/(\d+)/`),
	"owner":          regexp.MustCompile(`/owner/(\d+)/`),
	"breeder":        regexp.MustCompile(`/breeder/(\d+)/`),
	"jockey_recent":  regexp.MustCompile(`/jockey/result/recent/(\d+)/?`),
	"trainer_recent": regexp.MustCompile(`/trainer/result/recent/(\d+)/?`),
	"owner_recent":   regexp.MustCompile(`/owner/result/recent/(\d+)/?`),
}

// PersonID extracts a jockey, trainer, owner or breeder id out of a profile link.
func PersonID(kind, href string) string {
	re, ok := personIDRes[kind]
	if !ok {
		return ""
	}
	return firstGroup(re, href)
}

// RecentResultID extracts the id of the recent results links used in race result tables.
func RecentResultID(kind, href string) string {
	return PersonID(kind+"_recent", href)
}
