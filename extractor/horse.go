package extractor

import (
	"fmt"
	"regexp"
	"strconv"

	"stallion/domain"
	"stallion/errors"
	"stallion/parser"
	"stallion/scraping"
)

var raceHrefRe = regexp.MustCompile(`/race/\d+/`)

type fieldSetter func(h *domain.Horse, cell *scraping.Node)

func textField(set func(h *domain.Horse, v string)) fieldSetter {
	return func(h *domain.Horse, cell *scraping.Node) {
		if v := parser.CleanText(cell.StrippedText()); v != "" {
			set(h, v)
		}
	}
}

func horseLink(set func(h *domain.Horse, l *domain.HorseLink)) fieldSetter {
	return func(h *domain.Horse, cell *scraping.Node) {
		if a, _ := firstLink(cell, parser.HorseID); a != nil {
			set(h, parser.HorseLink(a.Attr("href"), a.Text()))
		}
	}
}

func prize(set func(h *domain.Horse, v *int)) fieldSetter {
	return func(h *domain.Horse, cell *scraping.Node) {
		if v := parser.Prize(cell.StrippedText()); v > 0 {
			set(h, &v)
		}
	}
}

// profileFields maps the labels of the profile table to horse columns and profile entries.
var profileFields = map[string]fieldSetter{
	"馬名":  textField(func(h *domain.Horse, v string) { h.NameJa = v }),
	"英字名": textField(func(h *domain.Horse, v string) { h.NameEn = v }),
	"生年月日": func(h *domain.Horse, cell *scraping.Node) {
		if d, ok := parser.JapaneseDate(cell.StrippedText()); ok {
			h.BirthDate = &d
		}
	},
	"調教師":       textField(func(h *domain.Horse, v string) { h.Profile.Trainer = v }),
	"馬主":        textField(func(h *domain.Horse, v string) { h.Profile.Owner = v }),
	"生産者":       textField(func(h *domain.Horse, v string) { h.Profile.Breeder = v }),
	"産地":        textField(func(h *domain.Horse, v string) { h.Profile.Birthplace = v }),
	"馬体重":       textField(func(h *domain.Horse, v string) { h.Profile.Weight = v }),
	"体高":        textField(func(h *domain.Horse, v string) { h.Profile.Height = v }),
	"重賞勝利":      textField(func(h *domain.Horse, v string) { h.Profile.GradedWins = v }),
	"主な勝ち鞍":     textField(func(h *domain.Horse, v string) { h.Profile.MainVictoriesText = v }),
	"セリ取引価格":    textField(func(h *domain.Horse, v string) { h.Profile.AuctionPrice = v }),
	"近親馬":       textField(func(h *domain.Horse, v string) { h.Profile.RelatedHorses = v }),
	"父":         horseLink(func(h *domain.Horse, l *domain.HorseLink) { h.Profile.Sire = l }),
	"母":         horseLink(func(h *domain.Horse, l *domain.HorseLink) { h.Profile.Dam = l }),
	"母父":        horseLink(func(h *domain.Horse, l *domain.HorseLink) { h.Profile.MaternalGrandsire = l }),
	"獲得賞金 (中央)": prize(func(h *domain.Horse, v *int) { h.Profile.PrizeCentral = v }),
	"獲得賞金 (地方)": prize(func(h *domain.Horse, v *int) { h.Profile.PrizeLocal = v }),
	"通算成績": func(h *domain.Horse, cell *scraping.Node) {
		h.Profile.CareerRecord = parser.CareerRecord(cell.StrippedText())
	},
	"募集情報": func(h *domain.Horse, cell *scraping.Node) {
		h.Profile.Offering = parser.Offering(cell.StrippedText())
	},
}

var profileTables = []func(*scraping.Node) *scraping.Node{
	func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.AttrEquals("summary", "のプロフィール")) },
	func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.AttrEquals("summary", "プロフィール")) },
	func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.HasClass("db_prof_table")) },
	func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.HasClass("horse_info")) },
	func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.HasClass("prof_table")) },
	func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.HasClass("horse_prof")) },
}

// HorseDetail reads a /horse/<id>/ page. The pedigree ids come from the small blood table of the page,
// the pedigree page gives the authoritative ones.
func (e *Extractor) HorseDetail(doc *scraping.Node, id string) (domain.Horse, error) {
	horse := domain.Horse{ID: id}
	horse.NameJa = horseName(doc)
	horse.Sex = parser.Sex(doc.Find("div", scraping.HasClass("horse_title")).Find("p", scraping.HasClass("txt_01")).Text())
	horse.NameEn = doc.Find("p", scraping.HasClass("eng_name")).Find("a").Text()

	if table := doc.FindFirst(profileTables...); table != nil {
		for _, row := range table.Rows() {
			cs := row.HeaderAndCells()
			if len(cs) < 2 {
				continue
			}
			if set, ok := profileFields[cs[0].StrippedText()]; ok {
				set(&horse, cs[1])
			}
		}
	} else {
		e.log.Debug("Profile table not found", "horse_id", id)
	}

	horse.ApplyPedigree(bloodTableIDs(doc))
	horse.Profile.MainVictories = e.mainVictories(doc)
	if horse.Profile.CareerRecord == nil {
		if record := doc.Find("table", scraping.AttrEquals("summary", "競走成績")); record != nil {
			horse.Profile.CareerRecord = parser.CareerRecord(record.RawText())
		}
	}

	if horse.NameJa == "" {
		return horse, fmt.Errorf("%w: %s", errors.ErrHorseNameNotFound, id)
	}
	return horse, nil
}

func horseName(doc *scraping.Node) string {
	title := doc.FindFirst(
		func(d *scraping.Node) *scraping.Node { return d.Find("div", scraping.HasClass("horse_title")).Find("h1") },
		func(d *scraping.Node) *scraping.Node { return d.Find("h1") },
		func(d *scraping.Node) *scraping.Node { return d.Find("div", scraping.HasClass("horse_name")).Find("h1") },
	)
	return title.StrippedText()
}

// bloodTableIDs reads sire, dam and maternal grandsire out of rows 0, 2 and 3 of the blood table.
func bloodTableIDs(doc *scraping.Node) domain.PedigreeIDs {
	var ids domain.PedigreeIDs
	rows := doc.Find("table", scraping.HasClass("blood_table")).Rows()
	if len(rows) < 4 {
		return ids
	}
	_, ids.SireID = firstLink(rows[0], parser.PedigreeHorseID)
	_, ids.DamID = firstLink(rows[2], parser.PedigreeHorseID)
	_, ids.MaternalGrandsireID = firstLink(rows[3], parser.PedigreeHorseID)
	return ids
}

func (e *Extractor) mainVictories(doc *scraping.Node) []domain.Victory {
	var victories []domain.Victory
	for _, a := range doc.Find("div", scraping.HasClass("horse_result")).FindAll("a", scraping.HrefMatches(raceHrefRe)) {
		href := a.Attr("href")
		name := a.StrippedText()
		grade := e.keywords.VictoryGrade(name)
		if grade == "" {
			continue
		}
		victories = append(victories, domain.Victory{RaceName: name, RaceID: parser.RaceID(href), Grade: grade})
	}
	return victories
}

// Pedigree reads the direct relations of horseID out of a /horse/ped/<id>/ page.
// Cells spanning 16 rows are the parents, the one spanning 8 rows at row 16 is the maternal grandsire.
func (e *Extractor) Pedigree(doc *scraping.Node, horseID string) []domain.Relation {
	table := doc.FindFirst(
		func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.HasClass("blood_table_detail")) },
		func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.AttrEquals("summary", "5代血統表")) },
		func(d *scraping.Node) *scraping.Node { return d.Find("table", scraping.HasClass("blood_table")) },
	)
	if table == nil {
		e.log.Debug("Pedigree table not found", "horse_id", horseID)
		return nil
	}
	var relations []domain.Relation
	for index, row := range table.Rows() {
		for _, cell := range row.Cells() {
			_, ancestorID := firstLink(cell, parser.HorseID)
			if ancestorID == "" {
				continue
			}
			kind, ok := relationAt(index, cell.Attr("rowspan"))
			if !ok {
				continue
			}
			relations = append(relations, domain.Relation{HorseAID: ancestorID, HorseBID: horseID, Type: kind})
		}
	}
	return relations
}

func relationAt(row int, rowspan string) (domain.RelationType, bool) {
	span, err := strconv.Atoi(rowspan)
	if err != nil {
		span = 1
	}
	switch {
	case span == 16 && row == 0:
		return domain.RelationSireOf, true
	case span == 16 && row >= 16:
		return domain.RelationDamOf, true
	case span == 8 && row == 16:
		return domain.RelationBmsOf, true
	default:
		return "", false
	}
}

// HorseList reads the rows of a /horse/list.html page. Rows are recognised by their i-horse_ checkbox.
func (e *Extractor) HorseList(doc *scraping.Node) []domain.HorseSummary {
	var horses []domain.HorseSummary
	for _, row := range doc.FindAll("tr") {
		checkbox := row.Find("input", scraping.AttrEquals("type", "checkbox"), scraping.AttrContains("name", "i-horse_"))
		if checkbox == nil {
			continue
		}
		tds := cells(row.Cells())
		if len(tds) < 4 {
			continue
		}
		name, _, ok := tds.link(1)
		if !ok {
			continue
		}
		year, _, ok := tds.link(3)
		if !ok {
			continue
		}
		birthYear, err := strconv.Atoi(year)
		if err != nil {
			continue
		}
		horses = append(horses, domain.HorseSummary{
			ID:        checkbox.Attr("value"),
			NameJa:    name,
			Sex:       tds.text(2),
			BirthYear: birthYear,
		})
	}
	return horses
}
