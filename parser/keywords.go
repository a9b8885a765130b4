package parser

import (
	"fmt"

	goahocorasick "github.com/anknown/ahocorasick"
)

// Rule attaches a label to a set of keywords. Rules are ordered by priority, the first one wins.
type Rule struct {
	Label    string
	Keywords []string
}

// Classifier labels a text according to the keywords it contains, using a single Aho-Corasick pass.
type Classifier struct {
	matcher  *goahocorasick.Machine
	labels   map[string]int
	rules    []Rule
	fallback string
}

// NewClassifier builds the automaton out of every keyword of rules.
// A keyword listed under several rules belongs to the first one.
func NewClassifier(rules []Rule, fallback string) (Classifier, error) {
	labels := make(map[string]int)
	var patterns [][]rune
	for i, rule := range rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if _, ok := labels[keyword]; ok {
				continue
			}
			labels[keyword] = i
			patterns = append(patterns, []rune(keyword))
		}
	}
	if len(patterns) == 0 {
		return Classifier{}, fmt.Errorf("classifier needs at least one keyword")
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Classifier{}, err
	}
	return Classifier{matcher: m, labels: labels, rules: rules, fallback: fallback}, nil
}

// Classify returns the label of the highest priority rule matching text, or the fallback.
func (c Classifier) Classify(text string) string {
	best := c.bestRule(text)
	if best < 0 {
		return c.fallback
	}
	return c.rules[best].Label
}

// Matched lists the keywords found in text, in order of appearance.
func (c Classifier) Matched(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 || c.matcher == nil {
		return nil
	}
	spans := c.matcher.MultiPatternSearch(runes, false)
	words := make([]string, 0, len(spans))
	for _, span := range spans {
		words = append(words, string(span.Word))
	}
	return words
}

func (c Classifier) bestRule(text string) int {
	best := -1
	for _, word := range c.Matched(text) {
		idx, ok := c.labels[word]
		if !ok {
			continue
		}
		if best < 0 || idx < best {
			best = idx
		}
	}
	return best
}

const (
	OwnerPartnership = "partnership"
	OwnerCorporation = "corporation"
	OwnerIndividual  = "individual"

	BreederFarm        = "farm"
	BreederCorporation = "corporation"
	BreederIndividual  = "individual"

	DefaultLocation = "北海道"
)

var corporateSuffixes = []string{"株式会社", "有限会社", "合同会社", "合名会社", "合資会社", "ホールディングス"}

// Keywords gathers the classifiers used while reading ranking tables and horse profiles.
type Keywords struct {
	Owner    Classifier
	Breeder  Classifier
	Location Classifier
	Grade    Classifier
}

func NewKeywords() (*Keywords, error) {
	owner, err := NewClassifier([]Rule{
		{Label: OwnerPartnership, Keywords: []string{"組合", "事業組合", "競走馬組合"}},
		{Label: OwnerCorporation, Keywords: append(append([]string{}, corporateSuffixes...), "レーシング", "ファーム", "クラブ")},
	}, OwnerIndividual)
	if err != nil {
		return nil, fmt.Errorf("owner keywords: %w", err)
	}
	breeder, err := NewClassifier([]Rule{
		{Label: BreederFarm, Keywords: []string{"ファーム", "ステーション", "牧場", "スタッド", "レーシング", "ブリーディング", "ホース"}},
		{Label: BreederCorporation, Keywords: append(append([]string{}, corporateSuffixes...), "事業組合", "組合")},
	}, BreederIndividual)
	if err != nil {
		return nil, fmt.Errorf("breeder keywords: %w", err)
	}
	location, err := NewClassifier([]Rule{
		{Label: "北海道", Keywords: []string{"日高", "新冠", "新ひだか", "浦河", "静内", "門別", "千歳", "札幌", "函館"}},
		{Label: "栃木県", Keywords: []string{"栃木"}},
		{Label: "宮崎県", Keywords: []string{"宮崎"}},
		{Label: "熊本県", Keywords: []string{"熊本"}},
	}, DefaultLocation)
	if err != nil {
		return nil, fmt.Errorf("location keywords: %w", err)
	}
	// GIII contains GII and GI, so the narrower grades are listed first.
	grade, err := NewClassifier([]Rule{
		{Label: "G3", Keywords: []string{"GIII", "G3", "JpnIII", "Jpn3"}},
		{Label: "G2", Keywords: []string{"GII", "G2", "JpnII", "Jpn2"}},
		{Label: "G1", Keywords: []string{"GI", "G1", "JpnI", "Jpn1"}},
		{Label: "OP", Keywords: []string{"OP"}},
		{Label: "L", Keywords: []string{"(L)"}},
	}, "")
	if err != nil {
		return nil, fmt.Errorf("grade keywords: %w", err)
	}
	return &Keywords{Owner: owner, Breeder: breeder, Location: location, Grade: grade}, nil
}

func (k *Keywords) OwnerType(name string) string {
	return k.Owner.Classify(name)
}

func (k *Keywords) BreederType(name string) string {
	return k.Breeder.Classify(name)
}

func (k *Keywords) BreederLocation(name string) string {
	return k.Location.Classify(name)
}

// VictoryGrade returns the grade of a race name, empty for ungraded races.
func (k *Keywords) VictoryGrade(raceName string) string {
	return k.Grade.Classify(raceName)
}
