package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeywords_Classification(t *testing.T) {
	req := require.New(t)
	keywords, err := NewKeywords()
	req.NoError(err)

	// Partnership keywords are checked before corporate ones
	req.Equal(OwnerPartnership, keywords.OwnerType("有限会社シルク競走馬組合"))
	req.Equal(OwnerCorporation, keywords.OwnerType("サンデーレーシング"))
	req.Equal(OwnerIndividual, keywords.OwnerType("前田幸治"))

	req.Equal(BreederFarm, keywords.BreederType("ノーザンファーム"))
	req.Equal(BreederCorporation, keywords.BreederType("株式会社ダーレー"))
	req.Equal(BreederIndividual, keywords.BreederType("山田太郎"))

	req.Equal("北海道", keywords.BreederLocation("新ひだか町生産者"))
	req.Equal("宮崎県", keywords.BreederLocation("宮崎牧場"))
	req.Equal(DefaultLocation, keywords.BreederLocation("社台ファーム"))
}

func TestKeywords_VictoryGrade(t *testing.T) {
	req := require.New(t)
	keywords, err := NewKeywords()
	req.NoError(err)

	req.Equal("G1", keywords.VictoryGrade("日本ダービー(GI)"))
	req.Equal("G2", keywords.VictoryGrade("京都大賞典(GII)"))
	req.Equal("G3", keywords.VictoryGrade("函館スプリントS(GIII)"))
	req.Equal("G1", keywords.VictoryGrade("天皇賞(秋)(G1)"))
	req.Equal("L", keywords.VictoryGrade("メイS(L)"))
	req.Empty(keywords.VictoryGrade("3歳未勝利"))
}

func TestClassifier_NeedsKeywords(t *testing.T) {
	_, err := NewClassifier([]Rule{{Label: "x"}}, "")
	require.Error(t, err)
}
