package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPrize(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"17億5,655万円", 175655},
		{"1,234万円", 1234},
		{"0万円", 0},
		{"-", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, Prize(tt.input))
		})
	}
}

func TestCareerRecord(t *testing.T) {
	req := require.New(t)

	record := CareerRecord("10戦8勝 [8-2-0-0]")
	req.NotNil(record)
	req.Equal(10, record.Starts)
	req.Equal(8, record.Wins)
	req.Equal(80.0, record.WinRate)
	req.Equal(8, *record.First)
	req.Equal(2, *record.Second)
	req.Equal(0, *record.Third)
	req.Equal(0, *record.Others)

	partial := CareerRecord("3戦1勝")
	req.NotNil(partial)
	req.Equal(33.3, partial.WinRate)
	req.Nil(partial.First)

	req.Nil(CareerRecord("未出走"))
}

func TestOffering(t *testing.T) {
	req := require.New(t)

	offering := Offering("1口:8万円/500口")
	req.NotNil(offering)
	req.Equal(8, *offering.PricePerUnit)
	req.Equal(500, *offering.TotalUnits)
	req.Equal("1口:8万円/500口", offering.RawText)

	raw := Offering("募集なし")
	req.NotNil(raw)
	req.Nil(raw.PricePerUnit)
	req.Equal("募集なし", raw.RawText)

	req.Nil(Offering("-"))
	req.Nil(Offering(""))
}

func TestJapaneseDate(t *testing.T) {
	req := require.New(t)
	date, ok := JapaneseDate("2019年3月23日")
	req.True(ok)
	req.Equal(time.Date(2019, time.March, 23, 0, 0, 0, 0, time.UTC), date)

	_, ok = JapaneseDate("unknown")
	req.False(ok)
}

func TestHorseID(t *testing.T) {
	req := require.New(t)
	req.Equal("2019105219", HorseID("/horse/2019105219/"))
	req.Equal("000a00e2a2", HorseID("https://db.netkeiba.com/horse/000a00e2a2/"))
	req.Empty(HorseID("/horse/ped/2019105219/"))
	req.Equal("2019105219", PedigreeHorseID("/horse/ped/2019105219/"))

	link := HorseLink("/horse/2002100816/", " ディープインパクト ")
	req.Equal("2002100816", link.ID)
	req.Equal("ディープインパクト", link.Name)
	req.Nil(HorseLink("/race/202505021011/", "x"))
}

func TestLooseNumbers(t *testing.T) {
	req := require.New(t)
	req.Equal(1234, LooseInt("1,234"))
	req.Equal(0, LooseInt(""))
	req.Equal(12.5, LooseDecimal("12.5%"))
	req.Equal(0.0, LooseDecimal("-"))
	req.Nil(Int("取消"))
	req.Equal(56.5, *Decimal("56.5"))
}

func TestSex(t *testing.T) {
	req := require.New(t)
	req.Equal("stallion", string(Sex("現役　牡4歳　鹿毛")))
	req.Equal("mare", string(Sex("抹消　牝5歳　黒鹿毛")))
	req.Equal("gelding", string(Sex("現役　せん6歳　栗毛")))
	req.Empty(Sex("不明"))
}
