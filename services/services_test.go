package services

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"stallion/extractor"
	"stallion/parser"
	"stallion/scraping"
)

func testLogger() *slog.Logger {
	return logs.GetLoggerFromLevel(slog.LevelDebug)
}

func newExtractor(t *testing.T) *extractor.Extractor {
	t.Helper()
	keywords, err := parser.NewKeywords()
	require.NoError(t, err)
	return extractor.New(keywords, testLogger())
}

func page(t *testing.T, html string) *scraping.Node {
	t.Helper()
	doc, err := scraping.ParseDocument([]byte(html))
	require.NoError(t, err)
	return doc
}

func horsePage(name string) string {
	return fmt.Sprintf(`<html><body><div class="horse_title"><h1>%s</h1><p class="txt_01">現役　牡4　青鹿毛</p></div></body></html>`, name)
}

// pedigreePage spans the parents over 16 rows and the maternal grandsire over 8, as the five generation table does.
func pedigreePage(sireID, damID, bmsID string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><table class="blood_table_detail">`)
	for row := 0; row < 32; row++ {
		switch row {
		case 0:
			fmt.Fprintf(&sb, `<tr><td rowspan="16"><a href="/horse/%s/">父</a></td></tr>`, sireID)
		case 16:
			fmt.Fprintf(&sb, `<tr><td rowspan="16"><a href="/horse/%s/">母</a></td><td rowspan="8"><a href="/horse/%s/">母父</a></td></tr>`, damID, bmsID)
		default:
			sb.WriteString("<tr></tr>")
		}
	}
	sb.WriteString("</table></body></html>")
	return sb.String()
}

type listedHorse struct {
	id        string
	name      string
	birthYear int
}

func horseListPage(horses ...listedHorse) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><table class="nk_tb_common race_table_01">`)
	for _, h := range horses {
		fmt.Fprintf(&sb, `<tr><td><input type="checkbox" name="i-horse_%[1]s" value="%[1]s"></td>`+
			`<td><a href="/horse/%[1]s/">%[2]s</a></td><td>牡</td><td><a href="/horse/list.html?year=%[3]d">%[3]d</a></td></tr>`,
			h.id, h.name, h.birthYear)
	}
	sb.WriteString("</table></body></html>")
	return sb.String()
}

type listedRace struct {
	id   string
	date string
	name string
}

func raceListPage(races ...listedRace) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><table class="nk_tb_common race_table_01" summary="レース検索結果">`)
	for _, r := range races {
		fmt.Fprintf(&sb, `<tr><td><a href="/race/list/">%s</a></td><td><a>2東京10</a></td><td>晴</td><td>11</td>`+
			`<td><a href="/race/%s/">%s</a></td><td></td><td>芝2400</td><td>18</td><td>良</td><td>2:23.7</td></tr>`,
			r.date, r.id, r.name)
	}
	sb.WriteString("</table></body></html>")
	return sb.String()
}

func raceDetailPage(name string) string {
	return `<html><body>
<dl class="racedata fc"><dt>11 R</dt><dd><h1>` + name + `</h1><p><span>芝左2400m / 天候 : 晴 / 芝 : 良 / 発走 : 15:40</span></p></dd></dl>
<p class="smalltxt">2025年06月01日 2回東京12日目</p>
<table class="race_table_01 nk_tb_common">
<tr><th>着順</th></tr>
<tr><td>1</td><td>7</td><td>13</td><td><a href="/horse/2022105081/">クロワデュノール</a></td><td>牡3</td><td>57</td>
<td><a href="/jockey/result/recent/01170/">北村友一</a></td><td>2:23.7</td><td></td><td>**</td><td>9-9-8-8</td><td>34.2</td><td>2.1</td><td>1</td><td>504(+2)</td></tr>
</table></body></html>`
}

func jockeyRankingPage(ids ...string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><table class="nk_tb_common race_table_01"><tr><th>騎手</th></tr><tr><th>1着</th></tr>`)
	for _, id := range ids {
		fmt.Fprintf(&sb, `<tr><td><a href="/jockey/%s/">騎手%s</a></td><td>[東]フリー</td><td>1979/05/20</td>%s</tr>`,
			id, id, strings.Repeat("<td>1</td>", 19))
	}
	sb.WriteString("</table></body></html>")
	return sb.String()
}
