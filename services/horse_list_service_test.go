package services

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stallion/domain"
	"stallion/errors"
	"stallion/mocks"
	"stallion/scraping"
)

func pageQuery(page string) scraping.Query {
	return scraping.Query{}.Add("grade[]", "4").Add("sort", "age-desc").Add("limit", "100").Add("page", page)
}

func TestHorseListService_G1Horses(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIDocumentSource(ctrl)
	service := NewHorseListService(testLogger(), source, newExtractor(t))

	first := make([]listedHorse, 0, 100)
	for i := range 100 {
		first = append(first, listedHorse{id: "20211" + string(rune('0'+i/10)) + string(rune('0'+i%10)), name: "馬", birthYear: 2021})
	}
	gomock.InOrder(
		source.EXPECT().Document(gomock.Any(), "/horse/list.html", pageQuery("2")).Return(page(t, horseListPage(first...)), nil),
		source.EXPECT().Document(gomock.Any(), "/horse/list.html", pageQuery("3")).Return(page(t, horseListPage(
			listedHorse{id: "2020105000", name: "リバティアイランド", birthYear: 2020},
			listedHorse{id: "2019105219", name: "イクイノックス", birthYear: 2019},
			listedHorse{id: "2018105000", name: "古馬", birthYear: 2018},
		)), nil),
	)

	// Offset 198 starts at the 99th horse of the second page
	horses, err := service.G1Horses(context.Background(), ListQuery{Offset: 198, Max: 10, MinBirthYear: 2019})
	req.NoError(err)
	req.Len(horses, 4)
	req.Equal("2021198", horses[0].ID)
	req.Equal("2021199", horses[1].ID)
	req.Equal("リバティアイランド", horses[2].NameJa)
	req.Equal(2019, horses[3].BirthYear)
}

func TestHorseListService_G1Horses_Stops_At_Max(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIDocumentSource(ctrl)
	service := NewHorseListService(testLogger(), source, newExtractor(t))

	source.EXPECT().Document(gomock.Any(), "/horse/list.html", pageQuery("1")).Return(page(t, horseListPage(
		listedHorse{id: "a1", name: "一", birthYear: 2022},
		listedHorse{id: "a2", name: "二", birthYear: 2022},
		listedHorse{id: "a3", name: "三", birthYear: 2022},
	)), nil)

	horses, err := service.G1Horses(context.Background(), ListQuery{Max: 2, MinBirthYear: 2015})
	req.NoError(err)
	req.Len(horses, 2)
}

func TestHorseListService_G1Horses_Skips_Horse_Listed_Twice(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIDocumentSource(ctrl)
	service := NewHorseListService(testLogger(), source, newExtractor(t))

	first := make([]listedHorse, 0, 100)
	for i := range 100 {
		first = append(first, listedHorse{id: "20221" + string(rune('0'+i/10)) + string(rune('0'+i%10)), name: "馬", birthYear: 2022})
	}
	// A new winner pushed the last horse of page 1 onto page 2
	gomock.InOrder(
		source.EXPECT().Document(gomock.Any(), "/horse/list.html", pageQuery("1")).Return(page(t, horseListPage(first...)), nil),
		source.EXPECT().Document(gomock.Any(), "/horse/list.html", pageQuery("2")).Return(page(t, horseListPage(
			listedHorse{id: "2022199", name: "馬", birthYear: 2022},
			listedHorse{id: "2021105000", name: "新顔", birthYear: 2021},
		)), nil),
	)

	horses, err := service.G1Horses(context.Background(), ListQuery{Max: 101, MinBirthYear: 2015})
	req.NoError(err)
	req.Len(horses, 101)
	req.Len(lo.UniqBy(horses, func(h domain.HorseSummary) string { return h.ID }), 101)
	req.Equal("2021105000", horses[100].ID)
}

func TestHorseListService_G1Horses_Stops_On_Empty_Page(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIDocumentSource(ctrl)
	service := NewHorseListService(testLogger(), source, newExtractor(t))

	gomock.InOrder(
		source.EXPECT().Document(gomock.Any(), gomock.Any(), pageQuery("1")).Return(page(t, horseListPage(listedHorse{id: "a1", name: "一", birthYear: 2022})), nil),
		source.EXPECT().Document(gomock.Any(), gomock.Any(), pageQuery("2")).Return(page(t, horseListPage()), nil),
	)

	horses, err := service.G1Horses(context.Background(), ListQuery{MinBirthYear: 2015})
	req.NoError(err)
	req.Len(horses, 1)
}

func TestHorseListService_G1Horses_Page_Error(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIDocumentSource(ctrl)
	service := NewHorseListService(testLogger(), source, newExtractor(t))

	source.EXPECT().Document(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.ErrNotHTML)

	_, err := service.G1Horses(context.Background(), ListQuery{Max: 5})
	req.ErrorIs(err, errors.ErrNotHTML)
}
