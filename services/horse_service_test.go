package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stallion/domain"
	"stallion/errors"
	"stallion/mocks"
)

const (
	equinox  = "2019105219"
	kitasan  = "2011101125"
	shateau  = "2008105346"
	kingHalo = "1995103211"
)

type horseServiceMocks struct {
	source    *mocks.MockIDocumentSource
	horses    *mocks.MockIHorseRepository
	relations *mocks.MockIRelationRepository
	index     *mocks.MockIHorseIndex
}

func newHorseService(t *testing.T) (*HorseService, horseServiceMocks) {
	ctrl := gomock.NewController(t)
	m := horseServiceMocks{
		source:    mocks.NewMockIDocumentSource(ctrl),
		horses:    mocks.NewMockIHorseRepository(ctrl),
		relations: mocks.NewMockIRelationRepository(ctrl),
		index:     mocks.NewMockIHorseIndex(ctrl),
	}
	return NewHorseService(testLogger(), m.source, newExtractor(t), m.horses, m.relations, m.index), m
}

func (m horseServiceMocks) pages(t *testing.T) {
	m.source.EXPECT().Document(gomock.Any(), "/horse/"+equinox+"/", gomock.Nil()).Return(page(t, horsePage("イクイノックス")), nil)
	m.source.EXPECT().Document(gomock.Any(), "/horse/ped/"+equinox+"/", gomock.Nil()).Return(page(t, pedigreePage(kitasan, shateau, kingHalo)), nil)
}

func TestHorseService_Scrape_Creates_Mating(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	service, m := newHorseService(t)
	m.pages(t)

	var saved domain.Horse
	gomock.InOrder(
		m.horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h domain.Horse) error {
			saved = h
			return nil
		}),
		m.relations.EXPECT().SaveRelations(gomock.Any(), gomock.Len(3)).Return(3, nil),
		m.relations.EXPECT().FindMating(gomock.Any(), kitasan, shateau).Return(domain.Relation{}, false, nil),
		m.relations.EXPECT().SaveRelations(gomock.Any(), []domain.Relation{domain.NewMating(kitasan, shateau, equinox)}).Return(1, nil),
		m.index.EXPECT().Index(gomock.Any()).Return(nil),
	)

	horse, err := service.Scrape(ctx, equinox)
	req.NoError(err)
	req.Equal("イクイノックス", horse.NameJa)
	req.Equal(domain.SexStallion, saved.Sex)
	req.Equal(domain.PedigreeIDs{SireID: kitasan, DamID: shateau, MaternalGrandsireID: kingHalo}, saved.Pedigree())
}

func TestHorseService_Scrape_Appends_Child_To_Known_Mating(t *testing.T) {
	req := require.New(t)
	service, m := newHorseService(t)
	m.pages(t)

	m.horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).Return(nil)
	m.relations.EXPECT().SaveRelations(gomock.Any(), gomock.Len(3)).Return(0, nil)
	// Stored the other way round by an earlier run
	m.relations.EXPECT().FindMating(gomock.Any(), kitasan, shateau).
		Return(domain.Relation{ID: 7, HorseAID: shateau, HorseBID: kitasan, Type: domain.RelationMating, ChildrenIDs: []string{"2017105000"}}, true, nil)
	m.relations.EXPECT().AddChild(gomock.Any(), int64(7), equinox).Return(nil)
	m.index.EXPECT().Index(gomock.Any()).Return(nil)

	_, err := service.Scrape(context.Background(), equinox)
	req.NoError(err)
}

func TestHorseService_Scrape_Mating_Inserted_Meanwhile(t *testing.T) {
	req := require.New(t)
	service, m := newHorseService(t)
	m.pages(t)

	m.horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).Return(nil)
	m.relations.EXPECT().SaveRelations(gomock.Any(), gomock.Len(3)).Return(3, nil)
	gomock.InOrder(
		m.relations.EXPECT().FindMating(gomock.Any(), kitasan, shateau).Return(domain.Relation{}, false, nil),
		// Another host stored the same mating between the lookup and the insert
		m.relations.EXPECT().SaveRelations(gomock.Any(), []domain.Relation{domain.NewMating(kitasan, shateau, equinox)}).Return(0, nil),
		m.relations.EXPECT().FindMating(gomock.Any(), kitasan, shateau).
			Return(domain.Relation{ID: 9, HorseAID: kitasan, HorseBID: shateau, Type: domain.RelationMating, ChildrenIDs: []string{"2017105000"}}, true, nil),
		m.relations.EXPECT().AddChild(gomock.Any(), int64(9), equinox).Return(nil),
	)
	m.index.EXPECT().Index(gomock.Any()).Return(nil)

	_, err := service.Scrape(context.Background(), equinox)
	req.NoError(err)
}

// memoryRelations checks then inserts like the PostgREST backend, with a pause after every lookup
// to leave room for a concurrent writer.
type memoryRelations struct {
	mu        sync.Mutex
	relations []domain.Relation
}

func (r *memoryRelations) SaveRelations(_ context.Context, relations []domain.Relation) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inserted := 0
	for _, relation := range relations {
		if slices.ContainsFunc(r.relations, func(stored domain.Relation) bool {
			return stored.HorseAID == relation.HorseAID && stored.HorseBID == relation.HorseBID && stored.Type == relation.Type
		}) {
			continue
		}
		relation.ID = int64(len(r.relations) + 1)
		r.relations = append(r.relations, relation)
		inserted++
	}
	return inserted, nil
}

func (r *memoryRelations) FindMating(_ context.Context, sireID, damID string) (domain.Relation, bool, error) {
	defer time.Sleep(20 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, relation := range r.relations {
		if relation.Type == domain.RelationMating && relation.Pairs(sireID, damID) {
			relation.ChildrenIDs = slices.Clone(relation.ChildrenIDs)
			return relation, true, nil
		}
	}
	return domain.Relation{}, false, nil
}

func (r *memoryRelations) AddChild(_ context.Context, relationID int64, childID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, relation := range r.relations {
		if relation.ID == relationID {
			r.relations[i], _ = relation.WithChild(childID)
			return nil
		}
	}
	return errors.ErrRelationNotFound
}

func (r *memoryRelations) matings() []domain.Relation {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Relation
	for _, relation := range r.relations {
		if relation.Type == domain.RelationMating {
			out = append(out, relation)
		}
	}
	return out
}

func TestHorseService_Concurrent_Siblings_Share_One_Mating(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	source := mocks.NewMockIDocumentSource(ctrl)
	horses := mocks.NewMockIHorseRepository(ctrl)
	relations := &memoryRelations{}
	service := NewHorseService(testLogger(), source, newExtractor(t), horses, relations, nil)

	const sibling = "2017105000"
	for _, id := range []string{equinox, sibling} {
		source.EXPECT().Document(gomock.Any(), "/horse/"+id+"/", gomock.Nil()).Return(page(t, horsePage("馬"+id)), nil)
		source.EXPECT().Document(gomock.Any(), "/horse/ped/"+id+"/", gomock.Nil()).Return(page(t, pedigreePage(kitasan, shateau, kingHalo)), nil)
	}
	horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, id := range []string{equinox, sibling} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = service.Scrape(context.Background(), id)
		}()
	}
	wg.Wait()

	req.NoError(errors.Join(errs...))
	matings := relations.matings()
	req.Len(matings, 1)
	req.ElementsMatch([]string{equinox, sibling}, matings[0].ChildrenIDs)
}

func TestHorseService_Scrape_Twice_Keeps_Children(t *testing.T) {
	req := require.New(t)
	service, m := newHorseService(t)
	m.pages(t)

	m.horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).Return(nil)
	m.relations.EXPECT().SaveRelations(gomock.Any(), gomock.Len(3)).Return(0, nil)
	m.relations.EXPECT().FindMating(gomock.Any(), kitasan, shateau).
		Return(domain.Relation{ID: 7, HorseAID: kitasan, HorseBID: shateau, Type: domain.RelationMating, ChildrenIDs: []string{equinox}}, true, nil)
	m.index.EXPECT().Index(gomock.Any()).Return(nil)

	_, err := service.Scrape(context.Background(), equinox)
	req.NoError(err)
}

func TestHorseService_Scrape_Without_Pedigree_Page(t *testing.T) {
	req := require.New(t)
	service, m := newHorseService(t)

	m.source.EXPECT().Document(gomock.Any(), "/horse/"+equinox+"/", gomock.Nil()).Return(page(t, horsePage("イクイノックス")), nil)
	m.source.EXPECT().Document(gomock.Any(), "/horse/ped/"+equinox+"/", gomock.Nil()).Return(nil, errors.ErrUnexpectedStatus)
	m.horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).Return(nil)
	m.index.EXPECT().Index(gomock.Any()).Return(fmt.Errorf("index closed"))

	// No parents known: neither relations nor mating are written
	horse, err := service.Scrape(context.Background(), equinox)
	req.NoError(err)
	req.Empty(horse.SireID)
}

func TestHorseService_Scrape_Errors(t *testing.T) {
	t.Run("detail page unavailable", func(t *testing.T) {
		service, m := newHorseService(t)
		m.source.EXPECT().Document(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.ErrUnexpectedStatus)

		_, err := service.Scrape(context.Background(), equinox)
		require.ErrorIs(t, err, errors.ErrUnexpectedStatus)
	})
	t.Run("page without name", func(t *testing.T) {
		service, m := newHorseService(t)
		m.source.EXPECT().Document(gomock.Any(), gomock.Any(), gomock.Any()).Return(page(t, "<html><body></body></html>"), nil)

		_, err := service.Scrape(context.Background(), equinox)
		require.ErrorIs(t, err, errors.ErrHorseNameNotFound)
	})
	t.Run("horse not saved", func(t *testing.T) {
		service, m := newHorseService(t)
		m.pages(t)
		m.horses.EXPECT().SaveHorse(gomock.Any(), gomock.Any()).Return(errors.ErrRequestFailed)

		_, err := service.Scrape(context.Background(), equinox)
		require.ErrorIs(t, err, errors.ErrRequestFailed)
	})
}
