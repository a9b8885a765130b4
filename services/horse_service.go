package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"stallion/contract"
	"stallion/domain"
	"stallion/extractor"
	"stallion/repositories"
)

var _ contract.IHorseScraper = (*HorseService)(nil)

func horsePath(id string) string    { return "/horse/" + id + "/" }
func pedigreePath(id string) string { return "/horse/ped/" + id + "/" }

// HorseService scrapes a horse with its pedigree and stores both.
type HorseService struct {
	log       *slog.Logger
	source    IDocumentSource
	extractor *extractor.Extractor
	horses    repositories.IHorseRepository
	relations repositories.IRelationRepository
	index     repositories.IHorseIndex
	matings   pairLocks
}

// pairLocks holds one mutex per sire and dam pair, whatever the order the pair is given in.
type pairLocks struct {
	locks sync.Map
}

func (p *pairLocks) lock(a, b string) func() {
	if b < a {
		a, b = b, a
	}
	v, _ := p.locks.LoadOrStore(a+"|"+b, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// NewHorseService builds the service. index may be nil when search is not configured.
func NewHorseService(
	log *slog.Logger,
	source IDocumentSource,
	extractor *extractor.Extractor,
	horses repositories.IHorseRepository,
	relations repositories.IRelationRepository,
	index repositories.IHorseIndex,
) *HorseService {
	return &HorseService{
		log:       log,
		source:    source,
		extractor: extractor,
		horses:    horses,
		relations: relations,
		index:     index,
	}
}

// Scrape reads the detail and pedigree pages of a horse, then stores the horse, its pedigree relations
// and the mating of its parents. The pedigree page is optional: without it the profile links are kept.
func (s *HorseService) Scrape(ctx context.Context, id string) (domain.Horse, error) {
	doc, err := s.source.Document(ctx, horsePath(id), nil)
	if err != nil {
		return domain.Horse{}, fmt.Errorf("horse page %s: %w", id, err)
	}
	horse, err := s.extractor.HorseDetail(doc, id)
	if err != nil {
		return domain.Horse{}, fmt.Errorf("horse %s: %w", id, err)
	}

	relations, err := s.Pedigree(ctx, id)
	if err != nil {
		s.log.Warn("Pedigree page unavailable, keeping profile links", "horse_id", id, "error", err)
	}
	horse.ApplyPedigree(domain.PedigreeFromRelations(relations, id))
	if err := domain.ValidateHorse(horse); err != nil {
		return domain.Horse{}, fmt.Errorf("horse %s: %w", id, err)
	}

	if err := s.horses.SaveHorse(ctx, horse); err != nil {
		return domain.Horse{}, fmt.Errorf("save horse %s: %w", id, err)
	}
	if len(relations) > 0 {
		saved, err := s.relations.SaveRelations(ctx, relations)
		if err != nil {
			return horse, fmt.Errorf("save relations of %s: %w", id, err)
		}
		s.log.Debug("Pedigree relations stored", "horse_id", id, "found", len(relations), "saved", saved)
	}
	if err := s.mating(ctx, horse); err != nil {
		return horse, fmt.Errorf("mating of %s: %w", id, err)
	}

	if s.index != nil {
		if err := s.index.Index(horse); err != nil {
			s.log.Warn("Unable to index horse", "horse_id", id, "error", err)
		}
	}
	s.log.Info("Horse stored", "horse_id", id, "name", horse.DisplayName(),
		"sire_id", horse.SireID, "dam_id", horse.DamID)
	return horse, nil
}

// Pedigree reads the direct relations of a horse out of its pedigree page.
func (s *HorseService) Pedigree(ctx context.Context, id string) ([]domain.Relation, error) {
	doc, err := s.source.Document(ctx, pedigreePath(id), nil)
	if err != nil {
		return nil, err
	}
	return s.extractor.Pedigree(doc, id), nil
}

// mating records horse as a foal of its sire and dam. Scraping the same horse twice changes nothing.
// Siblings scraped by concurrent workers are serialised on their parents so that neither the mating row
// nor a child is lost.
func (s *HorseService) mating(ctx context.Context, horse domain.Horse) error {
	if horse.SireID == "" || horse.DamID == "" {
		return nil
	}
	unlock := s.matings.lock(horse.SireID, horse.DamID)
	defer unlock()

	stored, found, err := s.relations.FindMating(ctx, horse.SireID, horse.DamID)
	if err != nil {
		return err
	}
	if !found {
		inserted, err := s.relations.SaveRelations(ctx, []domain.Relation{domain.NewMating(horse.SireID, horse.DamID, horse.ID)})
		if err != nil || inserted > 0 {
			return err
		}
		// Inserted meanwhile by another process
		stored, found, err = s.relations.FindMating(ctx, horse.SireID, horse.DamID)
		if err != nil || !found {
			return err
		}
	}
	if _, added := stored.WithChild(horse.ID); !added {
		return nil
	}
	return s.relations.AddChild(ctx, stored.ID, horse.ID)
}
