package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelation_WithChild_AppendsOnlyOnce(t *testing.T) {
	req := require.New(t)
	mating := NewMating("sire", "dam", "foal1")

	updated, added := mating.WithChild("foal2")
	req.True(added)
	req.Equal([]string{"foal1", "foal2"}, updated.ChildrenIDs)
	// The original relation is not mutated
	req.Equal([]string{"foal1"}, mating.ChildrenIDs)

	again, added := updated.WithChild("foal2")
	req.False(added)
	req.Equal(updated, again)
}

func TestRelation_Pairs_IgnoresDirection(t *testing.T) {
	req := require.New(t)
	mating := NewMating("sire", "dam", "foal")

	req.True(mating.Pairs("sire", "dam"))
	req.True(mating.Pairs("dam", "sire"))
	req.False(mating.Pairs("sire", "other"))
}

func TestPedigreeFromRelations(t *testing.T) {
	req := require.New(t)
	relations := []Relation{
		{HorseAID: "s1", HorseBID: "h1", Type: RelationSireOf},
		{HorseAID: "d1", HorseBID: "h1", Type: RelationDamOf},
		{HorseAID: "b1", HorseBID: "h1", Type: RelationBmsOf},
		{HorseAID: "s2", HorseBID: "other", Type: RelationSireOf},
		{HorseAID: "s1", HorseBID: "d1", Type: RelationMating},
	}

	ids := PedigreeFromRelations(relations, "h1")
	req.Equal(PedigreeIDs{SireID: "s1", DamID: "d1", MaternalGrandsireID: "b1"}, ids)
}

func TestHorse_ApplyPedigree_KeepsExistingWhenEmpty(t *testing.T) {
	req := require.New(t)
	horse := Horse{ID: "h1", SireID: "old-sire", DamID: "old-dam"}

	horse.ApplyPedigree(PedigreeIDs{SireID: "new-sire", MaternalGrandsireID: "bms"})

	req.Equal("new-sire", horse.SireID)
	req.Equal("old-dam", horse.DamID)
	req.Equal("bms", horse.MaternalGrandsireID)
}
