package domain

import "slices"

type RelationType string

const (
	RelationSireOf RelationType = "sire_of"
	RelationDamOf  RelationType = "dam_of"
	RelationBmsOf  RelationType = "bms_of"
	RelationMating RelationType = "mating"
)

// Relation links two horses. For sire_of, dam_of and bms_of HorseA is the ancestor
// and HorseB the descendant. For mating HorseA is the sire, HorseB the dam and
// ChildrenIDs lists every known foal of the pair.
type Relation struct {
	ID          int64
	HorseAID    string
	HorseBID    string
	Type        RelationType
	ChildrenIDs []string
}

func NewMating(sireID, damID, childID string) Relation {
	return Relation{
		HorseAID:    sireID,
		HorseBID:    damID,
		Type:        RelationMating,
		ChildrenIDs: []string{childID},
	}
}

// WithChild returns the relation with childID appended to its children.
// The boolean is false when the child was already known, in which case r is returned untouched.
func (r Relation) WithChild(childID string) (Relation, bool) {
	if slices.Contains(r.ChildrenIDs, childID) {
		return r, false
	}
	children := make([]string, 0, len(r.ChildrenIDs)+1)
	children = append(children, r.ChildrenIDs...)
	r.ChildrenIDs = append(children, childID)
	return r, true
}

// Pairs reports whether the mating relation joins a and b, whatever the direction it was stored in.
func (r Relation) Pairs(a, b string) bool {
	return (r.HorseAID == a && r.HorseBID == b) || (r.HorseAID == b && r.HorseBID == a)
}

// PedigreeFromRelations collects the direct pedigree of horseID out of its relations.
// A later relation of the same type wins.
func PedigreeFromRelations(relations []Relation, horseID string) PedigreeIDs {
	var ids PedigreeIDs
	for _, relation := range relations {
		if relation.HorseBID != horseID {
			continue
		}
		switch relation.Type {
		case RelationSireOf:
			ids.SireID = relation.HorseAID
		case RelationDamOf:
			ids.DamID = relation.HorseAID
		case RelationBmsOf:
			ids.MaternalGrandsireID = relation.HorseAID
		}
	}
	return ids
}
