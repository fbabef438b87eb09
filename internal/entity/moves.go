package entity

import "github.com/samdwyer/critterquest/internal/gamedata"

// SpeciesLookup resolves species definitions by ID.
type SpeciesLookup interface {
	GetByID(id string) *gamedata.SpeciesDef
}

// MoveLookup resolves move definitions by ID.
type MoveLookup interface {
	GetByID(id string) *gamedata.MoveDef
}

// BuildMoves turns move IDs into learned moves, keeping at most MaxMoves and
// skipping duplicates. Unknown IDs are kept with zero uses so the owner still
// "knows" them; selecting one forfeits the turn.
func BuildMoves(ids []string, moves MoveLookup) []LearnedMove {
	out := make([]LearnedMove, 0, MaxMoves)
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] || len(out) >= MaxMoves {
			continue
		}
		seen[id] = true
		if def := moves.GetByID(id); def != nil {
			out = append(out, NewLearnedMove(def))
		} else {
			out = append(out, LearnedMove{MoveID: id})
		}
	}
	return out
}

// LastN returns the trailing n IDs of a list.
func LastN(ids []string, n int) []string {
	if len(ids) <= n {
		return ids
	}
	return ids[len(ids)-n:]
}
