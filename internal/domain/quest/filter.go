package quest

// Predicate is a pure test over a quest. Predicates never touch the network
// and can be combined freely.
type Predicate func(Quest) bool

// Filter keeps the quests matching every predicate, order preserved.
func Filter(quests []Quest, preds ...Predicate) []Quest {
	out := make([]Quest, 0, len(quests))
	for _, q := range quests {
		if All(preds...)(q) {
			out = append(out, q)
		}
	}
	return out
}

// All combines predicates with logical AND.
func All(preds ...Predicate) Predicate {
	return func(q Quest) bool {
		for _, p := range preds {
			if !p(q) {
				return false
			}
		}
		return true
	}
}

// Unlocked matches claim-eligible quests.
func Unlocked(q Quest) bool {
	return q.Eligible()
}

// OfType matches quests whose submission type is one of types.
func OfType(types ...SubmissionType) Predicate {
	set := make(map[SubmissionType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(q Quest) bool {
		_, ok := set[q.SubmissionType]
		return ok
	}
}

// GrantsRole matches quests rewarding a role in either of the first two reward slots.
func GrantsRole(q Quest) bool {
	for i, r := range q.Rewards {
		if i > 1 {
			break
		}
		if r.Type == RewardRole {
			return true
		}
	}
	return false
}

// AutoValidates matches quests validated without manual review.
func AutoValidates(q Quest) bool {
	return q.AutoValidate
}

// Flatten turns a quest board into one sequence: theme order, then in-theme
// order. Soft-deleted themes and quests are dropped.
func Flatten(board []Theme) []Quest {
	var out []Quest
	for _, theme := range board {
		if theme.Deleted {
			continue
		}
		for _, q := range theme.Quests {
			if q.Deleted {
				continue
			}
			out = append(out, q)
		}
	}
	return out
}
