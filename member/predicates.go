package member

import "github.com/nrfta/filterpage-go/predicate"

// BuildPredicates returns one predicate per present field of cond, in the
// order username, team name, minimum age, maximum age. Blank strings count
// as absent. Inconsistent bounds (AgeGoe > AgeLoe) are passed through and
// match nothing.
func BuildPredicates(cond SearchCondition) []predicate.Predicate {
	return predicate.Collect(
		predicate.TextEq(MemberUsername, cond.Username),
		predicate.TextEq(TeamName, cond.TeamName),
		predicate.IntGte(MemberAge, cond.AgeGoe),
		predicate.IntLte(MemberAge, cond.AgeLoe),
	)
}
