package member

import (
	"github.com/nrfta/filterpage-go/predicate"
	"github.com/nrfta/filterpage-go/query"
)

// Table names.
const (
	MemberTable = "member"
	TeamTable   = "team"
)

// Columns used by member searches.
var (
	MemberID       = predicate.NewField(MemberTable, "id")
	MemberUsername = predicate.NewField(MemberTable, "username")
	MemberAge      = predicate.NewField(MemberTable, "age")
	MemberTeamID   = predicate.NewField(MemberTable, "team_id")
	TeamID         = predicate.NewField(TeamTable, "id")
	TeamName       = predicate.NewField(TeamTable, "name")
)

// Graph is member LEFT JOIN team: every member row is kept, with at most
// one team per member.
var Graph = query.Graph{
	Root: MemberTable,
	Joins: []query.Join{
		{
			Kind:        query.LeftOuterJoin,
			Table:       TeamTable,
			Left:        MemberTeamID,
			Right:       TeamID,
			Cardinality: query.ToOne,
		},
	},
}

// Projection aliases; they match the boil tags of RawRow.
const (
	AliasMemberID = "member_id"
	AliasUsername = "username"
	AliasAge      = "age"
	AliasTeamID   = "team_id"
	AliasTeamName = "team_name"
)

// Projection is the flat member/team output shape.
var Projection = query.Projection{
	{Field: MemberID, Alias: AliasMemberID},
	{Field: MemberUsername, Alias: AliasUsername},
	{Field: MemberAge, Alias: AliasAge},
	{Field: TeamID, Alias: AliasTeamID},
	{Field: TeamName, Alias: AliasTeamName},
}
