package member

import "github.com/aarondl/null/v8"

// SearchCondition is the optional filter set of a member search. Every field
// is independently present or absent; absent fields do not constrain the
// result.
type SearchCondition struct {
	Username null.String `json:"username"`
	TeamName null.String `json:"teamName"`
	AgeGoe   null.Int    `json:"ageGoe"`
	AgeLoe   null.Int    `json:"ageLoe"`
}

// MemberTeam is a member with its team, flattened. TeamID and TeamName are
// null when the member has no team.
type MemberTeam struct {
	MemberID int64       `json:"memberId"`
	Username string      `json:"username"`
	Age      int         `json:"age"`
	TeamID   null.Int64  `json:"teamId"`
	TeamName null.String `json:"teamName"`
}

// RawRow is a member/team row as the store returns it.
type RawRow struct {
	MemberID null.Int64  `boil:"member_id"`
	Username null.String `boil:"username"`
	Age      null.Int    `boil:"age"`
	TeamID   null.Int64  `boil:"team_id"`
	TeamName null.String `boil:"team_name"`
}
