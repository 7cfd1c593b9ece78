package member

// Project maps a raw row to the flat output shape. Team fields keep their
// null state so a member without a team is never reported with team 0.
func Project(raw RawRow) MemberTeam {
	return MemberTeam{
		MemberID: raw.MemberID.Int64,
		Username: raw.Username.String,
		Age:      raw.Age.Int,
		TeamID:   raw.TeamID,
		TeamName: raw.TeamName,
	}
}
