package league

// row builds a team1-perspective match with the outcome taken from the score.
func row(order, pos int, team1, team2 string, g1, g2 int, venue Venue) Match {
	return Match{
		Order:    order,
		Position: pos,
		Team1:    team1,
		Team2:    team2,
		Goals1:   g1,
		Goals2:   g2,
		Outcome:  OutcomeFromGoals(g1, g2),
		Venue:    venue,
	}
}

// mirrored returns both rows of a fixture, one per participant, as the source tables store them.
func mirrored(order, homePos, awayPos int, home, away string, hg, ag int) []Match {
	return []Match{
		row(order, homePos, home, away, hg, ag, Home),
		row(order, awayPos, away, home, ag, hg, Away),
	}
}

// sampleLeague is a three-round, four-team league stored one row per team per fixture.
func sampleLeague() *Relation {
	var rows []Match
	rows = append(rows, mirrored(1, 1, 4, "Flamengo", "Santos", 3, 0)...)
	rows = append(rows, mirrored(1, 2, 3, "Grêmio", "Bahia", 1, 1)...)
	rows = append(rows, mirrored(2, 2, 1, "Santos", "Grêmio", 0, 2)...)
	rows = append(rows, mirrored(2, 3, 4, "Bahia", "Flamengo", 2, 1)...)
	rows = append(rows, mirrored(3, 1, 4, "Flamengo", "Grêmio", 2, 2)...)
	rows = append(rows, mirrored(3, 2, 3, "Bahia", "Santos", 1, 0)...)
	return NewRelation(rows)
}

// outcomeSeq gives a team consecutive matches with the given outcomes, starting at order 1.
func outcomeSeq(team string, outcomes ...Outcome) *Relation {
	var rows []Match
	for i, o := range outcomes {
		g1, g2 := 1, 1
		switch o {
		case Win:
			g1, g2 = 2, 0
		case Loss:
			g1, g2 = 0, 2
		}
		rows = append(rows, row(i+1, 0, team, "Opp", g1, g2, Home))
	}
	return NewRelation(rows)
}
