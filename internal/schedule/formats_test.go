package schedule

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhutchins/open-play-app/internal/event"
	"github.com/mhutchins/open-play-app/internal/utils"
)

func genderedPlayers(men, women int) []event.Player {
	var pool []event.Player
	for i := 0; i < men; i++ {
		pool = append(pool, event.Player{
			ID:     uuid.New(),
			Name:   fmt.Sprintf("M%d", i+1),
			Gender: utils.Ptr(event.GenderMale),
		})
	}
	for i := 0; i < women; i++ {
		pool = append(pool, event.Player{
			ID:     uuid.New(),
			Name:   fmt.Sprintf("W%d", i+1),
			Gender: utils.Ptr(event.GenderFemale),
		})
	}
	return pool
}

func teamedPlayers(counts map[string]int) []event.Player {
	var pool []event.Player
	for team, n := range counts {
		for i := 0; i < n; i++ {
			pool = append(pool, event.Player{
				ID:   uuid.New(),
				Name: fmt.Sprintf("%s %d", team, i+1),
				Team: utils.Ptr(team),
			})
		}
	}
	return pool
}

func countByes(pairings []Pairing) int {
	n := 0
	for _, p := range pairings {
		if p.IsBye() {
			n++
		}
	}
	return n
}

func TestMixedDoublesPairsAcrossGenders(t *testing.T) {
	pool := genderedPlayers(5, 4)
	h := NewHistory(playerIDs(pool))

	pairings, err := MixedDoublesStrategy{}.Pairings(pool, 3, 1, h)
	require.NoError(t, err)

	// min(3 courts, 2 male teams, 2 female teams) leaves room for two
	// matches; the fifth man sits out without a BYE entry.
	require.Len(t, pairings, 2)
	assert.Zero(t, countByes(pairings))

	genderOf := make(map[uuid.UUID]event.Gender)
	for _, p := range pool {
		genderOf[p.ID] = *p.Gender
	}
	for _, pairing := range pairings {
		for _, side := range [][]uuid.UUID{pairing.TeamA, pairing.TeamB} {
			require.Len(t, side, 2)
			assert.NotEqual(t, genderOf[side[0]], genderOf[side[1]],
				"each team fields one man and one woman")
		}
	}
}

func TestMixedDoublesSkipsUnspecifiedGender(t *testing.T) {
	pool := genderedPlayers(2, 2)
	pool = append(pool, event.Player{ID: uuid.New(), Name: "Unknown"})
	h := NewHistory(playerIDs(pool))

	pairings, err := MixedDoublesStrategy{}.Pairings(pool, 2, 1, h)
	require.NoError(t, err)
	require.Len(t, pairings, 1)
	assert.NotContains(t, pairings[0].Players(), pool[4].ID)
}

func TestCourtMaxSeatsEveryoneWhenPossible(t *testing.T) {
	pool := makePlayers(10)
	h := NewHistory(playerIDs(pool))

	pairings, err := CourtMaxStrategy{}.Pairings(pool, 3, 1, h)
	require.NoError(t, err)

	// Two doubles courts plus one singles court seats all ten.
	require.Len(t, pairings, 3)
	assert.Zero(t, countByes(pairings))

	seated := 0
	for _, p := range pairings {
		seated += len(p.Players())
	}
	assert.Equal(t, 10, seated)
}

func TestCourtMaxMixesDoublesAndSingles(t *testing.T) {
	pool := makePlayers(7)
	h := NewHistory(playerIDs(pool))

	pairings, err := CourtMaxStrategy{}.Pairings(pool, 2, 1, h)
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	var sizes []int
	for _, p := range pairings {
		if !p.IsBye() {
			sizes = append(sizes, len(p.Players()))
		}
	}
	assert.ElementsMatch(t, []int{4, 2}, sizes)
	assert.Equal(t, 1, countByes(pairings))
}

func TestTeamBattlePrefersDoublesHeavySplit(t *testing.T) {
	pool := teamedPlayers(map[string]int{"Red": 5, "Blue": 4})
	h := NewHistory(playerIDs(pool))

	pairings, err := TeamBattleStrategy{}.Pairings(pool, 3, 1, h)
	require.NoError(t, err)
	require.Len(t, pairings, 3)

	teamOf := make(map[uuid.UUID]string)
	for _, p := range pool {
		teamOf[p.ID] = *p.Team
	}
	doubles := 0
	for _, pairing := range pairings {
		if pairing.IsBye() {
			continue
		}
		require.Len(t, pairing.TeamA, 2)
		doubles++
		for _, id := range pairing.TeamA {
			assert.Equal(t, "Blue", teamOf[id])
		}
		for _, id := range pairing.TeamB {
			assert.Equal(t, "Red", teamOf[id])
		}
	}
	assert.Equal(t, 2, doubles)
	assert.Equal(t, 1, countByes(pairings))
}

func TestTeamBattleHonorsCourtHints(t *testing.T) {
	pool := teamedPlayers(map[string]int{"Red": 5, "Blue": 4})
	h := NewHistory(playerIDs(pool))

	strategy := TeamBattleStrategy{SinglesCourts: 3}
	pairings, err := strategy.Pairings(pool, 3, 1, h)
	require.NoError(t, err)

	singles := 0
	for _, p := range pairings {
		if !p.IsBye() {
			require.Len(t, p.TeamA, 1)
			require.Len(t, p.TeamB, 1)
			singles++
		}
	}
	assert.Equal(t, 3, singles)
	assert.Equal(t, 3, countByes(pairings))
}

func TestTeamBattleRequiresTwoTeams(t *testing.T) {
	pool := teamedPlayers(map[string]int{"Red": 6})
	h := NewHistory(playerIDs(pool))

	_, err := TeamBattleStrategy{}.Pairings(pool, 2, 1, h)
	assert.ErrorIs(t, err, ErrTeamsNotConfigured)
}

func TestKingOfCourtSnakeSeeding(t *testing.T) {
	pool := makePlayers(8)
	for i := range pool {
		pool[i].Wins = len(pool) - i
	}
	h := NewHistory(playerIDs(pool))

	pairings, err := KingOfCourtStrategy{}.Pairings(pool, 2, 1, h)
	require.NoError(t, err)
	require.Len(t, pairings, 2)

	seed := func(i int) uuid.UUID { return pool[i-1].ID }

	// Snake order places seeds 1, 4, 5, 8 on the first court and 2, 3, 6, 7
	// on the second; top and bottom seeds of a court partner up.
	assert.ElementsMatch(t, []uuid.UUID{seed(1), seed(8)}, pairings[0].TeamA)
	assert.ElementsMatch(t, []uuid.UUID{seed(4), seed(5)}, pairings[0].TeamB)
	assert.ElementsMatch(t, []uuid.UUID{seed(2), seed(7)}, pairings[1].TeamA)
	assert.ElementsMatch(t, []uuid.UUID{seed(3), seed(6)}, pairings[1].TeamB)
}

func TestKingOfCourtLeftoverGetsBye(t *testing.T) {
	pool := makePlayers(9)
	for i := range pool {
		pool[i].Wins = len(pool) - i
	}
	h := NewHistory(playerIDs(pool))

	pairings, err := KingOfCourtStrategy{}.Pairings(pool, 2, 1, h)
	require.NoError(t, err)
	require.Len(t, pairings, 3)
	require.True(t, pairings[2].IsBye())
	assert.Equal(t, pool[8].ID, pairings[2].TeamA[0], "lowest seed sits out")
}

func TestFixedTeamsRotation(t *testing.T) {
	pool := makePlayers(8)
	h := NewHistory(playerIDs(pool))

	team := func(i int) []uuid.UUID {
		return []uuid.UUID{pool[2*i].ID, pool[2*i+1].ID}
	}

	round1, err := FixedTeamsStrategy{}.Pairings(pool, 2, 1, h)
	require.NoError(t, err)
	require.Len(t, round1, 2)
	assert.Equal(t, team(0), round1[0].TeamA)
	assert.Equal(t, team(1), round1[0].TeamB)
	assert.Equal(t, team(2), round1[1].TeamA)
	assert.Equal(t, team(3), round1[1].TeamB)

	round2, err := FixedTeamsStrategy{}.Pairings(pool, 2, 2, h)
	require.NoError(t, err)
	require.Len(t, round2, 2)
	assert.Equal(t, team(1), round2[0].TeamA)
	assert.Equal(t, team(2), round2[0].TeamB)
	assert.Equal(t, team(3), round2[1].TeamA)
	assert.Equal(t, team(0), round2[1].TeamB)
}

func TestFixedTeamsOddRosterTrailingBye(t *testing.T) {
	pool := makePlayers(9)
	h := NewHistory(playerIDs(pool))

	pairings, err := FixedTeamsStrategy{}.Pairings(pool, 2, 1, h)
	require.NoError(t, err)

	require.Equal(t, 1, countByes(pairings))
	last := pairings[len(pairings)-1]
	require.True(t, last.IsBye())
	assert.Equal(t, pool[8].ID, last.TeamA[0])
}

func playerIDs(pool []event.Player) []uuid.UUID {
	ids := make([]uuid.UUID, len(pool))
	for i, p := range pool {
		ids[i] = p.ID
	}
	return ids
}
