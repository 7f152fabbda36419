package role

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// MinPlayers: smallest roster a game can start with.
const MinPlayers = 3

// Distribution returns the role multiset for n players as name -> count.
// Fails when n is below the minimum.
func Distribution(n int) (map[string]int, error) {
	if n < MinPlayers {
		return nil, fmt.Errorf("need at least %d players, got %d", MinPlayers, n)
	}

	dist := map[string]int{}

	saboteurs := (n + 3) / 4
	if saboteurs < 1 {
		saboteurs = 1
	}
	dist[NameSaboteur] = saboteurs

	if n >= 6 {
		dist[NameSecurityOfficer] = 1
	}
	if n >= 8 {
		dist[NameEngineer] = 1
	}

	assigned := 0
	for _, count := range dist {
		assigned += count
	}
	dist[NameCrewMember] = n - assigned

	return dist, nil
}

// Assign deals roles to the given players. The shuffle uses the injected rng
// so assignment stays reproducible under a seeded source. Every player gets
// exactly one role.
func Assign(playerIDs []int64, rng *rand.Rand) (map[int64]string, error) {
	dist, err := Distribution(len(playerIDs))
	if err != nil {
		return nil, err
	}

	// stable name order before the shuffle keeps the deal seed-deterministic
	names := make([]string, 0, len(dist))
	for name := range dist {
		names = append(names, name)
	}
	sort.Strings(names)

	deck := make([]string, 0, len(playerIDs))
	for _, name := range names {
		for i := 0; i < dist[name]; i++ {
			deck = append(deck, name)
		}
	}

	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	roles := make(map[int64]string, len(playerIDs))
	for i, id := range playerIDs {
		roles[id] = deck[i]
	}
	return roles, nil
}

// FormatDistribution renders the distribution for n players, one role per
// line with the catalog emoji.
func FormatDistribution(n int) (string, error) {
	dist, err := Distribution(n)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Role distribution for %d players:\n", n)
	for _, info := range All() {
		count, ok := dist[info.Name]
		if !ok || count == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s %s x%d\n", info.Emoji, info.Name, count)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
