package gamelogic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/css-solaris/solaris-bot-go/internal/solaris/role"
)

// displayName resolves an id against the pre-fetched name map.
func displayName(id int64, names map[int64]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("User %d", id)
}

func plural(n int) string {
	if n != 1 {
		return "s"
	}
	return ""
}

// FormatVoteMessage renders the live tally message: individual ballots,
// abstain/veto groupings, then the sorted count.
func FormatVoteMessage(votes map[int64]Target, names map[int64]string) string {
	lines := []string{"📊 **Current Votes**\n"}

	tally := map[int64]int{}
	var abstainVoters, vetoVoters []string

	voterIDs := make([]int64, 0, len(votes))
	for id := range votes {
		voterIDs = append(voterIDs, id)
	}
	sort.Slice(voterIDs, func(i, j int) bool { return voterIDs[i] < voterIDs[j] })

	for _, voterID := range voterIDs {
		voterName := displayName(voterID, names)
		switch target := votes[voterID]; target.Kind {
		case TargetVeto:
			vetoVoters = append(vetoVoters, voterName)
		case TargetAbstain:
			abstainVoters = append(abstainVoters, voterName)
		case TargetCandidate:
			lines = append(lines, fmt.Sprintf("• %s → %s", voterName, displayName(target.Candidate, names)))
			tally[target.Candidate]++
		}
	}

	if len(abstainVoters) > 0 {
		lines = append(lines, fmt.Sprintf("• %s → **Abstain**", strings.Join(abstainVoters, ", ")))
	}
	if len(vetoVoters) > 0 {
		lines = append(lines, fmt.Sprintf("• %s → **Veto**", strings.Join(vetoVoters, ", ")))
	}

	if len(tally) > 0 || len(abstainVoters) > 0 || len(vetoVoters) > 0 {
		lines = append(lines, "\n**Tally:**")

		targetIDs := make([]int64, 0, len(tally))
		for id := range tally {
			targetIDs = append(targetIDs, id)
		}
		// descending by count, ascending id as the stable tiebreak
		sort.Slice(targetIDs, func(i, j int) bool {
			if tally[targetIDs[i]] != tally[targetIDs[j]] {
				return tally[targetIDs[i]] > tally[targetIDs[j]]
			}
			return targetIDs[i] < targetIDs[j]
		})
		for _, id := range targetIDs {
			count := tally[id]
			lines = append(lines, fmt.Sprintf("  %s: %d vote%s", displayName(id, names), count, plural(count)))
		}

		if n := len(abstainVoters); n > 0 {
			lines = append(lines, fmt.Sprintf("  Abstain: %d vote%s", n, plural(n)))
		}
		if n := len(vetoVoters); n > 0 {
			lines = append(lines, fmt.Sprintf("  Veto: %d vote%s", n, plural(n)))
		}
	}

	return strings.Join(lines, "\n")
}

// FormatDayEndMessage renders the end-of-day announcement, revealing the
// eliminated player's role when roles are assigned.
func FormatDayEndMessage(res Resolution, names map[int64]string, day int, roles map[int64]string) string {
	lines := []string{fmt.Sprintf("🌙 **Day %d has ended!**\n", day)}

	switch res.Outcome {
	case OutcomeElimination:
		eliminatedName := displayName(res.Eliminated, names)
		votes := res.Tally[res.Eliminated]

		if roleName, ok := roles[res.Eliminated]; ok && len(roles) > 0 {
			info := role.Lookup(roleName)
			lines = append(lines, fmt.Sprintf(
				"**%s** has been eliminated with **%d** vote%s!\nThey were: %s **%s**",
				eliminatedName, votes, plural(votes), info.Emoji, roleName,
			))
		} else {
			lines = append(lines, fmt.Sprintf(
				"**%s** has been eliminated with **%d** vote%s!",
				eliminatedName, votes, plural(votes),
			))
		}

	case OutcomeTie:
		tiedNames := make([]string, 0, len(res.TiedWith))
		for _, id := range res.TiedWith {
			tiedNames = append(tiedNames, displayName(id, names))
		}
		lines = append(lines,
			fmt.Sprintf("The vote ended in a **tie** between %s.", strings.Join(tiedNames, ", ")),
			"**No one has been eliminated.**",
		)

	case OutcomeNoVotes:
		lines = append(lines, "**No votes were cast.**", "**No one has been eliminated.**")

	case OutcomeMajorityAbstain:
		lines = append(lines, "The **majority abstained** from voting.", "**No one has been eliminated.**")
	}

	return strings.Join(lines, "\n")
}
