// Package gamelogic implements vote tallying, win evaluation and the
// announcement rendering around them.
package gamelogic

import "sort"

// TargetKind discriminates what a ballot points at.
type TargetKind string

const (
	// TargetCandidate: a vote against a player.
	TargetCandidate TargetKind = "candidate"
	// TargetAbstain: an explicit abstention.
	TargetAbstain TargetKind = "abstain"
	// TargetVeto: a veto of the whole vote.
	TargetVeto TargetKind = "veto"
)

// Target: one ballot. Candidate carries the target player; the other kinds
// ignore it.
type Target struct {
	Kind      TargetKind `json:"kind"`
	Candidate int64      `json:"candidate,omitempty"`
}

// CandidateTarget builds a ballot against a player.
func CandidateTarget(playerID int64) Target {
	return Target{Kind: TargetCandidate, Candidate: playerID}
}

// AbstainTarget builds an abstention ballot.
func AbstainTarget() Target {
	return Target{Kind: TargetAbstain}
}

// VetoTarget builds a veto ballot.
func VetoTarget() Target {
	return Target{Kind: TargetVeto}
}

// Outcome of a day's tally.
type Outcome string

const (
	// OutcomeNoVotes: nobody cast a counted ballot.
	OutcomeNoVotes Outcome = "no_votes"
	// OutcomeMajorityAbstain: abstentions carried the day.
	OutcomeMajorityAbstain Outcome = "majority_abstain"
	// OutcomeTie: multiple candidates share the top count.
	OutcomeTie Outcome = "tie"
	// OutcomeElimination: one candidate tops the tally.
	OutcomeElimination Outcome = "elimination"
)

// Resolution: the result of counting a day's ballots.
type Resolution struct {
	Outcome    Outcome
	Eliminated int64         // set when Outcome is OutcomeElimination
	TiedWith   []int64       // top candidates when Outcome is OutcomeTie, sorted
	Tally      map[int64]int // candidate vote counts
	Abstains   int
	Vetoes     int
}

// CountVotes resolves the day's ballots. Ties never eliminate anyone, and
// the resolution is fully determined by the ballots.
//
// Ballots from voters eliminated after casting still count; the roster is
// accepted for signature stability but not used to filter.
func CountVotes(votes map[int64]Target, alive []int64) Resolution {
	_ = alive

	abstainCount := 0
	vetoCount := 0
	tally := map[int64]int{}

	for _, target := range votes {
		switch target.Kind {
		case TargetAbstain:
			abstainCount++
		case TargetVeto:
			vetoCount++
		case TargetCandidate:
			tally[target.Candidate]++
		}
	}

	res := Resolution{Tally: tally, Abstains: abstainCount, Vetoes: vetoCount}

	// an all-veto day is a no-vote day
	if len(tally) == 0 && abstainCount == 0 {
		res.Outcome = OutcomeNoVotes
		return res
	}

	// vetoes stay in the denominator
	totalVotes := len(votes)
	if float64(abstainCount) > float64(totalVotes)/2 {
		res.Outcome = OutcomeMajorityAbstain
		return res
	}

	maxCount := 0
	for _, count := range tally {
		if count > maxCount {
			maxCount = count
		}
	}

	var top []int64
	for id, count := range tally {
		if count == maxCount {
			top = append(top, id)
		}
	}

	switch {
	case len(top) > 1:
		sort.Slice(top, func(i, j int) bool { return top[i] < top[j] })
		res.Outcome = OutcomeTie
		res.TiedWith = top
		return res
	case len(top) == 1:
		res.Outcome = OutcomeElimination
		res.Eliminated = top[0]
		return res
	}

	// unreachable while the buckets above are exhaustive; resolve as the
	// least destructive outcome
	res.Outcome = OutcomeMajorityAbstain
	return res
}
