package state

import (
	"math/rand/v2"

	"github.com/jwebster45206/dungeon-engine/pkg/oracle"
)

type Vote struct {
	Voter  string        `json:"voter"`
	Choice oracle.Action `json:"choice"`
}

// VoteSession collects one vote per voter, in voter order.
type VoteSession struct {
	Voters   []string `json:"voters"`
	Votes    []Vote   `json:"votes"`
	Index    int      `json:"index"`
	Resolved bool     `json:"resolved"`
}

// NewVoteSession opens a vote for the given voters. An empty voter list is
// resolved immediately.
func NewVoteSession(voters []string) *VoteSession {
	return &VoteSession{
		Voters:   append([]string(nil), voters...),
		Votes:    []Vote{},
		Resolved: len(voters) == 0,
	}
}

// CurrentVoter returns the name of the player whose vote is awaited.
func (v *VoteSession) CurrentVoter() string {
	if v.Resolved || v.Index >= len(v.Voters) {
		return ""
	}
	return v.Voters[v.Index]
}

// Cast records the current voter's choice. It reports whether this vote
// completed the session.
func (v *VoteSession) Cast(choice oracle.Action) (bool, error) {
	if v.Resolved {
		return false, ErrVoteClosed
	}
	v.Votes = append(v.Votes, Vote{Voter: v.Voters[v.Index], Choice: choice})
	if len(v.Votes) == len(v.Voters) {
		v.Resolved = true
		return true, nil
	}
	v.Index++
	return false, nil
}

func (v *VoteSession) clone() *VoteSession {
	if v == nil {
		return nil
	}
	c := *v
	c.Voters = append([]string(nil), v.Voters...)
	c.Votes = append([]Vote(nil), v.Votes...)
	return &c
}

// ResolveVotes picks the strict plurality winner. With no strict winner the
// result is drawn from oracle.FallbackActions and fallback is true.
func ResolveVotes(votes []Vote, rng *rand.Rand) (action oracle.Action, fallback bool) {
	counts := make(map[oracle.Action]int)
	var order []oracle.Action
	for _, v := range votes {
		if counts[v.Choice] == 0 {
			order = append(order, v.Choice)
		}
		counts[v.Choice]++
	}

	best, tie := 0, false
	for _, a := range order {
		switch n := counts[a]; {
		case n > best:
			best, action, tie = n, a, false
		case n == best:
			tie = true
		}
	}

	if tie || best == 0 {
		return oracle.FallbackActions[rng.IntN(len(oracle.FallbackActions))], true
	}
	return action, false
}
