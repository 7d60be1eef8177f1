// pattern: Functional Core

package recency

import (
	"cmp"
	"context"
	"slices"

	"worktree/internal/git"
)

// ModeTmux is the sort mode that orders worktrees by tmux activity.
const ModeTmux = "tmux"

// Source supplies session activity, typically *tmux.Client.
type Source interface {
	SessionActivity(ctx context.Context) map[string]uint64
	CurrentSession(ctx context.Context) (string, bool)
}

// Snapshot is the session state a sort is computed against. It is read
// once and never mutated.
type Snapshot struct {
	Sessions   map[string]uint64
	Current    string
	HasCurrent bool
}

// Take reads a Snapshot from src.
func Take(ctx context.Context, src Source) Snapshot {
	current, ok := src.CurrentSession(ctx)
	return Snapshot{
		Sessions:   src.SessionActivity(ctx),
		Current:    current,
		HasCurrent: ok,
	}
}

// PreviousSession returns the most recently attached session other than
// current. Equal timestamps resolve to the lexicographically smallest name.
func PreviousSession(sessions map[string]uint64, current string) (string, bool) {
	var best string
	var bestTime uint64
	found := false

	for name, ts := range sessions {
		if name == current {
			continue
		}
		if !found || ts > bestTime || (ts == bestTime && name < best) {
			best, bestTime, found = name, ts, true
		}
	}

	return best, found
}

// tier ranks a worktree; lower sorts first.
type tier int

const (
	tierPrevious tier = iota
	tierCurrent
	tierActive
	tierIdle
)

// Sort orders worktrees in place, most relevant first:
//  1. the previous tmux session
//  2. the current tmux session
//  3. other sessions with activity, most recent first
//  4. everything else, alphabetically
//
// Worktrees are matched to sessions by directory basename. Without a
// current session tiers 1 and 2 are empty.
func Sort(worktrees []git.Worktree, snap Snapshot) {
	var previous string
	hasPrevious := false
	if snap.HasCurrent {
		previous, hasPrevious = PreviousSession(snap.Sessions, snap.Current)
	}

	rank := func(name string) (tier, uint64) {
		ts := snap.Sessions[name]
		switch {
		case hasPrevious && name == previous:
			return tierPrevious, ts
		case snap.HasCurrent && name == snap.Current:
			return tierCurrent, ts
		case ts > 0:
			return tierActive, ts
		default:
			return tierIdle, 0
		}
	}

	slices.SortStableFunc(worktrees, func(a, b git.Worktree) int {
		nameA, nameB := a.Name(), b.Name()
		tierA, tsA := rank(nameA)
		tierB, tsB := rank(nameB)

		if c := cmp.Compare(tierA, tierB); c != 0 {
			return c
		}
		if tierA == tierActive {
			// most recent first
			if c := cmp.Compare(tsB, tsA); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(nameA, nameB); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
}

// Apply sorts worktrees according to mode. Unknown or empty modes leave the
// order untouched. The snapshot is only taken for ModeTmux.
func Apply(ctx context.Context, mode string, worktrees []git.Worktree, src Source) {
	if mode != ModeTmux {
		return
	}
	Sort(worktrees, Take(ctx, src))
}
