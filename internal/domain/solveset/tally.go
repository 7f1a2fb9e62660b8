package solveset

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/okian/lcboard/internal/domain/types"
)

// Tally counts, per problem title, how many distinct users solved it at
// least once. A Tally is built fresh per aggregation run; it is not safe
// for concurrent use and must not be reused across runs.
type Tally struct {
	counts map[string]int
	users  int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// AddUser records one user's distinct solved-title set. Passing the set
// (rather than the raw rows) makes per-user counting idempotent: a title
// can never double-increment for the same user.
func (t *Tally) AddUser(titles map[string]struct{}) {
	t.users++
	for title := range titles {
		t.counts[title]++
	}
}

// Users returns the number of users recorded so far.
func (t *Tally) Users() int {
	return t.users
}

// Count returns how many recorded users solved title.
func (t *Tally) Count(title string) int {
	return t.counts[title]
}

// Partition splits the tallied titles into common (solved by every
// recorded user) and unique (solved by some but not all). Both slices are
// sorted with an English collator so display order is deterministic and
// matches locale-aware string comparison. The slices are never nil.
func (t *Tally) Partition() types.ProblemSets {
	sets := types.ProblemSets{
		Common: []string{},
		Unique: []string{},
	}
	for title, n := range t.counts {
		if n == t.users {
			sets.Common = append(sets.Common, title)
		} else {
			sets.Unique = append(sets.Unique, title)
		}
	}
	coll := collate.New(language.English)
	sortTitles(coll, sets.Common)
	sortTitles(coll, sets.Unique)
	return sets
}

func sortTitles(coll *collate.Collator, titles []string) {
	sort.SliceStable(titles, func(i, j int) bool {
		return coll.CompareString(titles[i], titles[j]) < 0
	})
}
