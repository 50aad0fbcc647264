/*
Copyright © 2025 changheonshin
*/
package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordStrategy_PriorityOrder(t *testing.T) {
	s := NewKeywordStrategy()

	// Contains both a projects phrase and an archives phrase; projects
	// wins because it comes first in the priority order.
	cat, sub := s.Resolve("sprint review, completed last week", "/d/notes.txt")
	assert.Equal(t, CategoryProjects, cat)
	assert.Equal(t, "active", sub)
}

func TestKeywordStrategy_FutureBeatsCurrent(t *testing.T) {
	s := NewKeywordStrategy()

	cat, sub := s.Resolve("ongoing project, next phase planned for the roadmap", "/d/notes.txt")
	assert.Equal(t, CategoryProjects, cat)
	assert.Equal(t, "next", sub)
}

func TestKeywordStrategy_AreaSubcategories(t *testing.T) {
	s := NewKeywordStrategy()

	cat, sub := s.Resolve("family budget for the household", "/d/money.txt")
	assert.Equal(t, CategoryAreas, cat)
	assert.Equal(t, "personal", sub)

	cat, sub = s.Resolve("workout and nutrition log", "/d/gym.txt")
	assert.Equal(t, CategoryAreas, cat)
	assert.Equal(t, "health", sub)
}

func TestKeywordStrategy_NoMatchUsesFilenameThenFallback(t *testing.T) {
	s := NewKeywordStrategy()

	cat, sub := s.Resolve("nothing recognizable", "/d/backup_2020.tar")
	assert.Equal(t, CategoryArchives, cat)
	assert.Equal(t, "old", sub)

	cat, sub = s.Resolve("nothing recognizable", "/d/misc.txt")
	assert.Equal(t, CategoryOther, cat)
	assert.Equal(t, OtherSubcategory, sub)
}

func TestKeywordStrategy_ArchivesDoneVsOld(t *testing.T) {
	s := NewKeywordStrategy()

	cat, sub := s.Resolve("the deliverable was delivered and the task closed", "/d/x.txt")
	assert.Equal(t, CategoryProjects, cat, "deliverable is a projects phrase and projects has priority")
	_ = sub

	cat, sub = s.Resolve("finished and shipped to production", "/d/x.txt")
	assert.Equal(t, CategoryArchives, cat)
	assert.Equal(t, "done", sub)

	cat, sub = s.Resolve("deprecated legacy material", "/d/x.txt")
	assert.Equal(t, CategoryArchives, cat)
	assert.Equal(t, "old", sub)
}
