package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var cohortA = Cohort{Course: "1", Stream: "2"}
var cohortB = Cohort{Course: "3", Stream: "1"}

func TestRenameStore_DisplayUnmapped(t *testing.T) {
	s := NewRenameStore()
	assert.Equal(t, "Math", s.Display(cohortA, "Math"))
}

func TestRenameStore_DisplayMapped(t *testing.T) {
	s := NewRenameStore()
	s.Set(cohortA, "Math", "Mathematics")
	assert.Equal(t, "Mathematics", s.Display(cohortA, "Math"))
}

func TestRenameStore_CohortsIndependent(t *testing.T) {
	s := NewRenameStore()
	s.Set(cohortA, "Math", "Mathematics")
	assert.Equal(t, "Math", s.Display(cohortB, "Math"))
}

func TestRenameStore_OriginalFor(t *testing.T) {
	s := NewRenameStore()
	s.Set(cohortA, "Math", "Mathematics")

	original, ok := s.OriginalFor(cohortA, "Mathematics")
	assert.True(t, ok)
	assert.Equal(t, "Math", original)
}

func TestRenameStore_OriginalForUnknownFallsBack(t *testing.T) {
	s := NewRenameStore()
	original, ok := s.OriginalFor(cohortA, "Biology")
	assert.False(t, ok)
	assert.Equal(t, "Biology", original)
}

func TestRenameStore_OriginalForAmbiguousIsDeterministic(t *testing.T) {
	s := NewRenameStore()
	s.Set(cohortA, "Math", "Science")
	s.Set(cohortA, "Biology", "Science")

	// Both originals map to the same display name; the sorted scan always
	// picks the same winner.
	for i := 0; i < 10; i++ {
		original, ok := s.OriginalFor(cohortA, "Science")
		assert.True(t, ok)
		assert.Equal(t, "Biology", original)
	}
}

func TestRenameStore_PutDataNil(t *testing.T) {
	s := NewRenameStore()
	s.PutData(nil)
	s.Set(cohortA, "Math", "Mathematics")
	assert.Equal(t, "Mathematics", s.Display(cohortA, "Math"))
}

func TestRenameStore_GetDataIsCopy(t *testing.T) {
	s := NewRenameStore()
	s.Set(cohortA, "Math", "Mathematics")

	data := s.GetData()
	data[cohortA.String()]["Math"] = "Tampered"

	assert.Equal(t, "Mathematics", s.Display(cohortA, "Math"))
}
