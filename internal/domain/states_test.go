package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "new-york", Slugify("New York"))
	assert.Equal(t, "north-carolina", Slugify("North  Carolina"))
	assert.Equal(t, "texas", Slugify("Texas"))
}

func TestStateProfiles_SortedByName(t *testing.T) {
	profiles := StateProfiles()
	require.Len(t, profiles, 15)
	assert.True(t, sort.SliceIsSorted(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	}))
	for _, p := range profiles {
		assert.Equal(t, FederalCreditPercent, p.FederalPercent, p.Code)
		assert.GreaterOrEqual(t, p.SunHoursPerDay, 3.5, p.Code)
		assert.LessOrEqual(t, p.SunHoursPerDay, 7.0, p.Code)
	}
}

func TestStateProfiles_ReturnsCopy(t *testing.T) {
	profiles := StateProfiles()
	profiles[0].Name = "mutated"
	assert.NotEqual(t, "mutated", StateProfiles()[0].Name)
}

func TestStateBySlug(t *testing.T) {
	p, ok := StateBySlug("new-mexico")
	require.True(t, ok)
	assert.Equal(t, "NM", p.Code)
	assert.Equal(t, 6.0, p.SunHoursPerDay)

	_, ok = StateBySlug("atlantis")
	assert.False(t, ok)
}

func TestStateByCode_CaseInsensitive(t *testing.T) {
	p, ok := StateByCode("hi")
	require.True(t, ok)
	assert.Equal(t, "Hawaii", p.Name)
}

func TestSimilarStates(t *testing.T) {
	similar := SimilarStates("CA", 3)
	require.Len(t, similar, 3)
	// HI has the same 5.5 sun hours; CO (5.3) and FL (5.2) are next closest.
	assert.Equal(t, "HI", similar[0].Code)
	assert.Equal(t, "CO", similar[1].Code)
	assert.Equal(t, "FL", similar[2].Code)
	for _, p := range similar {
		assert.NotEqual(t, "CA", p.Code)
	}
}

func TestSimilarStates_Unknown(t *testing.T) {
	assert.Nil(t, SimilarStates("ZZ", 3))
	assert.Nil(t, SimilarStates("CA", 0))
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "Texas", StateName("TX"))
	assert.Equal(t, "Utah", StateName("UT"))
	assert.Equal(t, "PA", StateName("PA"))
}
