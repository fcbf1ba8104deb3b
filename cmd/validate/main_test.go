package main

import (
	"bytes"
	"testing"

	"github.com/couchcryptid/solar-roi-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRun_ShippedTablesPass(t *testing.T) {
	var out bytes.Buffer
	code := run(&out)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "All validations passed.")
}

func TestValidateLocations_FlagsUnlocatedState(t *testing.T) {
	p := validateLocations([]domain.LocationRecord{{ZIPPrefix: "90", StateCode: "CA"}, {ZIPPrefix: "999", StateCode: "ZZ"}})

	assert.False(t, p.passed())
	assert.Len(t, p.errors, 3) // bad length, no coordinates, resolves elsewhere
}

func TestValidateStateProfiles_FlagsDuplicateAndUnsorted(t *testing.T) {
	profiles := domain.StateProfiles()
	dup := profiles[0]
	p := validateStateProfiles(append([]domain.StateProfile{profiles[1]}, dup, dup))

	assert.False(t, p.passed())
	assert.NotEmpty(t, p.errors)
}

func TestMappedStatesIncludesDefault(t *testing.T) {
	codes := mappedStates(nil)
	assert.Equal(t, []string{domain.DefaultState}, codes)
}
