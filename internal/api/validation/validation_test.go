package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ShiftType  string `binding:"omitempty,shift_type"`
	Department string `binding:"omitempty,department"`
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register(), "重复注册不应报错")

	assert.NoError(t, binding.Validator.ValidateStruct(&sample{ShiftType: "1st_shift", Department: "Operations & Berthing"}))
	assert.NoError(t, binding.Validator.ValidateStruct(&sample{}))
	assert.Error(t, binding.Validator.ValidateStruct(&sample{ShiftType: "night"}))
	assert.Error(t, binding.Validator.ValidateStruct(&sample{Department: "Marketing"}))
}
