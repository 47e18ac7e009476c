package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStringAndInt(t *testing.T) {
	t.Setenv("DFC_TEST_ADDR", ":9090")
	t.Setenv("DFC_TEST_CONNS", "not-a-number")

	assert.Equal(t, ":9090", GetString("DFC_TEST_ADDR", ":8080"))
	assert.Equal(t, "fallback", GetString("DFC_TEST_MISSING", "fallback"))
	assert.Equal(t, 10, GetInt("DFC_TEST_CONNS", 10))
}

func TestGetBool(t *testing.T) {
	t.Setenv("DFC_TEST_MIGRATE", "true")
	t.Setenv("DFC_TEST_BROKEN", "maybe")

	assert.True(t, GetBool("DFC_TEST_MIGRATE", false))
	assert.False(t, GetBool("DFC_TEST_BROKEN", false))
}

func TestGetList(t *testing.T) {
	t.Setenv("DFC_TEST_CODES", " 1.001.001, ,1.001.008 ")
	t.Setenv("DFC_TEST_EMPTY", "")

	assert.Equal(t, []string{"1.001.001", "1.001.008"}, GetList("DFC_TEST_CODES", nil))
	assert.Empty(t, GetList("DFC_TEST_EMPTY", []string{"x"}))
	assert.Equal(t, []string{"x"}, GetList("DFC_TEST_UNSET", []string{"x"}))
}

func TestGetIntList(t *testing.T) {
	t.Setenv("DFC_TEST_YEARS", "2025, abc ,2026")
	assert.Equal(t, []int{2025, 2026}, GetIntList("DFC_TEST_YEARS", nil))
}
