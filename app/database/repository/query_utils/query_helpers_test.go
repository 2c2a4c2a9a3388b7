package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	util "backend/insurance-platform/app/database/repository/query_utils"
)

type filter struct {
	UserID string   `mapstructure:"user_id,omitempty"`
	Status string   `mapstructure:"status,omitempty"`
	IDs    []string `mapstructure:"id,omitempty"`
}

func TestStructToConditions(t *testing.T) {
	cond, args, err := util.StructToConditions(filter{UserID: "user1", Status: "pending"}, "c")
	require.NoError(t, err)
	assert.Equal(t, "c.status = ? AND c.user_id = ?", cond)
	assert.Equal(t, []any{"pending", "user1"}, args)
}

func TestStructToConditionsSkipsEmptyFields(t *testing.T) {
	cond, args, err := util.StructToConditions(filter{}, "")
	require.NoError(t, err)
	assert.Empty(t, cond)
	assert.Empty(t, args)
}

func TestStructToQueriesUsesInForSlices(t *testing.T) {
	conds, args, err := util.StructToQueries(filter{IDs: []string{"1", "2"}}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"id IN (?)"}, conds)
	require.Len(t, args, 1)
	assert.IsType(t, bun.In([]string{}), args[0])
}

func TestIsUniqueViolationIgnoresOtherErrors(t *testing.T) {
	assert.False(t, util.IsUniqueViolation(assert.AnError))
	assert.False(t, util.IsUniqueViolation(nil))
}
