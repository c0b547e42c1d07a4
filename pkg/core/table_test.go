package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAliasMap(t *testing.T) {
	refs := []TableReference{
		{Name: "users", Alias: "u"},
		{Name: "orders", Alias: "o"},
		{Name: "users", Alias: "author"},
	}

	m := BuildAliasMap(refs)

	require.Contains(t, m, "u")
	assert.Equal(t, "users", m["u"].Name)
	assert.Equal(t, "orders", m["o"].Name)
	assert.Equal(t, "author", m["users"].Alias, "last write wins for the bare name")
	assert.Same(t, &refs[2], m["author"])
}

func TestTableReference_Qualifier(t *testing.T) {
	assert.Equal(t, "u", TableReference{Name: "users", Alias: "u"}.Qualifier())
	assert.Equal(t, "users", TableReference{Name: "users"}.Qualifier())
	assert.Equal(t,
		TableReference{Name: "Users", Alias: "U"}.Key(),
		TableReference{Name: "users", Alias: "u"}.Key())
}
