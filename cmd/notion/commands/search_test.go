package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge-io/notion-client/cmd/notion/commands"
)

func TestNewSearchCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewSearchCommand()
	assert.Equal(t, "search [QUERY]", cmd.Use)
	assert.Equal(t, "Search the workspace", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	// Check flags
	assert.NotNil(t, cmd.Flags().Lookup("type"))
	assert.NotNil(t, cmd.Flags().Lookup("all"))
	assert.NotNil(t, cmd.Flags().Lookup("page-size"))

	allFlag := cmd.Flags().Lookup("all")
	assert.Equal(t, "false", allFlag.DefValue)

	typeFlag := cmd.Flags().Lookup("type")
	assert.Equal(t, "", typeFlag.DefValue)
}
