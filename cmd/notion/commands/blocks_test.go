package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge-io/notion-client/cmd/notion/commands"
)

func TestNewBlocksCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewBlocksCommand()
	assert.Equal(t, "blocks", cmd.Use)
	assert.Equal(t, []string{"block"}, cmd.Aliases)
	assert.Equal(t, "Manage blocks", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "append")
	assert.Contains(t, commandNames, "delete")
}

func TestBlocksListCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewBlocksCommand()
	cmd := findSubcommand(root, "list")
	assert.Equal(t, "list BLOCK_ID", cmd.Use)
	assert.Equal(t, "List block children", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	assert.NotNil(t, cmd.Flags().Lookup("all"))
	assert.NotNil(t, cmd.Flags().Lookup("page-size"))
}

func TestBlocksAppendCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewBlocksCommand()
	cmd := findSubcommand(root, "append")
	assert.Equal(t, "append BLOCK_ID", cmd.Use)
	assert.Equal(t, "Append child blocks", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("text"))
	assert.NotNil(t, cmd.Flags().Lookup("from-file"))

	fromFileFlag := cmd.Flags().Lookup("from-file")
	assert.Equal(t, "f", fromFileFlag.Shorthand)
}

func TestBlocksAppendCommandRequiresText(t *testing.T) {
	t.Parallel()

	root := commands.NewBlocksCommand()
	cmd := findSubcommand(root, "append")

	err := cmd.RunE(cmd, []string{"block-1"})
	assert.ErrorIs(t, err, commands.ErrTextRequired)
}

func TestBlocksDeleteCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewBlocksCommand()
	cmd := findSubcommand(root, "delete")
	assert.Equal(t, "delete BLOCK_ID", cmd.Use)
	assert.Equal(t, "Delete a block", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}
