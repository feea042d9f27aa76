package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge-io/notion-client/cmd/notion/commands"
)

func TestNewCommentsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewCommentsCommand()
	assert.Equal(t, "comments", cmd.Use)
	assert.Equal(t, []string{"comment"}, cmd.Aliases)
	assert.Equal(t, "Manage comments", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 2)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "add")
}

func TestCommentsListCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewCommentsCommand()
	cmd := findSubcommand(root, "list")
	assert.Equal(t, "list BLOCK_ID", cmd.Use)
	assert.Equal(t, "List comments", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	assert.NotNil(t, cmd.Flags().Lookup("all"))
}

func TestCommentsAddCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewCommentsCommand()
	cmd := findSubcommand(root, "add")
	assert.Equal(t, "add", cmd.Use)
	assert.Equal(t, "Add a comment", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	assert.NotNil(t, cmd.Flags().Lookup("page"))
	assert.NotNil(t, cmd.Flags().Lookup("discussion"))
	assert.NotNil(t, cmd.Flags().Lookup("text"))
}

func TestCommentsAddCommandRequiresText(t *testing.T) {
	t.Parallel()

	root := commands.NewCommentsCommand()
	cmd := findSubcommand(root, "add")

	err := cmd.RunE(cmd, nil)
	assert.ErrorIs(t, err, commands.ErrTextRequired)
}

func TestCommentsAddCommandRequiresParent(t *testing.T) {
	t.Parallel()

	root := commands.NewCommentsCommand()
	cmd := findSubcommand(root, "add")
	assert.NoError(t, cmd.Flags().Set("text", "Looks good"))

	err := cmd.RunE(cmd, nil)
	assert.ErrorIs(t, err, commands.ErrParentRequired)
}
