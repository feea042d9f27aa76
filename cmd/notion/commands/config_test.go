package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge-io/notion-client/cmd/notion/commands"
)

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)
	assert.Equal(t, "Manage CLI configuration", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "unset")
	assert.Contains(t, commandNames, "clear")
}

func TestConfigSetCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewConfigCommand()
	cmd := findSubcommand(root, "set")
	assert.Equal(t, "set KEY VALUE", cmd.Use)
	assert.Equal(t, "Set a configuration value", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestConfigSetCommandRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	root := commands.NewConfigCommand()
	cmd := findSubcommand(root, "set")

	err := cmd.RunE(cmd, []string{"color", "blue"})
	assert.ErrorIs(t, err, commands.ErrUnknownConfigKey)
}

func TestConfigUnsetCommandRejectsUnknownKey(t *testing.T) {
	t.Parallel()

	root := commands.NewConfigCommand()
	cmd := findSubcommand(root, "unset")

	err := cmd.RunE(cmd, []string{"color"})
	assert.ErrorIs(t, err, commands.ErrUnknownConfigKey)
}
