package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageforge-io/notion-client/cmd/notion/commands"
)

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewVersionCommand("1.2.3", "abc1234", "2026-08-24")
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Display version information", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

func TestNewLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)
	assert.Equal(t, "Login to Notion", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	tokenFlag := cmd.Flags().Lookup("token")
	assert.NotNil(t, tokenFlag)
	assert.Equal(t, "t", tokenFlag.Shorthand)
}

func TestNewLogoutCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLogoutCommand()
	assert.Equal(t, "logout", cmd.Use)
	assert.Equal(t, "Logout from Notion", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}
