package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageforge-io/notion-client/cmd/notion/commands"
)

func TestConfigFlagIsBound(t *testing.T) {
	require.NoError(t, rootCmd.PersistentFlags().Set("config", "/tmp/alt-config.yml"))
	assert.Equal(t, "/tmp/alt-config.yml", viper.GetString("config"))
}

func TestOutputFlagDefault(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, commands.OutputFormatTable, flag.DefValue)
}
