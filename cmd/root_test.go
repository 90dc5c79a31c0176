package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"investigate", "quick", "investigations", "export", "serve", "migrate"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "recon", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestInvestigateCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"objective", "priority", "urgency", "depth", "risk", "require", "json"} {
		flag := investigateCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "investigate should have --%s flag", flagName)
	}

	urgency := investigateCmd.Flags().Lookup("urgency")
	require.NotNil(t, urgency)
	assert.Equal(t, "standard", urgency.DefValue)
}

func TestInvestigationsCommand_HasSubcommands(t *testing.T) {
	cmds := investigationsCmd.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"list", "show", "status", "cancel", "purge"}
	for _, name := range expected {
		assert.True(t, names[name], "investigations should have subcommand %q", name)
	}
}

func TestExportCommand_Flags(t *testing.T) {
	flag := exportCmd.Flags().Lookup("format")
	require.NotNil(t, flag, "export should have --format flag")
	assert.Equal(t, "json", flag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
