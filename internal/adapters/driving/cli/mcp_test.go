package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_HasPortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "port flag should exist")
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_Long(t *testing.T) {
	assert.Contains(t, mcpServeCmd.Long, "list_extensions")
	assert.Contains(t, mcpServeCmd.Long, "list_go_modules")
	assert.Contains(t, mcpServeCmd.Long, "gate://go-modules")
}
