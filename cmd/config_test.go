/*
Copyright © 2025 changheonshin
*/
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPathCommand(t *testing.T) {
	useMemFs(t)
	assert.NoError(t, configPathCmd.RunE(configPathCmd, nil))
}

func TestConfigGetAndSet(t *testing.T) {
	useMemFs(t)

	require.NoError(t, configSetCmd.RunE(configSetCmd, []string{"language", "korean"}))
	assert.NoError(t, configGetCmd.RunE(configGetCmd, []string{"language"}))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "korean", cfg.Language())
}
