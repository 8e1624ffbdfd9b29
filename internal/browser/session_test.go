package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Awaveform/insider-one-assessment/internal/common"
)

func TestResolveExecPath(t *testing.T) {
	path, err := resolveExecPath(common.BrowserConfig{Name: "chrome"})
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = resolveExecPath(common.BrowserConfig{Name: "chromium"})
	require.NoError(t, err)
	assert.Equal(t, "chromium", path)

	path, err = resolveExecPath(common.BrowserConfig{Name: "edge"})
	require.NoError(t, err)
	assert.Equal(t, "microsoft-edge", path)

	// Explicit path wins over the name mapping.
	path, err = resolveExecPath(common.BrowserConfig{Name: "edge", ExecPath: "/opt/edge/msedge"})
	require.NoError(t, err)
	assert.Equal(t, "/opt/edge/msedge", path)

	_, err = resolveExecPath(common.BrowserConfig{Name: "safari"})
	assert.Error(t, err)
}
