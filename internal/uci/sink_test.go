package uci

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCollectsInOrder(t *testing.T) {
	var buf bytes.Buffer
	rec := &Recorder{Out: &buf}

	require.NoError(t, rec.Emit(DefineSection("network", "lan", "interface")))
	require.NoError(t, rec.Emit(Set("network", "lan", "ipaddr", "192.168.1.1")))
	require.NoError(t, rec.Emit(Commit()))

	require.Len(t, rec.Commands, 3)
	assert.Equal(t, OpCommit, rec.Commands[2].Op)
	assert.Equal(t, rec.Lines(), strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"))
}

func TestExecutorIssuesCommands(t *testing.T) {
	runner := new(MockCommandRunner)
	runner.On("Run", "uci", "set", "network.lan.ipaddr=192.168.1.1").Return(nil)

	exec := &Executor{Runner: runner}
	err := exec.Emit(Set("network", "lan", "ipaddr", "192.168.1.1"))

	require.NoError(t, err)
	runner.AssertExpectations(t)
}

func TestExecutorSurfacesFirstFailureVerbatim(t *testing.T) {
	runner := new(MockCommandRunner)
	storeErr := errors.New("Invalid argument")
	runner.On("Run", "uci", "set", "network.bad.ipaddr=nonsense").Return(storeErr)

	exec := &Executor{Runner: runner}
	err := exec.Emit(Set("network", "bad", "ipaddr", "nonsense"))

	require.Error(t, err)
	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "uci set network.bad.ipaddr='nonsense'")
	assert.ErrorIs(t, err, storeErr)
}

func TestScriptRendering(t *testing.T) {
	script := NewScript()
	require.NoError(t, script.Emit(Set("network", "lan", "proto", "static")))
	require.NoError(t, script.Emit(Commit()))

	out := script.String()
	assert.True(t, strings.HasPrefix(out, "#!/bin/sh\n"), "script must be shell-executable")
	assert.Contains(t, out, "set -e")
	assert.Contains(t, out, "uci set network.lan.proto='static'\n")
	assert.True(t, strings.HasSuffix(out, "uci commit\n"))
}
