//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQuitFromGateway(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.LoggedIn())
	require.NoError(t, tf.StartDesk())
	require.True(t, tf.Ready())

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	tf.SendKeys("q")

	select {
	case err := <-done:
		require.NoError(t, err, "q should exit cleanly")
	case <-time.After(2 * time.Second):
		tf.SendCtrlC()
		t.Fatal("Application did not exit on q")
	}
	tf.cmd = nil
}

func TestStartWithoutLogin(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.StartBackend()
	require.NoError(t, err)
	require.NoError(t, tf.WriteConfig())

	out, err := tf.Run("")
	require.Error(t, err)
	require.Contains(t, out, "not logged in")
}
