//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrillIntoStatementAndBack(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.LoggedIn())
	require.NoError(t, tf.StartDesk())
	require.True(t, tf.Ready(), "Should show the gateway")
	require.True(t, tf.SeePlain("Verma Traders"), "Should show the company name")

	tf.SendKeys("l")
	require.True(t, tf.SeePlain("Sharma Traders"), "Ledgers should load from the backend")

	// Sorted by name: Capital, Cash, Gupta Suppliers...
	tf.Down()
	tf.Enter()
	require.True(t, tf.SeePlain("Closing balance"), "Enter should open the statement")
	require.True(t, tf.SeePlain("Cash-in-Hand"), "Statement should name the group")

	mark := tf.Mark()
	tf.Esc()
	require.True(t, tf.SeeAfter(mark, "Press / to filter"), "Esc should return to the ledgers")

	mark = tf.Mark()
	tf.Esc()
	require.True(t, tf.SeeAfter(mark, "Amount in Words"), "Esc should return to the gateway")
}

func TestDayBookPaging(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.LoggedIn())
	require.NoError(t, tf.StartDesk())
	require.True(t, tf.Ready())

	tf.SendKeys("d")
	require.True(t, tf.SeePlain("page 1 of 3"), "Day book should show the first page")

	tf.SendKeys("[")
	require.True(t, tf.SeePlain("Already on the first page"))

	tf.SendKeys("]")
	require.True(t, tf.SeePlain("page 2 of 3"), "] should turn the page")
}

func TestTrialBalanceTallies(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.LoggedIn())
	require.NoError(t, tf.StartDesk())
	require.True(t, tf.Ready())

	tf.SendKeys("t")
	require.True(t, tf.SeePlain("tallied"), "Seeded book should balance")
}
