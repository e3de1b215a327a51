//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func samplePosts() []cmsPost {
	return []cmsPost{
		{ID: 1, Title: "Hello World", Subtype: "post"},
		{ID: 2, Title: "Hello Again", Subtype: "page"},
		{ID: 3, Title: "Unrelated", Subtype: "post"},
	}
}

func TestSearchAndPick(t *testing.T) {
	t.Parallel()
	cms := NewFakeCMS(samplePosts()...)
	defer cms.Close()

	tf := NewTUITest(t)
	defer tf.Cleanup()

	cfgPath, err := tf.WriteConfig(cms, "")
	require.NoError(t, err)
	require.NoError(t, tf.StartApp("--config", cfgPath))
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.NoError(t, tf.Type("hello"))
	require.True(t, tf.SeePlain("Hello Again"), "Should list matching results")

	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlain("You have selected the following item:"))

	require.Eventually(t, func() bool {
		return strings.Contains(tf.Selection(), "id = 1")
	}, 3*time.Second, 50*time.Millisecond, "selection should be saved")
	require.NotContains(t, tf.Selection(), "id = 2")
}

func TestReorderSavesNewOrder(t *testing.T) {
	t.Parallel()
	cms := NewFakeCMS(samplePosts()...)
	defer cms.Close()

	tf := NewTUITest(t)
	defer tf.Cleanup()

	cfgPath, err := tf.WriteConfig(cms, "\n[picker]\nmax_items = 0\norderable = true\n")
	require.NoError(t, err)
	require.NoError(t, tf.WriteSelection(`version = 1

[[items]]
id = 1
type = "post"
uuid = "first"
title = "Hello World"

[[items]]
id = 2
type = "page"
uuid = "second"
title = "Hello Again"
`))

	require.NoError(t, tf.StartApp("--config", cfgPath))
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("You have selected the following items:"))

	require.NoError(t, tf.MoveDown())

	require.Eventually(t, func() bool {
		sel := tf.Selection()
		second, first := strings.Index(sel, "second"), strings.Index(sel, "first")
		return second >= 0 && first > second
	}, 3*time.Second, 50*time.Millisecond, "second item should be saved first")
}

func TestDeletedItemIsDropped(t *testing.T) {
	t.Parallel()
	cms := NewFakeCMS(samplePosts()...)
	defer cms.Close()
	cms.Delete(2)

	tf := NewTUITest(t)
	defer tf.Cleanup()

	cfgPath, err := tf.WriteConfig(cms, "\n[picker]\nmax_items = 0\n")
	require.NoError(t, err)
	require.NoError(t, tf.WriteSelection(`version = 1

[[items]]
id = 1
type = "post"
uuid = "kept"
title = "Hello World"

[[items]]
id = 2
type = "page"
uuid = "gone"
title = "Hello Again"
`))

	require.NoError(t, tf.StartApp("--config", cfgPath))
	require.True(t, tf.Ready(), "Should receive ready signal")

	require.Eventually(t, func() bool {
		sel := tf.Selection()
		return strings.Contains(sel, "kept") && !strings.Contains(sel, "gone")
	}, 5*time.Second, 50*time.Millisecond, "missing item should be removed")
}

func TestInvalidConfigExits(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.StartApp())

	require.True(t, tf.SeePlain("api.base_url is required"), "Should report the missing base URL")
}
