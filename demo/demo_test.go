package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylittle/Crucible/scene"
)

func TestLookup(t *testing.T) {
	entry, err := Lookup("bookone")
	require.NoError(t, err)
	assert.Equal(t, "bookone", entry.Name)
	assert.NotNil(t, entry.Build)

	_, err = Lookup("no-such-scene")
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestListIsSorted(t *testing.T) {
	entries := List()
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Name, entries[i].Name)
	}
}

func TestBuildProceduralScenes(t *testing.T) {
	// scenes that need no external assets must build and validate
	for _, name := range []string{"bookone", "checkered", "motionblur", "glow", "orbit", "bounce"} {
		entry, err := Lookup(name)
		require.NoError(t, err, name)

		sc, err := entry.Build(42)
		require.NoError(t, err, name)
		assert.NoError(t, sc.Validate(), name)
	}
}

func TestBuildIsSeedDeterministic(t *testing.T) {
	entry, err := Lookup("bookone")
	require.NoError(t, err)

	sc1, err := entry.Build(7)
	require.NoError(t, err)
	sc2, err := entry.Build(7)
	require.NoError(t, err)

	require.Equal(t, len(sc1.Objects), len(sc2.Objects))
	for i := range sc1.Objects {
		s1, ok1 := sc1.Objects[i].(*scene.Sphere)
		s2, ok2 := sc2.Objects[i].(*scene.Sphere)
		require.Equal(t, ok1, ok2)
		if ok1 {
			assert.Equal(t, s1.CenterAt(0), s2.CenterAt(0))
			assert.Equal(t, s1.Radius, s2.Radius)
		}
	}
}

func TestMovieScenesAnimate(t *testing.T) {
	entry, err := Lookup("orbit")
	require.NoError(t, err)
	sc, err := entry.Build(1)
	require.NoError(t, err)
	assert.True(t, sc.Camera.LookFrom.Animated(), "orbit must animate the camera")

	entry, err = Lookup("bounce")
	require.NoError(t, err)
	sc, err = entry.Build(1)
	require.NoError(t, err)

	ball, err := sc.Lookup("ball")
	require.NoError(t, err)
	sphere, ok := ball.(*scene.Sphere)
	require.True(t, ok)
	assert.True(t, sphere.Center.Animated(), "bounce must animate the ball")
}
