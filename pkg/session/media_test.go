package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaItems_Set(t *testing.T) {
	cases := []struct {
		name     string
		plain    string
		expected MediaItem
		err      string
	}{{
		name:     "named",
		plain:    "video=movies/a.mp4",
		expected: MediaItem{"video", "movies/a.mp4"},
	}, {
		name:     "trimmed",
		plain:    "  audio = sounds/b.mp3 ",
		expected: MediaItem{"audio", "sounds/b.mp3"},
	}, {
		name:     "unnamed",
		plain:    "sounds/c.mp3",
		expected: MediaItem{"c.mp3", "sounds/c.mp3"},
	}, {
		name:  "empty",
		plain: "  ",
		err:   "illegal-media: ",
	}, {
		name:  "noPath",
		plain: "video=",
		err:   "illegal-media: video=",
	}}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var instance MediaItems
			err := instance.Set(c.plain)
			if c.err != "" {
				assert.EqualError(t, err, c.err)
				assert.Empty(t, instance)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, MediaItems{c.expected}, instance)
		})
	}
}

func TestMediaItems_String(t *testing.T) {
	instance := MediaItems{{"video", "a.mp4"}, {"audio", "b.mp3"}}

	assert.Equal(t, []string{"video=a.mp4", "audio=b.mp3"}, instance.Strings())
	assert.Equal(t, "video=a.mp4,audio=b.mp3", instance.String())
	assert.True(t, instance.IsCumulative())
}

func TestMediaItems_Resolve(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x.mp4")
	instance := MediaItems{{"video", "movies/a.mp4"}, {"abs", abs}}

	actual := instance.Resolve("/srv/intro")

	assert.Equal(t, MediaItems{
		{"video", filepath.Join("/srv/intro", "movies", "a.mp4")},
		{"abs", abs},
	}, actual)
	assert.Equal(t, "movies/a.mp4", instance[0].Path)
	assert.Equal(t, instance, instance.Resolve(""))
}

func TestMediaItems_Check(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.mp4")
	require.NoError(t, os.WriteFile(present, []byte("x"), 0600))

	t.Run("allPresent", func(t *testing.T) {
		assert.NoError(t, MediaItems{{"video", present}}.Check())
	})

	t.Run("missingAndDirectory", func(t *testing.T) {
		missing := filepath.Join(dir, "missing.mp3")
		err := MediaItems{
			{"video", present},
			{"audio", missing},
			{"dir", dir},
		}.Check()

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingMedia))

		var mErr *MissingMediaError
		require.True(t, errors.As(err, &mErr))
		assert.Equal(t, []string{missing, dir}, mErr.Missing)
		assert.Equal(t, "missing media: "+missing+", "+dir, err.Error())
	})
}

func TestMediaItems_Check_duplicateNames(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a", "intro.mp4")
	b := filepath.Join(dir, "b", "intro.mp4")
	for _, fn := range []string{a, b} {
		require.NoError(t, os.MkdirAll(filepath.Dir(fn), 0700))
		require.NoError(t, os.WriteFile(fn, []byte("x"), 0600))
	}

	var instance MediaItems
	require.NoError(t, instance.Set(a))
	require.NoError(t, instance.Set(b))
	require.NoError(t, instance.Set("audio="+a))

	err := instance.Check()

	require.ErrorIs(t, err, ErrDuplicateMedia)
	assert.False(t, errors.Is(err, ErrMissingMedia))
	var dErr *DuplicateMediaError
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, []string{"intro.mp4"}, dErr.Names)
	assert.Equal(t, "duplicate media names: intro.mp4", err.Error())
}
