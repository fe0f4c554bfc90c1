package session

import (
	"testing"

	"pictriage/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(items ...string) *Session {
	return New(items)
}

func TestEmptySessionIsDone(t *testing.T) {
	s := newSession()
	assert.True(t, s.Done())
	_, ok := s.Current()
	assert.False(t, ok)

	assert.Equal(t, EffectNone, s.Apply(Command{Kind: CmdCategorize, Category: "keep"}))
	assert.Equal(t, EffectNone, s.Apply(Command{Kind: CmdPromptCustomName}))
	assert.Equal(t, EffectQuit, s.Apply(Command{Kind: CmdQuit}))
}

func TestCursorMotionClamps(t *testing.T) {
	s := newSession("a.jpg", "b.jpg", "c.jpg")

	assert.Equal(t, EffectNone, s.Apply(Command{Kind: CmdPrevious}), "already at the start")

	assert.Equal(t, EffectRedisplay, s.Apply(Command{Kind: CmdNext}))
	assert.Equal(t, EffectRedisplay, s.Apply(Command{Kind: CmdNext}))
	cur, _ := s.Current()
	assert.Equal(t, "c.jpg", cur)

	assert.Equal(t, EffectNone, s.Apply(Command{Kind: CmdNext}), "already at the end")

	assert.Equal(t, EffectRedisplay, s.Apply(Command{Kind: CmdPrevious}))
	cur, _ = s.Current()
	assert.Equal(t, "b.jpg", cur)
}

func TestRotationAccumulatesAndResets(t *testing.T) {
	s := newSession("a.jpg", "b.jpg")

	s.Apply(Command{Kind: CmdRotateCW})
	s.Apply(Command{Kind: CmdRotateCW})
	assert.Equal(t, 180, s.Rotation())

	s.Apply(Command{Kind: CmdRotateCCW})
	assert.Equal(t, 90, s.Rotation())

	s.Apply(Command{Kind: CmdRotateCCW})
	s.Apply(Command{Kind: CmdRotateCCW})
	assert.Equal(t, 270, s.Rotation(), "counterclockwise wraps")

	s.Apply(Command{Kind: CmdNext})
	assert.Equal(t, 0, s.Rotation(), "motion resets rotation")
}

func TestCompleteRemovesCurrentItem(t *testing.T) {
	s := newSession("a.jpg", "b.jpg", "c.jpg")

	s.Apply(Command{Kind: CmdNext})
	s.Complete()

	assert.Equal(t, 2, s.Len())
	cur, _ := s.Current()
	assert.Equal(t, "c.jpg", cur, "cursor stays in place, next item slides in")
}

func TestCompleteClampsCursorAtEnd(t *testing.T) {
	s := newSession("a.jpg", "b.jpg")

	s.Apply(Command{Kind: CmdNext})
	s.Complete()

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "a.jpg", cur)

	s.Complete()
	assert.True(t, s.Done())

	s.Complete() // no-op in the terminal state
	assert.True(t, s.Done())
}

func TestCompleteResetsRotation(t *testing.T) {
	s := newSession("a.jpg", "b.jpg")
	s.Apply(Command{Kind: CmdRotateCW})
	s.Complete()
	assert.Equal(t, 0, s.Rotation())
}

func TestCustomNameLifecycle(t *testing.T) {
	s := newSession("a.jpg", "b.jpg")

	_, ok := s.CustomName()
	assert.False(t, ok)

	s.SetCustomName("sunset")
	name, ok := s.CustomName()
	require.True(t, ok)
	assert.Equal(t, "sunset", name)

	// The assignment follows the item, not the cursor.
	s.Apply(Command{Kind: CmdNext})
	_, ok = s.CustomName()
	assert.False(t, ok)
	s.Apply(Command{Kind: CmdPrevious})
	name, ok = s.CustomName()
	require.True(t, ok)
	assert.Equal(t, "sunset", name)

	s.SetCustomName("")
	_, ok = s.CustomName()
	assert.False(t, ok, "empty text clears the assignment")
}

func TestCompleteDropsCustomName(t *testing.T) {
	s := newSession("a.jpg")
	s.SetCustomName("sunset")
	s.Complete()

	s.Append("a.jpg")
	_, ok := s.CustomName()
	assert.False(t, ok, "a re-discovered path starts clean")
}

func TestAppend(t *testing.T) {
	s := newSession("a.jpg")

	assert.True(t, s.Append("b.jpg"))
	assert.False(t, s.Append("b.jpg"), "duplicates are ignored")
	assert.Equal(t, 2, s.Len())
}

func TestNewCopiesWorklist(t *testing.T) {
	items := []string{"a.jpg", "b.jpg"}
	s := New(items)
	items[0] = "mutated.jpg"

	cur, _ := s.Current()
	assert.Equal(t, "a.jpg", cur)
}

func TestKeyCommand(t *testing.T) {
	cfg := config.New()
	cfg.Categories["family"] = "f"
	cfg.Categories["family/kids"] = "k"

	for _, tc := range []struct {
		key  string
		want Command
	}{
		{"n", Command{Kind: CmdNext}},
		{"p", Command{Kind: CmdPrevious}},
		{"q", Command{Kind: CmdQuit}},
		{"r", Command{Kind: CmdRotateCW}},
		{"e", Command{Kind: CmdRotateCCW}},
		{"enter", Command{Kind: CmdPromptCustomName}},
		{"f", Command{Kind: CmdCategorize, Category: "family"}},
		{"k", Command{Kind: CmdCategorize, Category: "family/kids"}},
		{"delete", Command{Kind: CmdCategorize, Category: config.DeletedCategory}},
		{"backspace", Command{Kind: CmdCategorize, Category: config.DeletedCategory}},
	} {
		cmd, ok := KeyCommand(cfg, tc.key)
		require.True(t, ok, "key %q", tc.key)
		assert.Equal(t, tc.want, cmd, "key %q", tc.key)
	}

	_, ok := KeyCommand(cfg, "z")
	assert.False(t, ok)

	_, ok = KeyCommand(cfg, "N")
	assert.False(t, ok, "matching is case sensitive")
}

func TestKeyCommandDeleteOverridesConfiguredBind(t *testing.T) {
	cfg := config.New()
	cfg.Categories["archive"] = "delete"

	cmd, ok := KeyCommand(cfg, "delete")
	require.True(t, ok)
	assert.Equal(t, config.DeletedCategory, cmd.Category, "hardware delete always wins")
}
