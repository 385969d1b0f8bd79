package prompt

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/promptline/internal/history"
	"github.com/zjrosen/promptline/internal/keys"
	"github.com/zjrosen/promptline/internal/lineedit"
	"github.com/zjrosen/promptline/internal/log"
)

func typeText(c *Controller, s string) {
	for _, r := range s {
		c.HandleEvent(string(r), keys.Event{})
	}
}

func press(c *Controller, ev keys.Event) {
	c.HandleEvent("", ev)
}

func ctrl(c *Controller, letter string) {
	c.HandleEvent(letter, keys.Event{Ctrl: true})
}

func withText(text string, cursor int) *Controller {
	c := New(Config{})
	c.SetText(text)
	c.SetCursor(cursor)
	return c
}

func TestController_InsertAtCursor(t *testing.T) {
	c := withText("bc", 1)
	c.HandleEvent("a", keys.Event{})
	require.Equal(t, "bac", c.Text())
	require.Equal(t, 2, c.Cursor())
}

func TestController_DeleteWordBeforeAtEnd(t *testing.T) {
	c := withText("hello world", 11)
	press(c, keys.Event{Backspace: true, Meta: true})
	require.Equal(t, "hello ", c.Text())
	require.Equal(t, 6, c.Cursor())
}

func TestController_BackspaceAtStartIsNoOp(t *testing.T) {
	c := withText("abc", 0)
	press(c, keys.Event{Backspace: true})
	require.Equal(t, "abc", c.Text())
	require.Equal(t, 0, c.Cursor())
}

func TestController_ForwardDeleteAtEndIsNoOp(t *testing.T) {
	c := withText("ab", 2)
	c.HandleEvent("\x1b[3~", keys.Event{Delete: true})
	require.Equal(t, "ab", c.Text())
	require.Equal(t, 2, c.Cursor())
}

func TestController_WhitespaceSubmitDropped(t *testing.T) {
	var submitted []string
	nav := history.NewNavigator(nil)
	c := New(Config{History: nav, OnSubmit: func(s string) { submitted = append(submitted, s) }})
	c.SetText("   ")

	press(c, keys.Event{Return: true})
	require.Empty(t, submitted)
	require.Empty(t, nav.Entries())
	require.Equal(t, "   ", c.Text())
}

func TestController_SubmitOrder(t *testing.T) {
	nav := history.NewNavigator(nil)
	var seenHistory []string
	var seenText string
	var c *Controller
	c = New(Config{History: nav, OnSubmit: func(s string) {
		seenText = c.Text()
		seenHistory = nav.Entries()
		require.Equal(t, "run it", s)
	}})

	typeText(c, "run it")
	press(c, keys.Event{Return: true})

	require.Equal(t, "run it", seenText, "buffer is cleared after the callback")
	require.Equal(t, []string{"run it"}, seenHistory, "history is appended before the callback")
	require.Equal(t, "", c.Text())
	require.Equal(t, 0, c.Cursor())
}

func TestController_HistoryRoundTrip(t *testing.T) {
	c := New(Config{})
	for _, s := range []string{"a", "b"} {
		typeText(c, s)
		press(c, keys.Event{Return: true})
	}
	typeText(c, "c")

	var got []string
	for _, ev := range []keys.Event{{UpArrow: true}, {UpArrow: true}, {DownArrow: true}, {DownArrow: true}} {
		press(c, ev)
		got = append(got, c.Text())
	}
	require.Equal(t, []string{"b", "a", "b", "c"}, got)
	require.Equal(t, 1, c.Cursor())
}

func TestController_HistoryRecallPutsCursorAtEnd(t *testing.T) {
	c := New(Config{})
	typeText(c, "echo 😀")
	press(c, keys.Event{Return: true})

	press(c, keys.Event{Name: "up"})
	require.Equal(t, "echo 😀", c.Text())
	require.Equal(t, 6, c.Cursor())
}

func TestController_NothingToNavigateLeavesBuffer(t *testing.T) {
	c := withText("draft", 2)
	press(c, keys.Event{UpArrow: true})
	require.Equal(t, "draft", c.Text())
	require.Equal(t, 2, c.Cursor())

	press(c, keys.Event{DownArrow: true})
	require.Equal(t, "draft", c.Text())
}

func TestController_EditingRecalledEntryDetaches(t *testing.T) {
	nav := history.NewNavigator(nil)
	c := New(Config{History: nav})
	typeText(c, "old")
	press(c, keys.Event{Return: true})
	typeText(c, "draft")

	press(c, keys.Event{UpArrow: true})
	require.True(t, nav.Navigating())

	typeText(c, "!")
	require.False(t, nav.Navigating())
	require.Equal(t, "old!", c.Text())

	press(c, keys.Event{UpArrow: true})
	require.Equal(t, "old", c.Text())
	press(c, keys.Event{DownArrow: true})
	require.Equal(t, "old!", c.Text(), "the edited entry is the new draft")
}

func TestController_CursorMovesDoNotDetach(t *testing.T) {
	nav := history.NewNavigator(nil)
	c := New(Config{History: nav})
	typeText(c, "one two")
	press(c, keys.Event{Return: true})

	press(c, keys.Event{UpArrow: true})
	press(c, keys.Event{LeftArrow: true, Ctrl: true})
	press(c, keys.Event{Name: "home"})
	require.True(t, nav.Navigating())
	require.Equal(t, 0, c.Cursor())
}

func TestController_SetTextWhileBrowsingKeepsDraft(t *testing.T) {
	c := New(Config{})
	typeText(c, "old")
	press(c, keys.Event{Return: true})
	typeText(c, "draft")

	press(c, keys.Event{UpArrow: true})
	c.SetText("replaced")
	press(c, keys.Event{DownArrow: true})
	require.Equal(t, "draft", c.Text())
}

func TestController_CancelClears(t *testing.T) {
	submitted := false
	c := New(Config{OnSubmit: func(string) { submitted = true }})
	typeText(c, "half typed")

	ctrl(c, "c")
	require.Equal(t, "", c.Text())
	require.Equal(t, 0, c.Cursor())
	require.False(t, submitted)

	typeText(c, "x")
	c.HandleEvent("\x03", keys.Event{})
	require.Equal(t, "", c.Text())
}

func TestController_CancelResetsNavigation(t *testing.T) {
	nav := history.NewNavigator(nil)
	c := New(Config{History: nav})
	typeText(c, "a")
	press(c, keys.Event{Return: true})
	press(c, keys.Event{UpArrow: true})

	ctrl(c, "c")
	require.False(t, nav.Navigating())
}

func TestController_Escape(t *testing.T) {
	escaped := 0
	c := New(Config{OnEscape: func() { escaped++ }})
	typeText(c, "keep")

	press(c, keys.Event{Escape: true})
	require.Equal(t, 1, escaped)
	require.Equal(t, "keep", c.Text())
}

func TestController_SpecialKeySuppresses(t *testing.T) {
	var seen []string
	c := New(Config{OnSpecialKey: func(input string, ev keys.Event) bool {
		seen = append(seen, input)
		return input == "q"
	}})

	typeText(c, "aqb")
	require.Equal(t, "ab", c.Text())
	require.Equal(t, []string{"a", "q", "b"}, seen)
}

func TestController_SpecialKeyCannotBlockCancel(t *testing.T) {
	c := New(Config{OnSpecialKey: func(string, keys.Event) bool { return true }})
	c.SetText("text")
	ctrl(c, "c")
	require.Equal(t, "", c.Text())
}

func TestController_Disabled(t *testing.T) {
	submitted := false
	c := New(Config{Disabled: true, OnSubmit: func(string) { submitted = true }})
	c.SetText("abc")
	c.SetCursor(1)

	for _, ev := range []keys.Event{{Return: true}, {Backspace: true}, {UpArrow: true}} {
		press(c, ev)
	}
	typeText(c, "zz")
	ctrl(c, "c")

	require.Equal(t, "abc", c.Text())
	require.Equal(t, 1, c.Cursor())
	require.False(t, submitted)
	require.True(t, c.Disabled())

	c.SetDisabled(false)
	typeText(c, "x")
	require.Equal(t, "axbc", c.Text())
}

func TestController_Multiline(t *testing.T) {
	c := New(Config{Multiline: true})
	require.True(t, c.Multiline())

	typeText(c, "one")
	press(c, keys.Event{Return: true, Shift: true})
	typeText(c, "two")
	require.Equal(t, "one\ntwo", c.Text())

	ctrl(c, "a")
	require.Equal(t, 4, c.Cursor())
	ctrl(c, "k")
	require.Equal(t, "one\n", c.Text())
	require.Equal(t, 4, c.Cursor())

	single := New(Config{})
	typeText(single, "one")
	press(single, keys.Event{Return: true, Shift: true})
	require.Equal(t, "one", single.Text())
}

func TestController_KillKeys(t *testing.T) {
	c := withText("git commit -m", 4)
	ctrl(c, "k")
	require.Equal(t, "git ", c.Text())
	require.Equal(t, 4, c.Cursor())

	c = withText("cd ../src", 9)
	ctrl(c, "w")
	require.Equal(t, "cd ", c.Text())

	c = withText("anything", 3)
	ctrl(c, "x")
	require.Equal(t, "", c.Text())
	require.Equal(t, 0, c.Cursor())
}

func TestController_CharMovesClamp(t *testing.T) {
	c := withText("ab", 0)
	press(c, keys.Event{LeftArrow: true})
	require.Equal(t, 0, c.Cursor())

	c.SetCursor(2)
	press(c, keys.Event{RightArrow: true})
	require.Equal(t, 2, c.Cursor())
}

func TestController_SetTextClampsCursor(t *testing.T) {
	c := withText("hello", 5)
	c.SetText("hi")
	require.Equal(t, 2, c.Cursor())

	c.SetCursor(-4)
	require.Equal(t, 0, c.Cursor())
	c.SetCursor(99)
	require.Equal(t, 2, c.Cursor())
}

func TestController_InsertAtCursorMethod(t *testing.T) {
	c := withText("ac", 1)
	c.InsertAtCursor("b")
	require.Equal(t, "abc", c.Text())
	require.Equal(t, 2, c.Cursor())
}

func TestController_ResetHistory(t *testing.T) {
	nav := history.NewNavigator(nil)
	c := New(Config{History: nav})
	typeText(c, "a")
	press(c, keys.Event{Return: true})
	press(c, keys.Event{UpArrow: true})

	c.ResetHistory()
	require.False(t, nav.Navigating())
	require.Equal(t, "a", c.Text(), "buffer is untouched")
}

func TestController_ResetHistoryKeepsBufferAsDraft(t *testing.T) {
	nav := history.NewNavigator(nil)
	nav.Add("older")
	c := New(Config{History: nav})
	typeText(c, "work in progress")

	c.ResetHistory()
	press(c, keys.Event{UpArrow: true})
	require.Equal(t, "older", c.Text())
	press(c, keys.Event{DownArrow: true})
	require.Equal(t, "work in progress", c.Text())

	// Reset while browsing: the recalled entry shown becomes the draft.
	press(c, keys.Event{UpArrow: true})
	c.ResetHistory()
	press(c, keys.Event{UpArrow: true})
	press(c, keys.Event{DownArrow: true})
	require.Equal(t, "older", c.Text())
}

func TestController_SetTextThenBrowseRestoresText(t *testing.T) {
	nav := history.NewNavigator(nil)
	nav.Add("older")
	c := New(Config{History: nav})
	c.SetText("set by host")
	c.ResetHistory()

	press(c, keys.Event{UpArrow: true})
	press(c, keys.Event{DownArrow: true})
	require.Equal(t, "set by host", c.Text())
	require.Equal(t, lineedit.GraphemeCount("set by host"), c.Cursor())
}

func TestController_Paste(t *testing.T) {
	c := New(Config{})
	c.HandleEvent("line1\r\nline2", keys.Event{Paste: true})
	require.Equal(t, "line1\nline2", c.Text())
	require.Equal(t, 11, c.Cursor())
}

// TestProperty_CursorInRange drives random events and checks the cursor
// never leaves the buffer.
func TestProperty_CursorInRange(t *testing.T) {
	events := []struct {
		input string
		ev    keys.Event
	}{
		{"a", keys.Event{}},
		{" ", keys.Event{}},
		{"😀", keys.Event{}},
		{"\u0301", keys.Event{}},
		{".", keys.Event{}},
		{"", keys.Event{Return: true}},
		{"", keys.Event{Return: true, Shift: true}},
		{"", keys.Event{UpArrow: true}},
		{"", keys.Event{DownArrow: true}},
		{"", keys.Event{LeftArrow: true}},
		{"", keys.Event{RightArrow: true}},
		{"", keys.Event{LeftArrow: true, Ctrl: true}},
		{"", keys.Event{RightArrow: true, Ctrl: true}},
		{"", keys.Event{Name: "home"}},
		{"", keys.Event{Name: "end"}},
		{"", keys.Event{Backspace: true}},
		{"", keys.Event{Backspace: true, Meta: true}},
		{"\x1b[3~", keys.Event{Delete: true}},
		{"d", keys.Event{Ctrl: true}},
		{"k", keys.Event{Ctrl: true}},
		{"u", keys.Event{Ctrl: true}},
		{"w", keys.Event{Ctrl: true}},
		{"x", keys.Event{Ctrl: true}},
		{"c", keys.Event{Ctrl: true}},
	}

	rapid.Check(t, func(t *rapid.T) {
		c := New(Config{Multiline: true})
		steps := rapid.SliceOfN(rapid.IntRange(0, len(events)-1), 1, 60).Draw(t, "steps")
		for _, i := range steps {
			e := events[i]
			c.HandleEvent(e.input, e.ev)
			n := lineedit.GraphemeCount(c.Text())
			require.GreaterOrEqual(t, c.Cursor(), 0)
			require.LessOrEqual(t, c.Cursor(), n)
		}
	})
}

// TestProperty_BackspaceThenReinsert checks that deleting the cluster before
// the cursor and typing it again restores buffer and cursor.
func TestProperty_BackspaceThenReinsert(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z .é日]{1,12}`).Draw(t, "text")
		n := lineedit.GraphemeCount(text)
		pos := rapid.IntRange(1, n).Draw(t, "pos")

		c := withText(text, pos)
		deleted := lineedit.GraphemeAt(text, pos-1)
		press(c, keys.Event{Backspace: true})
		c.HandleEvent(deleted, keys.Event{})

		require.Equal(t, text, c.Text())
		require.Equal(t, pos, c.Cursor())
	})
}

func TestController_LogsClassifiedKeys(t *testing.T) {
	var buf bytes.Buffer
	log.SetDefault(log.NewLogger(&buf, nil))
	t.Cleanup(func() { log.SetDefault(nil) })

	c := New(Config{})
	typeText(c, "a")
	press(c, keys.Event{LeftArrow: true})

	require.Contains(t, buf.String(), "Key classified action=insert mutates=true cursor=0")
	require.Contains(t, buf.String(), "Key classified action=char.left mutates=false cursor=1")
}
