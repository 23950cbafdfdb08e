package content

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"daydream/internal/narrative"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 11, 3, 9, 0, 0, 0, time.UTC) // a Monday

func ids(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.ID
	}
	return out
}

func TestMessages_SecurityPrepend(t *testing.T) {
	id := Identity{UserName: narrative.Protagonist, Team: "D조", Rank: "주임"}

	base := Messages(now, id, false)
	assert.Equal(t, []string{"notice-edu", "notice-parking", "1", SpamMessageID}, ids(base))

	with := Messages(now, id, true)
	require.Len(t, with, len(base)+1)
	assert.Equal(t, SecurityMessageID, with[0].ID)
	assert.Equal(t, ids(base), ids(with[1:]))
	assert.Equal(t, "김솔음 (D조/주임)", with[0].Receiver)
	assert.True(t, strings.HasSuffix(with[0].Body, SecurityEnding))
}

func TestInbox(t *testing.T) {
	st := narrative.DefaultState()
	st.UserName = "이사원"

	assert.Contains(t, ids(Inbox(now, st)), SpamMessageID)

	st.SpamMessageDeleted = true
	assert.NotContains(t, ids(Inbox(now, st)), SpamMessageID)

	st.SecurityMessageTriggered = true
	inbox := Inbox(now, st)
	assert.Equal(t, SecurityMessageID, inbox[0].ID)
	assert.NotContains(t, ids(inbox), SpamMessageID)
}

func TestFindMessage(t *testing.T) {
	msgs := Messages(now, Identity{UserName: "a"}, false)
	m, err := FindMessage(msgs, "1")
	require.NoError(t, err)
	assert.Contains(t, m.Body, "안녕하세요, a님.")

	_, err = FindMessage(msgs, "404")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSpamTexts(t *testing.T) {
	assert.Equal(t, 1176, utf8.RuneCountInString(SpamText))
	assert.True(t, strings.HasSuffix(SpamText, SpamEnding))
	assert.Equal(t, 139, utf8.RuneCountInString(RetypeText))
	assert.Equal(t, byte('\\'), RetypeText[0])
}

func TestNotices(t *testing.T) {
	ns := Notices(now)
	require.Len(t, ns, 3)
	assert.Equal(t, JumpscareNoticeID, ns[0].ID, "pinned notice first")
	assert.Equal(t, SecurityNoticeID, ns[1].ID, "then newest first")
	assert.Equal(t, "2025.10.27", ns[1].Date)

	n, err := FindNotice(now, JumpscareNoticeID)
	require.NoError(t, err)
	assert.True(t, n.Pinned())
	assert.Contains(t, n.Body, "2025.10.31 09:30경")

	_, err = FindNotice(now, "9")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		style DateStyle
		want  string
	}{
		{DateFull, "2025.11.03"},
		{DateShort, "11/3 (월)"},
		{DateTime, "09:00"},
		{DateKorean, "2025년 11월 3일 (월)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(now, tt.style))
	}
	assert.Equal(t, "2025.10.31", Relative(now, -3))
}
