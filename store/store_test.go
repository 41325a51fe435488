package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndListConversations(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	older, err := s.AddConversation("Ada", "ada@example.com", "Billing question", StatusOpen, now.Add(-time.Hour))
	require.NoError(t, err)
	newer, err := s.AddConversation("Grace", "grace@example.com", "Feature request", StatusOpen, now)
	require.NoError(t, err)

	list, err := s.ListConversations("", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	// Newest-first ordering.
	assert.Equal(t, newer, list[0].ID)
	assert.Equal(t, older, list[1].ID)
}

func TestListConversations_StatusAndSearchFilters(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	_, err := s.AddConversation("Ada", "", "Billing question", StatusOpen, now)
	require.NoError(t, err)
	_, err = s.AddConversation("Grace", "", "Login broken", StatusClosed, now)
	require.NoError(t, err)

	open, err := s.ListConversations(StatusOpen, "")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Ada", open[0].CustomerName)

	found, err := s.ListConversations("", "login")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Grace", found[0].CustomerName)

	none, err := s.ListConversations(StatusOpen, "login")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUnreadCountsAndMarkRead(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	id, err := s.AddConversation("Ada", "", "Billing", StatusOpen, now)
	require.NoError(t, err)

	require.NoError(t, s.AddMessage(id, AuthorCustomer, "hello?", now.Add(-2*time.Minute), false))
	require.NoError(t, s.AddMessage(id, AuthorCustomer, "anyone there?", now.Add(-time.Minute), false))
	// Agent messages never count as unread.
	require.NoError(t, s.AddMessage(id, AuthorAgent, "on it", now, false))

	list, err := s.ListConversations("", "")
	require.NoError(t, err)
	assert.Equal(t, 2, list[0].Unread)
	assert.Equal(t, "on it", list[0].LastMessage)

	total, err := s.UnreadTotal()
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	require.NoError(t, s.MarkRead(id))
	total, err = s.UnreadTotal()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUnreadTotal_ExcludesClosed(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	id, err := s.AddConversation("Ada", "", "Billing", StatusClosed, now)
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(id, AuthorCustomer, "ping", now, false))

	total, err := s.UnreadTotal()
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMessages_TranscriptOrder(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	id, err := s.AddConversation("Ada", "", "Billing", StatusOpen, now)
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(id, AuthorCustomer, "first", now.Add(-2*time.Minute), true))
	require.NoError(t, s.AddMessage(id, AuthorAgent, "second", now.Add(-time.Minute), true))
	require.NoError(t, s.AddMessage(id, AuthorCustomer, "third", now, false))

	msgs, err := s.Messages(id)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "third", msgs[2].Body)
	assert.False(t, msgs[2].Read)
}

func TestSetStatus(t *testing.T) {
	s := newTestStore(t)
	id, err := s.AddConversation("Ada", "", "Billing", StatusOpen, time.Now())
	require.NoError(t, err)
	require.NoError(t, s.SetStatus(id, StatusSnoozed))

	c, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusSnoozed, c.Status)
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Seed())

	list, err := s.ListConversations("", "")
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	total, err := s.UnreadTotal()
	require.NoError(t, err)
	assert.Greater(t, total, 0, "seed data should include unread messages")
}
