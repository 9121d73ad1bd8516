package forms

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/session"
)

func TestNewItemForm_Defaults(t *testing.T) {
	f := NewItemForm()
	assert.Equal(t, models.PriorityMedium, f.Priority)
	assert.Empty(t, f.Tags)
	assert.Empty(t, f.Mentions)
}

func TestEditForm_MapsMentionsToUsernames(t *testing.T) {
	item := models.Item{
		ID:          "t1",
		Title:       "Ship",
		Description: "v1",
		Priority:    models.PriorityHigh,
		Tags:        []string{"work"},
		Mentions:    []models.UserRef{{ID: "u2", Username: "bob"}, {ID: "u3", Username: "cy"}},
	}

	f := EditForm(item)
	want := &ItemForm{Title: "Ship", Description: "v1", Priority: models.PriorityHigh, Tags: []string{"work"}, Mentions: []string{"bob", "cy"}}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Fatalf("EditForm mismatch (-want +got):\n%s", diff)
	}

	f.Tags[0] = "home"
	assert.Equal(t, "work", item.Tags[0], "form must not alias the item")
}

func TestCommitTag(t *testing.T) {
	f := NewItemForm()

	require.NoError(t, f.CommitTag("  work "))
	require.NoError(t, f.CommitTag("   "))
	require.ErrorIs(t, f.CommitTag("work"), ErrDuplicateTag)
	require.NoError(t, f.CommitTag("home"))

	assert.Equal(t, []string{"work", "home"}, f.Tags)

	f.RemoveTag("work")
	assert.Equal(t, []string{"home"}, f.Tags)
}

func TestMentions(t *testing.T) {
	f := NewItemForm()

	assert.True(t, f.AddMention("bob"))
	assert.False(t, f.AddMention("@bob"))
	assert.True(t, f.AddMention("@cy"))
	assert.False(t, f.AddMention(" "))
	assert.Equal(t, []string{"bob", "cy"}, f.Mentions)

	f.RemoveMention("@bob")
	assert.Equal(t, []string{"cy"}, f.Mentions)
}

func TestMentionOptions_ExcludesSelf(t *testing.T) {
	users := []models.UserRef{
		{ID: "u1", Username: "ann"},
		{ID: "u2", Username: "bob"},
	}

	got := MentionOptions(users, session.CurrentUser{ID: "u1"})
	assert.Equal(t, []models.UserRef{{ID: "u2", Username: "bob"}}, got)

	got = MentionOptions(users, session.CurrentUser{Username: "bob"})
	assert.Equal(t, []models.UserRef{{ID: "u1", Username: "ann"}}, got)

	assert.Len(t, MentionOptions(users, session.CurrentUser{}), 2)
}

func TestMentionOptions_FromToken(t *testing.T) {
	users := []models.UserRef{
		{ID: "u1", Username: "ann"},
		{ID: "u2", Username: "bob"},
	}
	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
		require.NoError(t, err)
		return s
	}

	for _, claims := range []jwt.MapClaims{
		{"id": "u1", "username": "ann"},
		{"username": "ann"},
	} {
		self, err := session.DecodeClaims(sign(claims))
		require.NoError(t, err)
		assert.Equal(t, []models.UserRef{{ID: "u2", Username: "bob"}}, MentionOptions(users, self))
	}
}

func TestItemForm_Validate(t *testing.T) {
	f := NewItemForm()
	f.Title = "Write report"
	f.Description = "   "

	fields := FieldErrors(f.Validate())
	require.Contains(t, fields, "description")
	assert.NotContains(t, fields, "title")

	f.Description = "quarterly numbers"
	f.Priority = "urgent"
	fields = FieldErrors(f.Validate())
	assert.Equal(t, map[string]string{"priority": "must be one of low, medium, high"}, fields)

	f.Priority = models.PriorityLow
	assert.NoError(t, f.Validate())
}

func TestItemForm_Draft(t *testing.T) {
	f := NewItemForm()
	f.Title = "  Title "
	f.Description = " body "
	require.NoError(t, f.CommitTag("x"))
	f.AddMention("bob")

	assert.Equal(t, models.ItemDraft{
		Title:       "Title",
		Description: "body",
		Priority:    models.PriorityMedium,
		Tags:        []string{"x"},
		Mentions:    []string{"bob"},
	}, f.Draft())
}
