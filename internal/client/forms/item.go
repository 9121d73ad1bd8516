// Package forms holds the editable buffers behind the create, edit, login and
// register prompts, with the client-side checks that run before any request.
package forms

import (
	"errors"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/session"
)

var ErrDuplicateTag = errors.New("tag already added")

// notBlank rejects whitespace-only strings. validation.Required alone lets
// them through.
var notBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.NewError("validation_not_blank", "cannot be blank"),
)

// ItemForm is the buffer behind the create and edit prompts.
type ItemForm struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
	Tags        []string        `json:"tags"`
	Mentions    []string        `json:"mentions"`
}

// NewItemForm returns an empty create form with the default priority.
func NewItemForm() *ItemForm {
	return &ItemForm{Priority: models.DefaultPriority}
}

// EditForm preloads the form from an existing item. Mentions become
// usernames.
func EditForm(item models.Item) *ItemForm {
	return &ItemForm{
		Title:       item.Title,
		Description: item.Description,
		Priority:    item.Priority,
		Tags:        append([]string{}, item.Tags...),
		Mentions:    item.MentionUsernames(),
	}
}

// CommitTag adds a trimmed tag. Blank input is ignored.
func (f *ItemForm) CommitTag(input string) error {
	tag := strings.TrimSpace(input)
	if tag == "" {
		return nil
	}
	if slices.Contains(f.Tags, tag) {
		return ErrDuplicateTag
	}
	f.Tags = append(f.Tags, tag)
	return nil
}

func (f *ItemForm) RemoveTag(tag string) {
	f.Tags = slices.DeleteFunc(f.Tags, func(t string) bool { return t == tag })
}

// AddMention adds username once. Reports whether it was added.
func (f *ItemForm) AddMention(username string) bool {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" || slices.Contains(f.Mentions, username) {
		return false
	}
	f.Mentions = append(f.Mentions, username)
	return true
}

func (f *ItemForm) RemoveMention(username string) {
	username = strings.TrimPrefix(username, "@")
	f.Mentions = slices.DeleteFunc(f.Mentions, func(m string) bool { return m == username })
}

// Validate returns validation.Errors keyed by field name.
func (f *ItemForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Required, notBlank, validation.Length(1, 200)),
		validation.Field(&f.Description, validation.Required, notBlank),
		validation.Field(&f.Priority, validation.Required,
			validation.In(models.PriorityLow, models.PriorityMedium, models.PriorityHigh).Error("must be one of low, medium, high")),
	)
}

// Draft returns the request body for the form. Call Validate first.
func (f *ItemForm) Draft() models.ItemDraft {
	return models.ItemDraft{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Priority:    f.Priority,
		Tags:        append([]string{}, f.Tags...),
		Mentions:    append([]string{}, f.Mentions...),
	}
}

// MentionOptions is the mention picker's list: everyone except the signed-in
// user. Matching is by id, or by username when the token carries no id.
func MentionOptions(users []models.UserRef, self session.CurrentUser) []models.UserRef {
	out := make([]models.UserRef, 0, len(users))
	for _, u := range users {
		if self.ID != "" && u.ID == self.ID {
			continue
		}
		if self.ID == "" && self.Username != "" && u.Username == self.Username {
			continue
		}
		out = append(out, u)
	}
	return out
}

// FieldErrors flattens a validation error into field -> message pairs for
// display. Anything that is not validation.Errors comes back under "".
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		out[field] = e.Error()
	}
	return out
}
