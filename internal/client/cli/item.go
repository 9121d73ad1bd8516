package cli

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/client/controller"
	"github.com/dmitrijs2005/gophtodo/internal/client/forms"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/dmitrijs2005/gophtodo/internal/client/view"
)

// clearValue empties tags or mentions when editing.
const clearValue = "-"

// Add walks through the create form. Nothing is sent unless the form
// validates.
func (a *App) Add(ctx context.Context) error {
	form := forms.NewItemForm()
	if err := a.fillItemForm(form, false); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		a.println(view.FieldErrors(forms.FieldErrors(err)))
		return err
	}

	item, err := a.ctl.CreateItem(ctx, form.Draft())
	if err != nil {
		if a.LoggedIn() {
			a.println(view.ErrorBanner(a.ctl.State().Error))
		}
		return err
	}
	a.printf("Created %q (%s)\n", item.Title, item.ID)
	a.showBoard()
	return nil
}

// Edit loads item id into the form; empty answers keep the current values.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("edit <id>")
	}
	item, err := a.ctl.Lookup(ctx, args[0])
	if err != nil {
		a.itemError()
		return err
	}

	form := forms.EditForm(item)
	if err := a.fillItemForm(form, true); err != nil {
		return err
	}
	if err := form.Validate(); err != nil {
		a.println(view.FieldErrors(forms.FieldErrors(err)))
		return err
	}

	if _, err := a.ctl.UpdateItem(ctx, item.ID, form.Draft().Patch()); err != nil {
		a.itemError()
		return err
	}
	a.println("Updated.")
	a.showBoard()
	return nil
}

// Show opens the detail view of id.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("show <id>")
	}
	item, err := a.ctl.OpenDetail(ctx, args[0])
	if err != nil {
		a.itemError()
		return err
	}
	a.println(a.render.DetailView(item))
	return nil
}

func (a *App) CloseDetail(context.Context) error {
	a.ctl.CloseDetail()
	a.showBoard()
	return nil
}

// Note appends a note to the open item. Without inline text the note is read
// as multiple lines.
func (a *App) Note(ctx context.Context, args []string) error {
	if a.ctl.State().Detail == nil {
		a.println(view.ErrorBanner("Open a todo with 'show <id>' first."))
		return controller.ErrNoDetail
	}

	content := strings.Join(args, " ")
	if content == "" {
		var err error
		content, err = GetMultiline(a.reader, "Enter note", a.out)
		if err != nil {
			return err
		}
	}

	item, err := a.ctl.AddNote(ctx, content)
	if err != nil {
		a.itemError()
		return err
	}
	a.println(a.render.DetailView(item))
	return nil
}

// Done flips the completed flag of id.
func (a *App) Done(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("done <id>")
	}
	item, err := a.ctl.ToggleCompleted(ctx, args[0])
	if err != nil {
		a.itemError()
		return err
	}
	if item.Completed {
		a.printf("Completed %q\n", item.Title)
	} else {
		a.printf("Reopened %q\n", item.Title)
	}
	a.showBoard()
	return nil
}

// Delete removes id after a y/N confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("delete <id>")
	}
	deleted, err := a.ctl.DeleteItem(ctx, args[0])
	if err != nil {
		a.itemError()
		return err
	}
	if !deleted {
		a.println("Cancelled.")
		return nil
	}
	a.println("Deleted.")
	a.showBoard()
	return nil
}

// itemError prints the controller's last error unless the session was just
// dropped, in which case the login hint is already on screen.
func (a *App) itemError() {
	if !a.LoggedIn() {
		return
	}
	a.println(view.ErrorBanner(a.ctl.State().Error))
}

// mentionOptions is the user directory minus the signed-in user.
func (a *App) mentionOptions() []models.UserRef {
	self, _ := a.auth.CurrentUser()
	return forms.MentionOptions(a.ctl.State().Users, self)
}

// fillItemForm prompts for every field of form. With keep set, an empty
// answer leaves the field as it is and "-" empties tags or mentions.
func (a *App) fillItemForm(form *forms.ItemForm, keep bool) error {
	hint := func(current string) string {
		if keep && current != "" {
			return " [" + current + "]"
		}
		return ""
	}

	title, err := getSimpleText(a.reader, "Title"+hint(form.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" || !keep {
		form.Title = title
	}

	descPrompt := "Description (markdown)"
	if keep {
		descPrompt += ", empty keeps the current one"
	}
	desc, err := GetMultiline(a.reader, descPrompt, a.out)
	if err != nil {
		return err
	}
	if desc != "" || !keep {
		form.Description = desc
	}

	priority, err := getSimpleText(a.reader, "Priority (low, medium, high) ["+string(form.Priority)+"]", a.out)
	if err != nil {
		return err
	}
	if priority != "" {
		form.Priority = models.Priority(strings.ToLower(priority))
	}

	tags, err := getSimpleText(a.reader, "Tags, comma separated"+hint(strings.Join(form.Tags, ", ")), a.out)
	if err != nil {
		return err
	}
	if tags == clearValue {
		form.Tags = nil
	} else if tags != "" {
		if keep {
			form.Tags = nil
		}
		for _, t := range splitList(tags) {
			if err := form.CommitTag(t); errors.Is(err, forms.ErrDuplicateTag) {
				a.printf("Skipping duplicate tag %q\n", t)
			}
		}
	}

	return a.fillMentions(form, keep)
}

func (a *App) fillMentions(form *forms.ItemForm, keep bool) error {
	options := a.mentionOptions()
	if len(options) == 0 && len(form.Mentions) == 0 {
		a.println("No other users available")
		return nil
	}

	usernames := make([]string, 0, len(options))
	for _, u := range options {
		usernames = append(usernames, u.Username)
	}
	if len(options) > 0 {
		a.println("Available: " + view.Mentions(options))
	}

	current := ""
	if keep && len(form.Mentions) > 0 {
		current = " [@" + strings.Join(form.Mentions, ", @") + "]"
	}
	answer, err := getSimpleText(a.reader, "Mention users, comma separated"+current, a.out)
	if err != nil {
		return err
	}

	switch answer {
	case "":
		return nil
	case clearValue:
		form.Mentions = nil
		return nil
	}

	if keep {
		form.Mentions = nil
	}
	for _, name := range splitList(answer) {
		name = strings.TrimPrefix(name, "@")
		if !slices.Contains(usernames, name) {
			a.printf("Unknown user @%s\n", name)
			continue
		}
		form.AddMention(name)
	}
	return nil
}
