package gui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/wordlens/internal/credential"
)

// onShowSettings opens the options dialog for the API key
func (a *Application) onShowSettings() {
	current, err := credential.LoadAPIKey(a.ctx, a.store)
	if err != nil {
		a.logger.Warn("failed to load API key", "error", err)
	}

	keyEntry := widget.NewPasswordEntry()
	keyEntry.SetPlaceHolder("Gemini API Key")
	keyEntry.SetText(current)

	items := []*widget.FormItem{
		widget.NewFormItem("API Key", keyEntry),
	}

	form := dialog.NewForm("Options", "Save", "Cancel", items, func(save bool) {
		if !save {
			return
		}
		message := saveAPIKey(a.ctx, a.store, keyEntry.Text)
		a.setStatus(message)
		if message != credential.SavedMessage {
			dialog.ShowInformation("Options", message, a.window)
		}
	}, a.window)
	form.Resize(fyne.NewSize(420, 160))
	form.Show()
}

// saveAPIKey stores raw and returns the message to show the user.
func saveAPIKey(ctx context.Context, store credential.Store, raw string) string {
	err := credential.SaveAPIKey(ctx, store, raw)
	switch {
	case err == nil:
		return credential.SavedMessage
	case errors.Is(err, credential.ErrEmptyAPIKey):
		return credential.EmptyInputMessage
	default:
		return "Error: " + err.Error()
	}
}
