package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/wordlens/internal/frequency"
	"codeberg.org/snonux/wordlens/internal/processor"
)

// popupSink renders processor output into the window. The processor calls
// it from background goroutines, so every widget update goes through fyne.Do.
type popupSink struct {
	a *Application
}

func (s *popupSink) SetLoading(loading bool) {
	a := s.a
	fyne.Do(func() {
		if loading {
			a.loadingBar.Show()
			a.loadingBar.Start()
			a.processButton.Disable()
			a.statusLabel.SetText("Working...")
			return
		}
		a.loadingBar.Stop()
		a.loadingBar.Hide()
		a.processButton.Enable()
		a.statusLabel.SetText("Ready")
	})
}

func (s *popupSink) SetCredentialNotice(visible bool) {
	a := s.a
	fyne.Do(func() {
		if visible {
			a.banner.Show()
		} else {
			a.banner.Hide()
		}
	})
}

func (s *popupSink) Alert(message string) {
	a := s.a
	fyne.Do(func() {
		dialog.ShowInformation("wordlens", message, a.window)
	})
}

func (s *popupSink) Clear() {
	a := s.a
	fyne.Do(func() {
		setLabel(a.translationLabel, "", false)
		a.wordList.Clear()
		a.detailHeader.SetText("")
		setLabel(a.definitionLabel, "", false)
		setLabel(a.exampleLabel, "", false)
	})
}

func (s *popupSink) Show(region processor.Region, text string) {
	s.render(region, text, false)
}

func (s *popupSink) ShowError(region processor.Region, message string) {
	s.render(region, message, true)
}

func (s *popupSink) render(region processor.Region, text string, failed bool) {
	a := s.a
	fyne.Do(func() {
		switch region {
		case processor.RegionTranslation:
			setLabel(a.translationLabel, text, failed)
		case processor.RegionWords:
			a.wordList.SetMessage(text)
		case processor.RegionDefinition:
			setLabel(a.definitionLabel, text, failed)
		case processor.RegionExample:
			setLabel(a.exampleLabel, text, failed)
		}
	})
}

func (s *popupSink) ShowWords(entries []frequency.Entry) {
	a := s.a
	fyne.Do(func() {
		a.wordList.SetEntries(entries)
	})
}

func (s *popupSink) ShowWordDetail(word string) {
	a := s.a
	fyne.Do(func() {
		a.detailHeader.SetText(fmt.Sprintf("Details for %q:", word))
	})
}

func setLabel(label *widget.Label, text string, failed bool) {
	if failed {
		label.Importance = widget.DangerImportance
	} else {
		label.Importance = widget.MediumImportance
	}
	label.SetText(text)
}
