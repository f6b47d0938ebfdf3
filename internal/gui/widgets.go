package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/wordlens/internal/frequency"
)

// WordList is a custom widget listing frequent words as clickable buttons
type WordList struct {
	widget.BaseWidget

	container *fyne.Container
	onSelect  func(word string)
	entries   []frequency.Entry
}

// NewWordList creates a word list calling onSelect when a word is clicked
func NewWordList(onSelect func(word string)) *WordList {
	l := &WordList{onSelect: onSelect}
	l.container = container.NewGridWithColumns(2)
	l.ExtendBaseWidget(l)
	return l
}

// CreateRenderer implements fyne.Widget
func (l *WordList) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(l.container)
}

// SetEntries replaces the listed words
func (l *WordList) SetEntries(entries []frequency.Entry) {
	l.entries = append([]frequency.Entry(nil), entries...)
	l.container.Layout = layout.NewGridLayoutWithColumns(2)

	objects := make([]fyne.CanvasObject, 0, len(entries))
	for _, e := range entries {
		word := e.Word
		btn := widget.NewButton(e.String(), func() {
			if l.onSelect != nil {
				l.onSelect(word)
			}
		})
		btn.Alignment = widget.ButtonAlignLeading
		objects = append(objects, btn)
	}
	l.container.Objects = objects
	l.container.Refresh()
}

// SetMessage shows a line of text instead of words
func (l *WordList) SetMessage(message string) {
	l.entries = nil
	l.container.Layout = layout.NewVBoxLayout()
	l.container.Objects = []fyne.CanvasObject{widget.NewLabel(message)}
	l.container.Refresh()
}

// Clear empties the list
func (l *WordList) Clear() {
	l.entries = nil
	l.container.Objects = nil
	l.container.Refresh()
}

// Entries returns the words currently listed
func (l *WordList) Entries() []frequency.Entry {
	return l.entries
}
