package gui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"codeberg.org/snonux/wordlens/internal"
	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/processor"
	"codeberg.org/snonux/wordlens/internal/translation"
)

// Application represents the popup window
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	textInput        *CustomMultiLineEntry
	processButton    *ttwidget.Button
	settingsButton   *ttwidget.Button
	logButton        *ttwidget.Button
	loadingBar       *widget.ProgressBarInfinite
	banner           *fyne.Container
	translationLabel *widget.Label
	wordList         *WordList
	detailHeader     *widget.Label
	definitionLabel  *widget.Label
	exampleLabel     *widget.Label
	statusLabel      *widget.Label
	logViewer        *LogViewer

	proc   *processor.Processor
	store  credential.Store
	logger *slog.Logger

	// Background processing
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	submitting atomic.Bool
}

// Config holds what the popup needs to run
type Config struct {
	Translator *translation.Translator
	Store      credential.Store
	WordCount  int
	// LogOutput also receives log lines shown in the log panel.
	LogOutput io.Writer
}

// New creates the popup window
func New(config *Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:    app.NewWithID("org.codeberg.snonux.wordlens"),
		store:  config.Store,
		ctx:    ctx,
		cancel: cancel,
	}

	a.logViewer = NewLogViewer()
	logOutput := config.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}
	a.logger = slog.New(slog.NewTextHandler(io.MultiWriter(logOutput, a.logViewer), nil))

	a.proc = processor.NewProcessor(config.Translator, config.Store, &popupSink{a: a}, processor.Options{
		WordCount: config.WordCount,
		Logger:    a.logger,
	})

	a.setupUI()
	return a
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("wordlens v%s - English to Japanese", internal.Version))
	a.window.Resize(fyne.NewSize(520, 640))

	a.textInput = NewCustomMultiLineEntry()
	a.textInput.SetPlaceHolder("Paste English text here...")
	a.textInput.Wrapping = fyne.TextWrapWord
	a.textInput.SetMinRowsVisible(5)
	a.textInput.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})
	a.textInput.SetOnSubmit(a.onProcess)

	a.processButton = ttwidget.NewButtonWithIcon("Translate", theme.ConfirmIcon(), a.onProcess)
	a.processButton.Importance = widget.HighImportance
	a.settingsButton = ttwidget.NewButtonWithIcon("", theme.SettingsIcon(), a.onShowSettings)
	a.logButton = ttwidget.NewButtonWithIcon("", theme.ListIcon(), a.onToggleLog)

	a.loadingBar = widget.NewProgressBarInfinite()
	a.loadingBar.Stop()
	a.loadingBar.Hide()

	bannerButton := widget.NewButton("Open options", a.onShowSettings)
	bannerLabel := widget.NewLabel(processor.MissingKeyMessage)
	bannerLabel.Importance = widget.WarningImportance
	bannerLabel.Wrapping = fyne.TextWrapWord
	a.banner = container.NewBorder(nil, nil, nil, bannerButton, bannerLabel)
	a.banner.Hide()

	a.translationLabel = widget.NewLabel("")
	a.translationLabel.Wrapping = fyne.TextWrapWord

	a.wordList = NewWordList(a.onSelectWord)

	a.detailHeader = widget.NewLabel("")
	a.detailHeader.TextStyle = fyne.TextStyle{Bold: true}
	a.definitionLabel = widget.NewLabel("")
	a.definitionLabel.Wrapping = fyne.TextWrapWord
	a.exampleLabel = widget.NewLabel("")
	a.exampleLabel.Wrapping = fyne.TextWrapWord

	a.statusLabel = widget.NewLabel("Ready")
	a.statusLabel.TextStyle = fyne.TextStyle{Italic: true}

	toolbar := container.NewBorder(nil, nil, nil,
		container.NewHBox(a.logButton, a.settingsButton),
		a.processButton,
	)

	results := container.NewVBox(
		widget.NewLabelWithStyle("Japanese Translation:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.translationLabel,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Frequent Words:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		a.wordList,
		widget.NewSeparator(),
		a.detailHeader,
		a.definitionLabel,
		a.exampleLabel,
	)

	a.logViewer.Hide()

	content := container.NewBorder(
		container.NewVBox(
			a.banner,
			a.textInput,
			toolbar,
			a.loadingBar,
		),
		container.NewVBox(a.logViewer, a.statusLabel),
		nil, nil,
		container.NewVScroll(results),
	)

	// Tooltips need the tooltip layer in place before they are set
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.processButton.SetToolTip("Translate and list frequent words (Ctrl+Enter)")
	a.settingsButton.SetToolTip("Options: set the Gemini API Key")
	a.logButton.SetToolTip("Show or hide log messages")

	a.window.SetOnClosed(func() {
		a.cancel()
		a.wg.Wait()
	})
}

// Run shows the window and blocks until it is closed
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// onProcess handles text submission. Ctrl+Enter reaches it even while the
// button is disabled, so a running submission is checked here too.
func (a *Application) onProcess() {
	if !a.submitting.CompareAndSwap(false, true) {
		a.logger.Debug("submit ignored while processing")
		return
	}
	text := a.textInput.Text
	a.window.Canvas().Unfocus()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.submitting.Store(false)
		if err := a.proc.Submit(a.ctx, text); err != nil {
			a.logger.Debug("submit rejected", "error", err)
		}
	}()
}

// onSelectWord fetches the definition and example for a clicked word
func (a *Application) onSelectWord(word string) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.proc.SelectWord(a.ctx, word); err != nil {
			a.logger.Debug("word details not shown", "word", word, "error", err)
		}
	}()
}

func (a *Application) onToggleLog() {
	if a.logViewer.Visible() {
		a.logViewer.Hide()
	} else {
		a.logViewer.Show()
	}
}

func (a *Application) setStatus(text string) {
	fyne.Do(func() {
		a.statusLabel.SetText(text)
	})
}
