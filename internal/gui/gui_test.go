package gui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"codeberg.org/snonux/wordlens/internal/credential"
	"codeberg.org/snonux/wordlens/internal/frequency"
	"codeberg.org/snonux/wordlens/internal/processor"
	"codeberg.org/snonux/wordlens/internal/testutil"
	"codeberg.org/snonux/wordlens/internal/translation"
)

func TestSaveAPIKey(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()

	if got := saveAPIKey(ctx, store, "   "); got != credential.EmptyInputMessage {
		t.Errorf("saveAPIKey(blank) = %q, want %q", got, credential.EmptyInputMessage)
	}
	if _, ok, _ := store.Get(ctx, credential.APIKeyName); ok {
		t.Error("blank key was stored")
	}

	if got := saveAPIKey(ctx, store, "  abc123  "); got != credential.SavedMessage {
		t.Errorf("saveAPIKey() = %q, want %q", got, credential.SavedMessage)
	}
	key, _ := credential.LoadAPIKey(ctx, store)
	if key != "abc123" {
		t.Errorf("stored key = %q, want abc123", key)
	}
}

func TestWordList(t *testing.T) {
	test.NewTempApp(t)

	var selected string
	list := NewWordList(func(word string) { selected = word })

	list.SetEntries([]frequency.Entry{{Word: "cat", Count: 2}, {Word: "mat", Count: 1}})
	if len(list.container.Objects) != 2 {
		t.Fatalf("got %d buttons, want 2", len(list.container.Objects))
	}

	btn, ok := list.container.Objects[1].(*widget.Button)
	if !ok {
		t.Fatalf("object is %T, want *widget.Button", list.container.Objects[1])
	}
	if btn.Text != "mat (1)" {
		t.Errorf("button text = %q", btn.Text)
	}
	test.Tap(btn)
	if selected != "mat" {
		t.Errorf("selected = %q, want mat", selected)
	}

	list.SetMessage(frequency.NoWordsMessage)
	if len(list.Entries()) != 0 || len(list.container.Objects) != 1 {
		t.Errorf("message not shown: %v", list.container.Objects)
	}

	list.Clear()
	if len(list.container.Objects) != 0 {
		t.Errorf("Clear() left %d objects", len(list.container.Objects))
	}
}

func TestLogViewerWrite(t *testing.T) {
	test.NewTempApp(t)

	v := NewLogViewer()
	if _, err := v.Write([]byte("first\nsecond\n")); err != nil {
		t.Fatal(err)
	}

	msgs := v.Messages()
	if len(msgs) != 2 || msgs[0] != "second" || msgs[1] != "first" {
		t.Errorf("Messages() = %v", msgs)
	}
}

func TestOnProcessIgnoredWhileSubmitting(t *testing.T) {
	fyneApp := test.NewTempApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := credential.NewMemoryStore()
	if err := credential.SaveAPIKey(ctx, store, "k"); err != nil {
		t.Fatal(err)
	}
	gate := make(chan struct{})
	gen := &testutil.MockGenerator{Default: "訳", Gate: gate}
	rec := processor.NewRecorder()

	a := &Application{
		window:    fyneApp.NewWindow("wordlens"),
		textInput: NewCustomMultiLineEntry(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		ctx:       ctx,
		cancel:    cancel,
	}
	a.proc = processor.NewProcessor(translation.NewTranslator(gen), store, rec, processor.Options{Logger: a.logger})
	a.textInput.SetText("the quick brown fox")

	a.onProcess()
	deadline := time.Now().Add(2 * time.Second)
	for len(gen.Calls()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("translation never started")
		}
		time.Sleep(time.Millisecond)
	}

	// Ctrl+Enter while the first submission is still running
	a.onProcess()
	close(gate)
	a.wg.Wait()

	translations := 0
	for _, prompt := range gen.Calls() {
		if strings.HasPrefix(prompt, "Translate") {
			translations++
		}
	}
	if translations != 1 {
		t.Errorf("got %d translation requests, want 1", translations)
	}
	if res := rec.Result(); res.Translation != "訳" {
		t.Errorf("Translation = %q, want 訳", res.Translation)
	}

	a.onProcess()
	a.wg.Wait()
	if got := len(gen.Calls()); got != 2 {
		t.Errorf("got %d calls after the first finished, want 2", got)
	}
}
