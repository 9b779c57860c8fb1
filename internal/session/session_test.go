package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/assistant/internal/book"
	"github.com/roach88/assistant/internal/command"
	"github.com/roach88/assistant/internal/store"
	"github.com/roach88/assistant/internal/testutil"
)

// fakeObserver replays scripted input and records a transcript.
type fakeObserver struct {
	inputs     []string
	messages   []string
	transcript strings.Builder
	inputErr   error
}

func (f *fakeObserver) Display(message string) {
	f.messages = append(f.messages, message)
	f.transcript.WriteString(message + "\n")
}

func (f *fakeObserver) Input(_ context.Context, prompt string) (string, error) {
	if len(f.inputs) == 0 {
		if f.inputErr != nil {
			return "", f.inputErr
		}
		return "", io.EOF
	}
	line := f.inputs[0]
	f.inputs = f.inputs[1:]
	f.transcript.WriteString(prompt + line + "\n")
	return line, nil
}

// memStore is an in-memory Persister.
type memStore struct {
	book    *book.AddressBook
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load(context.Context) (*book.AddressBook, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.book == nil {
		m.book = book.New()
	}
	return m.book, nil
}

func (m *memStore) Save(_ context.Context, ab *book.AddressBook) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.book = ab
	m.saves++
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(obs Observer, st Persister) *Session {
	clock := testutil.NewFixedClock(testutil.Date(2024, time.June, 10))
	return New(obs, st, command.NewDispatcher(clock, book.DefaultWindow), quietLogger())
}

func TestRun_Transcript_Golden(t *testing.T) {
	obs := &fakeObserver{inputs: []string{
		"hello",
		"add Alice 1234567890",
		"add Alice 0000000000",
		"add Bob",
		"add Carol 12345",
		"phone Alice",
		"change Bob 1111111111 2222222222",
		"add-birthday Alice 15.06.1990",
		"show-birthday Alice",
		"show-birthday Bob",
		"add Bob 5555555555",
		"add-birthday Bob 31.02.1990",
		"all",
		"birthdays",
		"frobnicate",
		"",
		"exit",
		"hello",
	}}
	st := &memStore{}

	require.NoError(t, newTestSession(obs, st).Run(context.Background()))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "transcript", []byte(obs.transcript.String()))

	// Input after exit is never read.
	assert.Equal(t, []string{"hello"}, obs.inputs)
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, 2, st.book.Len())
}

func TestRun_CloseAlsoExits(t *testing.T) {
	obs := &fakeObserver{inputs: []string{"close", "add Alice 1234567890"}}
	st := &memStore{}

	require.NoError(t, newTestSession(obs, st).Run(context.Background()))
	assert.Equal(t, []string{Welcome, Goodbye}, obs.messages)
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, 0, st.book.Len())
}

func TestRun_EOFSaves(t *testing.T) {
	obs := &fakeObserver{inputs: []string{"add Alice 1234567890"}}
	st := &memStore{}

	require.NoError(t, newTestSession(obs, st).Run(context.Background()))
	assert.Equal(t, []string{Welcome, "Contact added.", Goodbye}, obs.messages)
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, 1, st.book.Len())
}

func TestRun_ArgumentsAreWhitespaceSplit(t *testing.T) {
	obs := &fakeObserver{inputs: []string{"  add\tAlice   1234567890  ", "phone Alice"}}
	st := &memStore{}

	require.NoError(t, newTestSession(obs, st).Run(context.Background()))
	assert.Equal(t, []string{Welcome, "Contact added.", "1234567890", Goodbye}, obs.messages)
}

func TestRun_LoadError(t *testing.T) {
	obs := &fakeObserver{}
	st := &memStore{loadErr: errors.New("disk on fire")}

	err := newTestSession(obs, st).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load address book")
	assert.Empty(t, obs.messages)
}

func TestRun_SaveError(t *testing.T) {
	obs := &fakeObserver{inputs: []string{"exit"}}
	st := &memStore{saveErr: errors.New("read-only")}

	err := newTestSession(obs, st).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save address book")
}

func TestRun_InputError(t *testing.T) {
	obs := &fakeObserver{inputErr: errors.New("tty gone")}
	st := &memStore{}

	err := newTestSession(obs, st).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
	assert.Equal(t, 1, st.saves)
}

func TestRun_CancelledContextStillSaves(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	obs := &fakeObserver{inputs: []string{"add Alice 1234567890"}}
	st := &memStore{}

	require.NoError(t, newTestSession(obs, st).Run(ctx))
	assert.Equal(t, []string{Welcome, Goodbye}, obs.messages)
	assert.Equal(t, 1, st.saves)
}

func TestRun_PersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.db")

	run := func(inputs ...string) []string {
		st, err := store.Open(path)
		require.NoError(t, err)
		defer st.Close()

		obs := &fakeObserver{inputs: append(inputs, "exit")}
		require.NoError(t, newTestSession(obs, st).Run(context.Background()))
		return obs.messages
	}

	run("add Alice 1234567890", "add-birthday Alice 12.06.1990", "add Bob 5555555555")
	msgs := run("all", "show-birthday Alice")

	assert.Equal(t, []string{
		Welcome,
		"Alice: 1234567890\nBob: 5555555555",
		"12.06.1990",
		Goodbye,
	}, msgs)
}

func TestConsole(t *testing.T) {
	var out strings.Builder
	c := NewConsole(strings.NewReader("hello\nadd Alice 1234567890\n"), &out)

	ctx := context.Background()
	line, err := c.Input(ctx, Prompt)
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	c.Display("How can I help you?")

	line, err = c.Input(ctx, Prompt)
	require.NoError(t, err)
	assert.Equal(t, "add Alice 1234567890", line)

	_, err = c.Input(ctx, Prompt)
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, Prompt+"How can I help you?\n"+Prompt+Prompt, out.String())
}

func TestIsExit(t *testing.T) {
	assert.True(t, IsExit("exit"))
	assert.True(t, IsExit("close"))
	assert.False(t, IsExit("quit"))
	assert.False(t, IsExit("EXIT"))
}

func TestRun_InputErrorAfterChangesSaves(t *testing.T) {
	obs := &fakeObserver{
		inputs:   []string{"add Alice 1234567890"},
		inputErr: errors.New("tty gone"),
	}
	st := &memStore{}

	err := newTestSession(obs, st).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, 1, st.book.Len())
}

func TestRun_LongLineIsDispatched(t *testing.T) {
	name := strings.Repeat("A", 70*1024)
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("add "+name+" 1234567890\nexit\n"), &out)
	st := &memStore{}

	require.NoError(t, newTestSession(c, st).Run(context.Background()))
	assert.Contains(t, out.String(), "Contact added.")
	assert.Equal(t, 1, st.saves)
	require.Equal(t, 1, st.book.Len())
	_, ok := st.book.Find(name)
	assert.True(t, ok)
}

func TestRun_OversizedLineKeepsLooping(t *testing.T) {
	var out bytes.Buffer
	input := "add " + strings.Repeat("A", 100) + " 1234567890\nadd Bob 5555555555\nexit\n"
	c := NewConsole(strings.NewReader(input), &out)
	c.maxLine = 32
	st := &memStore{}

	require.NoError(t, newTestSession(c, st).Run(context.Background()))
	assert.Equal(t, Welcome+"\n"+
		Prompt+LineTooLong+"\n"+
		Prompt+"Contact added.\n"+
		Prompt+Goodbye+"\n", out.String())
	assert.Equal(t, 1, st.saves)
	assert.Equal(t, 1, st.book.Len())
}

func TestRun_CancelWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	st := &memStore{}
	sess := newTestSession(NewConsole(pr, &out), st)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sess.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}

	assert.True(t, strings.HasSuffix(out.String(), Goodbye+"\n"), out.String())
	assert.Equal(t, 1, st.saves)
}

func TestConsole_InputCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := NewConsole(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Input(ctx, Prompt)
	assert.ErrorIs(t, err, context.Canceled)

	// The line that arrives later is handed to the next Input.
	go func() { _, _ = pw.Write([]byte("hello\n")) }()
	line, err := c.Input(context.Background(), Prompt)
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr []error
	}{
		{"lf", "a b\nc\n", []string{"a b", "c", ""}, []error{nil, nil, io.EOF}},
		{"crlf", "hello\r\n", []string{"hello", ""}, []error{nil, io.EOF}},
		{"no trailing newline", "exit", []string{"exit", ""}, []error{nil, io.EOF}},
		{"at limit", "12345678\nx\n", []string{"12345678", "x"}, []error{nil, nil}},
		{"over limit", "123456789\nx\n", []string{"", "x"}, []error{ErrLineTooLong, nil}},
		{"over limit at eof", "123456789012", []string{"", ""}, []error{ErrLineTooLong, io.EOF}},
		{"over limit across reads", strings.Repeat("A", 40) + "\nx\n", []string{"", "x"}, []error{ErrLineTooLong, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Minimum bufio size, so long lines span several ReadSlice calls.
			r := bufio.NewReaderSize(strings.NewReader(tt.input), 16)
			for i := range tt.want {
				line, err := readLine(r, 8)
				if tt.wantErr[i] == nil {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, tt.wantErr[i])
				}
				assert.Equal(t, tt.want[i], line)
			}
		})
	}
}
