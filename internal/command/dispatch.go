package command

import (
	"sort"

	"github.com/roach88/assistant/internal/book"
)

// InvalidCommand is the reply to an unrecognized command word.
const InvalidCommand = "Invalid command."

// Command describes one dispatchable command.
type Command struct {
	// Name is the command word (e.g. "add-birthday").
	Name string

	// Usage lists the argument placeholders, for help output.
	Usage string

	// Mutates is true if the command can change the address book.
	Mutates bool

	// Run executes the command.
	Run Handler
}

// Dispatcher routes command words to handlers.
type Dispatcher struct {
	commands map[string]Command
}

// NewDispatcher builds the standard command set.
// clock and window drive the birthdays command.
func NewDispatcher(clock book.Clock, window int) *Dispatcher {
	if clock == nil {
		clock = book.SystemClock{}
	}
	d := &Dispatcher{commands: make(map[string]Command)}
	d.register(Command{Name: "hello", Run: Hello})
	d.register(Command{Name: "add", Usage: "<name> <phone>", Mutates: true, Run: AddContact})
	d.register(Command{Name: "change", Usage: "<name> <old_phone> <new_phone>", Mutates: true, Run: ChangePhone})
	d.register(Command{Name: "phone", Usage: "<name>", Run: ShowPhone})
	d.register(Command{Name: "all", Run: ShowAll})
	d.register(Command{Name: "add-birthday", Usage: "<name> <DD.MM.YYYY>", Mutates: true, Run: AddBirthday})
	d.register(Command{Name: "show-birthday", Usage: "<name>", Run: ShowBirthday})
	d.register(Command{Name: "birthdays", Run: Birthdays(clock, window)})
	return d
}

func (d *Dispatcher) register(c Command) {
	d.commands[c.Name] = c
}

// Lookup returns the command registered under name.
func (d *Dispatcher) Lookup(name string) (Command, bool) {
	c, ok := d.commands[name]
	return c, ok
}

// Commands returns all commands sorted by name.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, 0, len(d.commands))
	for _, c := range d.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch runs the command named name with args against b.
// Unknown names yield InvalidCommand as a normal (non-error) result.
func (d *Dispatcher) Dispatch(b *book.AddressBook, name string, args []string) Result {
	c, ok := d.commands[name]
	if !ok {
		return OK(InvalidCommand)
	}
	return c.Run(args, b)
}
