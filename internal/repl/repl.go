package repl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"digikey-mcp/internal/tools"
	"digikey-mcp/pkg/logging"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/text"
)

const prompt = "digikey» "

// commandTimeout bounds a single tool call.
const commandTimeout = 2 * time.Minute

// errExit is returned by Execute for the exit command.
var errExit = errors.New("exit")

// REPL reads tool invocations line by line and prints their results.
type REPL struct {
	provider tools.ToolProvider
	names    []string
	out      io.Writer

	historyFile string
}

// New creates a REPL over provider. Results are written to out.
func New(provider tools.ToolProvider, out io.Writer) *REPL {
	var names []string
	for _, tool := range provider.GetTools() {
		names = append(names, tool.Name)
	}
	sort.Strings(names)

	return &REPL{
		provider:    provider,
		names:       names,
		out:         out,
		historyFile: filepath.Join(os.TempDir(), ".digikey_mcp_history"),
	}
}

func (r *REPL) completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help"),
		readline.PcItem("tools"),
		readline.PcItem("exit"),
	}
	for _, name := range r.names {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// Run reads lines until EOF, the exit command or ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       r.historyFile,
		AutoComplete:      r.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(r.out, "Type 'help' for usage, TAB completes tool names.")

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		if err := r.Execute(ctx, line); err != nil {
			if errors.Is(err, errExit) {
				return nil
			}
			fmt.Fprintln(r.out, text.FgRed.Sprint("Error: ")+err.Error())
		}
	}
}

// Execute runs one input line. Blank lines are ignored.
func (r *REPL) Execute(ctx context.Context, line string) error {
	name, args, err := ParseLine(line)
	if err != nil {
		return err
	}

	switch name {
	case "":
		return nil
	case "exit", "quit":
		return errExit
	case "help":
		r.printHelp()
		return nil
	case "tools":
		for _, tool := range r.names {
			fmt.Fprintln(r.out, tool)
		}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	logging.Debug("REPL", "Calling %s", name)
	result, err := r.provider.ExecuteTool(ctx, name, args)
	if err != nil {
		return err
	}
	return tools.WriteResult(r.out, result)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Usage:")
	fmt.Fprintln(r.out, "  TOOL [JSON-ARGS]   call a tool, e.g. keyword_search {\"keywords\":\"LM358\"}")
	fmt.Fprintln(r.out, "  tools              list tool names")
	fmt.Fprintln(r.out, "  help               show this help")
	fmt.Fprintln(r.out, "  exit               leave the shell")
}

// ParseLine splits a line into a tool name and its JSON object arguments.
// Numbers are kept as json.Number so integers survive unchanged.
func ParseLine(line string) (string, map[string]interface{}, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	args := map[string]interface{}{}

	rest = strings.TrimSpace(rest)
	if rest == "" {
		return name, args, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(rest)))
	dec.UseNumber()
	if err := dec.Decode(&args); err != nil {
		return "", nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	if dec.More() {
		return "", nil, fmt.Errorf("unexpected input after arguments")
	}
	return name, args, nil
}
