package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/reversi/board"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"autoplay": {
		Options: []string{"-threads", "-file"},
		Args:    []string{"stop"},
	},
	"set": {
		Args: []string{"depth", "timelimit", "timelimited", "seed"},
	},
	"help": {
		Args: []string{"load", "gen", "ai", "set", "autoplay"},
	},
}

var commandNames = []string{
	"help", "new", "load", "show", "pos", "gen", "play", "pass", "undo",
	"ai", "set", "autoplay", "exit",
}

// Do implements the readline.AutoCompleter interface.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		if cmdName == "play" {
			// Only the legal moves make sense here.
			completions = lo.Map(c.sc.board.EnumerateLegalLocations(),
				func(l board.Location, _ int) string { return l.String() })
		} else if metadata, exists := commandMetadata[cmdName]; exists {
			if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
				completions = metadata.Options
			} else {
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
