package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mansalskog/BadLisp/lisp"
)

// DefaultPrompt is the prompt used when Config.Prompt is empty.
const DefaultPrompt = "> "

// Config configures RunRepl.
type Config struct {
	Prompt string
	// HistoryFile is the file used to persist line history.  If empty no
	// history is saved between sessions.
	HistoryFile string
}

// RunRepl runs a simple repl on the terminal.  Each complete expression
// entered is evaluated by rt and its result printed.  Incomplete
// expressions are continued on the following lines.
func RunRepl(rt *lisp.Runtime, config Config) error {
	prompt := config.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt,
		HistoryFile: config.HistoryFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	contPrompt := strings.Repeat(" ", len(prompt)) // prompt had better be ascii...

	s := newSession(rt, rl.Stdout(), rl.Stderr())
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			s.reset()
			rl.SetPrompt(prompt)
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if s.feed(line) {
			rl.SetPrompt(contPrompt)
		} else {
			rl.SetPrompt(prompt)
		}
	}
}

type session struct {
	rt      *lisp.Runtime
	stdout  io.Writer
	stderr  io.Writer
	pending string
}

func newSession(rt *lisp.Runtime, stdout, stderr io.Writer) *session {
	return &session{
		rt:     rt,
		stdout: stdout,
		stderr: stderr,
	}
}

func (s *session) reset() {
	s.pending = ""
}

// feed processes a line of input and returns true if the line ends inside an
// unterminated expression.
func (s *session) feed(line string) bool {
	text := line
	if s.pending != "" {
		text = s.pending + "\n" + line
		s.pending = ""
	}
	text = lisp.SkipSpace(text)
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, ":") {
		s.command(strings.TrimSpace(text))
		return false
	}
	defer s.rt.Collect()

	expr, rest, err := s.rt.Reader.Read(s.rt, text)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		s.pending = text
		return true
	}
	if err != nil {
		s.errln(err)
		return false
	}
	if s.rt.Debug {
		s.errlnf("Parsed expression: %v", expr)
	}
	if rest = lisp.SkipSpace(rest); rest != "" {
		s.errlnf("Trailing text %q", rest)
		return false
	}
	v, err := s.rt.Eval(expr)
	if err != nil {
		s.errln(err)
		var lerr *lisp.ErrorVal
		if s.rt.Debug && errors.As(err, &lerr) && lerr.Stack != nil {
			lerr.Stack.DebugPrint(s.stderr)
		}
		return false
	}
	if s.rt.Debug {
		fmt.Fprintln(s.stdout, v.DebugString())
	} else {
		fmt.Fprintln(s.stdout, v)
	}
	return false
}

func (s *session) command(text string) {
	switch text {
	case ":env":
		s.rt.Env.Walk(func(k, v *lisp.LVal) bool {
			fmt.Fprintf(s.stdout, "%s = %v\n", k, v)
			return true
		})
	case ":heap":
		stats := s.rt.Heap.Stats()
		fmt.Fprintf(s.stdout, "live %d allocated %d\n", stats.Live, stats.Allocated)
		for t := lisp.LSymbol; t <= lisp.LLambda; t++ {
			fmt.Fprintf(s.stdout, "  %-8s %d\n", t, stats.ByType[t])
		}
	case ":help":
		fmt.Fprintln(s.stdout, ":env   list global bindings")
		fmt.Fprintln(s.stdout, ":heap  show heap statistics")
		fmt.Fprintln(s.stdout, ":help  show this message")
	default:
		s.errlnf("unknown command %s", text)
	}
}

func (s *session) errlnf(format string, v ...interface{}) {
	if strings.HasSuffix(format, "\n") {
		fmt.Fprintf(s.stderr, format, v...)
		return
	}
	fmt.Fprintf(s.stderr, format+"\n", v...)
}

func (s *session) errln(v ...interface{}) {
	fmt.Fprintln(s.stderr, v...)
}
