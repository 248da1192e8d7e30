package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lumen/internal"
)

const (
	historyFile = ".lumen_history"
	promptMain  = "> "
	promptCont  = "... "
)

type replCmd struct {
	Echo bool `default:"true" help:"Print the value of bare expressions." negatable:""`
}

func (r *replCmd) Run(a *app) error {
	fmt.Println(a.color.Bold(name) + " " + a.color.Grey("(:quit to exit)"))

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	opts := append([]internal.Option{internal.WithEcho(r.Echo)}, a.opts...)
	interp := internal.NewInterpreter(a.printer, opts...)

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return nil
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if err := interp.Run("<repl>", code); err != nil {
			interp.Report(err)
		}
	}
}

// readByParseProbe reads lines until they form a complete program or
// the input fails to parse for a reason other than ending too early
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if internal.IsIncomplete(internal.Check(src)) {
			continue
		}
		return src, true
	}
}
