package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/caffeineduck/wasmpage/handle"
	"github.com/caffeineduck/wasmpage/page"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive scratch page session",
	Long: `Drive a scratch memory page by hand and watch the stack allocator work.

Commands:
  write <text>     push text onto the page, print the resulting handle
  alloc <n>        reserve n bytes without writing, print the handle
  read <scalar>    read the range a handle scalar references
  status <code>    print the status handle for a code
  top              print the current stack pointer
  rewind <n>       move the stack pointer back to n
  reset            reclaim the whole page
  help             show this list

The page starts with no backed memory; the first write grows it, the same
way a manager grows a guest module's memory on demand.

Type 'exit' or 'quit' to end the session, or press Ctrl+D.`,
}

func init() {
	replCmd.Run = runRepl
	replCmd.Flags().String("history", "", "History file path (default: ~/.wasmpage_history)")
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) {
	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".wasmpage_history")
	}

	mgr := page.NewManager(page.NewBuffer(0))

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "page> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintln(os.Stderr, "wasmpage REPL (type 'help' for commands, Ctrl+D to exit)")

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if err := evalLine(mgr, line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func evalLine(mgr *page.Manager, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "write":
		h, err := mgr.Write([]byte(rest))
		if err != nil {
			return err
		}
		fmt.Printf("%s  scalar=%d (0x%08x)\n", h, h.Scalar(), h.Scalar())

	case "alloc":
		n, err := parseUint32(rest)
		if err != nil {
			return err
		}
		h, err := mgr.Allocate(n)
		if err != nil {
			return err
		}
		fmt.Printf("%s  scalar=%d (0x%08x)\n", h, h.Scalar(), h.Scalar())

	case "read":
		v, err := parseUint32(rest)
		if err != nil {
			return err
		}
		data, err := mgr.Read(handle.FromScalar(v))
		if err != nil {
			return err
		}
		fmt.Printf("%d bytes: %q\n", len(data), data)

	case "status":
		code, err := parseUint32(rest)
		if err != nil {
			return err
		}
		if code > 0xFFFF {
			return fmt.Errorf("status code %d does not fit in 16 bits", code)
		}
		h := handle.Status(uint16(code))
		fmt.Printf("%s  scalar=%d (0x%08x)\n", h, h.Scalar(), h.Scalar())

	case "top":
		fmt.Printf("stack pointer at %d, %d bytes free\n", mgr.Top(), uint32(handle.PageSize)-mgr.Top())

	case "rewind":
		to, err := parseUint32(rest)
		if err != nil {
			return err
		}
		if err := mgr.Rewind(to); err != nil {
			return err
		}
		fmt.Printf("stack pointer at %d\n", mgr.Top())

	case "reset":
		mgr.Reset()
		fmt.Println("stack pointer at 0")

	case "help":
		fmt.Println(strings.TrimSpace(replCmd.Long))

	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
	return nil
}

func parseUint32(s string) (uint32, error) {
	if s == "" {
		return 0, fmt.Errorf("missing numeric argument")
	}
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return uint32(v), nil
}
