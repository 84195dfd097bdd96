package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/asmdone/api"
	"github.com/sarchlab/asmdone/terminal"
)

const (
	historyFile = ".asmdone_history"
	prompt      = "asmdone$ "
)

// shellCmd represents the shell command
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell() error {
	msgs := cfg.Messages()
	fmt.Printf("%s %s\n", msgs.Title, terminal.VersionLine())

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer saveHistory(ln, histPath)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go handleSignals(sigc, ln, histPath, atexit.Exit)

	output := api.WriterOutputSink{W: os.Stdout}
	shell := terminal.NewShell(
		newDriver(),
		output,
		api.TableRegisterSink{W: os.Stdout, Title: msgs.Registers},
	)
	if err := shell.Register(terminal.AsmPlugin{}); err != nil {
		return err
	}

	shell.Execute("hello")

	for !shell.Done() {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if err != nil {
			return err
		}

		shell.Execute(line)
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}

	return nil
}

func saveHistory(ln *liner.State, histPath string) {
	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// handleSignals waits for a termination signal, keeps the history and
// restores the terminal before exiting with status 130.
func handleSignals(sigc <-chan os.Signal, ln *liner.State, histPath string, exit func(int)) {
	if _, ok := <-sigc; !ok {
		return
	}

	saveHistory(ln, histPath)
	ln.Close()
	exit(130)
}
