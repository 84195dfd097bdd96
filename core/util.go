package core

import (
	"context"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelDebug - 4
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// RenderRegisters draws the register snapshot as a table.
func RenderRegisters(title string, s Snapshot) string {
	regTable := table.NewWriter()
	if title != "" {
		regTable.SetTitle(title)
	}

	regTable.AppendHeader(table.Row{"Register", "Value"})
	for _, r := range Registers() {
		regTable.AppendRow(table.Row{r.Name(), s.Get(r)})
	}

	return regTable.Render()
}

func LogState(r Result) {
	slog.Debug("StateCheckpoint",
		"Status", r.Status,
		"PC", r.PC,
		"Steps", r.Steps,
		"Registers", r.Registers.Map(),
	)
}
