package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/sarchlab/asmdone/api"
	"github.com/sarchlab/asmdone/config"
	"github.com/sarchlab/asmdone/core"
	"github.com/tebeka/atexit"
)

//go:embed countdown.ad
var countdownProgram string

//go:embed packages/step.ad
var stepLibrary string

func main() {
	cfg := config.Default()

	driver := api.NewDriverBuilder().
		WithConfig(cfg).
		WithResolver(core.MapResolver{"step": stepLibrary}).
		WithOutputSink(api.WriterOutputSink{W: os.Stdout}).
		WithRegisterSink(api.TableRegisterSink{W: os.Stdout, Title: cfg.Messages().Registers}).
		Build()

	res := driver.Run("countdown", countdownProgram)

	if b2, _ := res.Registers.Value("b2"); b2 != 10 {
		fmt.Printf("unexpected sum %d\n", b2)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
