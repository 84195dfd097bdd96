package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sarchlab/asmdone/api"
	"github.com/sarchlab/asmdone/config"
	"github.com/tebeka/atexit"
)

//go:embed fibonacci.ad
var fibonacciProgram string

func main() {
	cfg := config.Default()
	cfg.Engine = config.EngineSim
	cfg.Language = "ru"

	driver := api.NewDriverBuilder().
		WithConfig(cfg).
		WithOutputSink(api.WriterOutputSink{W: os.Stdout}).
		WithRegisterSink(api.TableRegisterSink{W: os.Stdout, Title: cfg.Messages().Registers}).
		WithArtifactSink(api.FileArtifactSink{}).
		Build()

	res := driver.Run("fibonacci", fibonacciProgram)
	fmt.Println(res.Status, res.Steps)

	out, err := os.MkdirTemp("", "asmdone-fibonacci")
	if err != nil {
		fmt.Println(err)
		atexit.Exit(1)
	}

	artifact, err := driver.Save(filepath.Join(out, "fibonacci"), fibonacciProgram)
	if err != nil {
		atexit.Exit(1)
	}
	fmt.Println(artifact.Text)

	atexit.Exit(0)
}
