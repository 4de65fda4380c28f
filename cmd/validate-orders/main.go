package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Gunvolt24/order_queue/pkg/validate"
)

// CLI для офлайн-проверки черновиков заказов перед загрузкой в сервис или Kafka.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate-orders", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	outputPath := fs.String("out", "", "path for valid drafts. If empty, writes to stdout.")
	formatStr := fs.String("format", "auto", "input format: auto|json|jsonl")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx := context.Background()
	draftValidator := validate.NewOrderValidator()
	format := validate.InputFormat(*formatStr)

	path := *inputPath
	if path == "" {
		path = "/dev/stdin"
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
	}

	out := stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(stderr, "create output: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	summary, err := validate.ValidateFile(ctx, draftValidator, path, format, out)
	if err != nil {
		fmt.Fprintf(stderr, "validation: %v (%s)\n", err, summary)
		return 1
	}
	fmt.Fprintf(stderr, "validation ok (%s)\n", summary)
	return 0
}
