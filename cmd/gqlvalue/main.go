package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hanpama/gqlvalue/internal/docid"
	"github.com/hanpama/gqlvalue/internal/eventbus"
	"github.com/hanpama/gqlvalue/internal/events"
	"github.com/hanpama/gqlvalue/internal/language"
	"github.com/hanpama/gqlvalue/internal/otel"
	"github.com/hanpama/gqlvalue/internal/value"
	"github.com/hanpama/gqlvalue/internal/wire"
)

const rootUsage = `gqlvalue — GraphQL literal ↔ JSON tools

USAGE:
  gqlvalue <command> [flags]

COMMANDS:
  tojson           Convert a GraphQL literal to JSON
  fromjson         Convert JSON to a GraphQL literal
  check            Validate a GraphQL literal
  help             Show help for any command
`

const tojsonUsage = `tojson FLAGS:
  -in <file>                Input file; "-" reads stdin (default: -)
  -out <file>               Output file (default: stdout)
  -pretty                   Pretty-print the JSON output
  -otel.endpoint <addr>     OTLP collector endpoint
  -otel.service <name>      OpenTelemetry service name (default: gqlvalue)
`

const fromjsonUsage = `fromjson FLAGS:
  -in <file>                Input file; "-" reads stdin (default: -)
  -out <file>               Output file (default: stdout)
  -otel.endpoint <addr>     OTLP collector endpoint
  -otel.service <name>      OpenTelemetry service name (default: gqlvalue)
`

const checkUsage = `check FLAGS:
  -in <file>                Input file; "-" reads stdin (default: -)
  (Exits non-zero and lists diagnostics when the literal has no canonical form)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}
	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "tojson":
		return cmdToJSON(cmdArgs)
	case "fromjson":
		return cmdFromJSON(cmdArgs)
	case "check":
		return cmdCheck(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "tojson":
		fmt.Print(tojsonUsage)
	case "fromjson":
		fmt.Print(fromjsonUsage)
	case "check":
		fmt.Print(checkUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdToJSON(args []string) error {
	inPath := "-"
	outPath := ""
	pretty := false
	otelEndpoint := ""
	otelService := "gqlvalue"

	fs := flag.NewFlagSet("tojson", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&inPath, "in", inPath, "Input file")
	fs.StringVar(&outPath, "out", outPath, "Output file")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print the JSON output")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, tojsonUsage)
		return err
	}

	shutdown, err := setupTelemetry(otelEndpoint, otelService)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	ctx, _ := docid.NewContext(context.Background())

	node, err := runStage(ctx, "parse", inPath, func() (*language.Value, error) {
		return language.ParseValue(src)
	})
	if err != nil {
		return err
	}
	v, err := runStage(ctx, "convert", inPath, func() (value.Value, error) {
		v, ok := value.FromAST(node)
		if !ok {
			return nil, diagnosticError(node)
		}
		return v, nil
	})
	if err != nil {
		return err
	}
	out, err := runStage(ctx, "to_json", inPath, func() ([]byte, error) {
		if pretty {
			return wire.MarshalIndent(v)
		}
		return wire.Marshal(v)
	})
	if err != nil {
		return err
	}
	return writeOutput(outPath, append(out, '\n'))
}

func cmdFromJSON(args []string) error {
	inPath := "-"
	outPath := ""
	otelEndpoint := ""
	otelService := "gqlvalue"

	fs := flag.NewFlagSet("fromjson", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&inPath, "in", inPath, "Input file")
	fs.StringVar(&outPath, "out", outPath, "Output file")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, fromjsonUsage)
		return err
	}

	shutdown, err := setupTelemetry(otelEndpoint, otelService)
	if err != nil {
		return err
	}
	defer func() { _ = shutdown(context.Background()) }()

	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	ctx, _ := docid.NewContext(context.Background())

	v, err := runStage(ctx, "from_json", inPath, func() (value.Value, error) {
		return wire.Unmarshal([]byte(src))
	})
	if err != nil {
		return err
	}
	text, err := runStage(ctx, "format", inPath, func() (string, error) {
		return language.FormatValue(value.ToAST(v)), nil
	})
	if err != nil {
		return err
	}
	return writeOutput(outPath, []byte(text+"\n"))
}

func cmdCheck(args []string) error {
	inPath := "-"
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&inPath, "in", inPath, "Input file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}

	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	node, err := language.ParseValue(src)
	if err != nil {
		return err
	}
	if _, ok := value.FromAST(node); !ok {
		return diagnosticError(node)
	}
	fmt.Println("ok")
	return nil
}

// runStage runs one conversion stage, publishing start/finish events around
// it for the telemetry subscribers.
func runStage[T any](ctx context.Context, stage, source string, fn func() (T, error)) (T, error) {
	eventbus.Publish(ctx, events.ConvertStart{Stage: stage, Source: source})
	start := time.Now()
	out, err := fn()
	eventbus.Publish(ctx, events.ConvertFinish{Stage: stage, Err: err, Duration: time.Since(start)})
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%s: %w", stage, err)
	}
	return out, nil
}

func setupTelemetry(endpoint, service string) (func(context.Context) error, error) {
	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(endpoint, service)
	if err != nil {
		return nil, fmt.Errorf("otel setup: %w", err)
	}
	return shutdown, nil
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// diagnosticError explains why a parsed literal has no canonical form.
func diagnosticError(node *language.Value) error {
	probs := lintValue(node, "$")
	if len(probs) == 0 {
		return fmt.Errorf("literal has no canonical form")
	}
	msg := probs[0]
	for _, p := range probs[1:] {
		msg += "; " + p
	}
	return fmt.Errorf("literal has no canonical form: %s", msg)
}

// lintValue collects the reasons FromAST would report absence. path is a
// jq-style location for messages.
func lintValue(node *language.Value, path string) []string {
	if node == nil {
		return []string{fmt.Sprintf("%s: missing value", path)}
	}
	var probs []string
	switch node.Kind {
	case language.Variable:
		probs = append(probs, fmt.Sprintf("%s: variable $%s is not a literal", path, node.Raw))
	case language.IntValue:
		if _, err := strconv.ParseInt(node.Raw, 10, 32); err != nil {
			probs = append(probs, fmt.Sprintf("%s: int %s does not fit 32 bits", path, node.Raw))
		}
	case language.ListValue:
		for i, c := range node.Children {
			probs = append(probs, lintValue(c.Value, fmt.Sprintf("%s[%d]", path, i))...)
		}
	case language.ObjectValue:
		seen := map[string]bool{}
		for _, c := range node.Children {
			if seen[c.Name] {
				probs = append(probs, fmt.Sprintf("%s: duplicate field %q", path, c.Name))
			}
			seen[c.Name] = true
			probs = append(probs, lintValue(c.Value, path+"."+c.Name)...)
		}
	}
	return probs
}
