package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/squelette/spip-scanner/pkg/scanner"
	"gopkg.in/yaml.v3"
)

const (
	version = "0.1.0"
	usage   = `spip-scan - segment a SPIP template into content and construct boundaries

Usage:
  spip-scan [options]

Options:
  -h, --help            Show this help message
  -v, --version         Show version information
  --input <file>        Input file (defaults to stdin)
  --output <file>       Output file (defaults to stdout)
  --rules <file>        YAML rules file for custom scanning rules (optional)
  --make-rules          Generate default rules YAML to stdout

Examples:
  spip-scan --input squelette.html                   # Read from file, write to stdout
  spip-scan --rules custom.yaml --input page.html    # Use custom rules
  spip-scan --make-rules                             # Generate default rules configuration
  echo "Bonjour #NOM" | spip-scan                    # Read from stdin, write to stdout

The scanner outputs one JSON segment object per line.
`
)

func main() {
	var showHelp, showVersion, makeRules bool
	var inputFile, outputFile, rulesFile string

	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&makeRules, "make-rules", false, "Generate default rules YAML")
	flag.StringVar(&inputFile, "input", "", "Input file (defaults to stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (defaults to stdout)")
	flag.StringVar(&rulesFile, "rules", "", "YAML rules file (optional)")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("spip-scan version %s\n", version)
		os.Exit(0)
	}

	if makeRules {
		if err := generateDefaultConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating default rules: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Reject any positional arguments
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var input string
	var err error

	if inputFile == "" {
		input, err = readFromStdin()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading from stdin: %v\n", err)
			os.Exit(1)
		}
	} else {
		input, err = readFromFile(inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file '%s': %v\n", inputFile, err)
			os.Exit(1)
		}
	}

	// Load rules if specified
	var s *scanner.Scanner
	if rulesFile != "" {
		rules, err := scanner.LoadRulesFile(rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading rules file '%s': %v\n", rulesFile, err)
			os.Exit(1)
		}

		scannerRules, err := scanner.ApplyRulesToDefaults(rules)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error applying rules: %v\n", err)
			os.Exit(1)
		}
		s = scanner.NewScannerWithRules(scannerRules)
	} else {
		s = scanner.NewScanner()
	}

	segments := scanner.NewSegmenter(s).Segment(input)

	// Prepare output destination
	var output io.Writer
	var outputCloser io.Closer

	if outputFile == "" {
		output = os.Stdout
	} else {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
		output = file
		outputCloser = file
	}

	// Output segments as JSON, one per line
	for _, segment := range segments {
		jsonBytes, err := json.Marshal(segment)
		if err != nil {
			fmt.Fprintf(os.Stderr, "JSON encoding error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(output, string(jsonBytes))
	}

	if outputCloser != nil {
		if err := outputCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing output file '%s': %v\n", outputFile, err)
			os.Exit(1)
		}
	}
}

// readFromStdin reads all input from stdin.
func readFromStdin() (string, error) {
	bytes, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// readFromFile reads the contents of a file.
func readFromFile(filename string) (string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// generateDefaultConfig outputs the default configuration in YAML format to stdout.
func generateDefaultConfig() error {
	yamlBytes, err := yaml.Marshal(scanner.DefaultRulesFile())
	if err != nil {
		return fmt.Errorf("failed to marshal rules to YAML: %w", err)
	}

	fmt.Print(string(yamlBytes))
	return nil
}
