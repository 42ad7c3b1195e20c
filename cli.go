package main

import (
	"flag"
	"fmt"
	"os"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `Tern - front end for the Tern programming language

Usage:
    tern <command> [arguments]

Commands:
    check <file>    Parse and type-check a .tern file
    parse <file>    Print the AST of a .tern file as an s-expression
    tokens <file>   Print the token stream of a .tern file
    help            Show this help message

Examples:
    tern check examples/fizzbuzz.tern
    tern parse -e 'let x: int = 1 + 2'
    tern tokens myfile.tern

Use "tern <command> -h" for more information about a command.
`)
}

// readSource resolves the -e flag against the positional file argument and
// returns the source text plus the name diagnostics should carry.
func readSource(fs *flag.FlagSet, inline string) (string, string) {
	if inline != "" {
		if fs.NArg() != 0 {
			fmt.Fprintf(os.Stderr, "Error: -e and a file argument are mutually exclusive\n")
			fs.Usage()
			os.Exit(1)
		}
		return inline, "<eval>"
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}
	filename := fs.Arg(0)
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}
	return string(sourceBytes), filename
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	inline := fs.String("e", "", "Check inline code instead of a file")
	verbose := fs.Bool("v", false, "Show the AST after a successful check")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tern check [-v] [-e code] <file>\n")
		fmt.Fprintf(os.Stderr, "Parse and type-check a .tern file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	src, name := readSource(fs, *inline)

	prog, err := ParseSource(src, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if _, err := Analyze(prog); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", name)
	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(prog))
	}
}

func parseCommand(args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	inline := fs.String("e", "", "Parse inline code instead of a file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tern parse [-e code] <file>\n")
		fmt.Fprintf(os.Stderr, "Print the AST of a .tern file as an s-expression\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	src, name := readSource(fs, *inline)

	prog, err := ParseSource(src, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Println(ToSExpr(prog))
}

func tokensCommand(args []string) {
	fs := flag.NewFlagSet("tokens", flag.ExitOnError)
	inline := fs.String("e", "", "Tokenize inline code instead of a file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tern tokens [-e code] <file>\n")
		fmt.Fprintf(os.Stderr, "Print the token stream of a .tern file\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	src, name := readSource(fs, *inline)

	tokens, err := Scan(src, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	for _, tok := range tokens {
		if tok.Kind == EOF {
			break
		}
		fmt.Printf("%d:%d\t%s\t%q\n", tok.Span.StartLine, tok.Span.StartCol, tok.Kind, tok.Lexeme)
	}
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		checkCommand(args)
	case "parse":
		parseCommand(args)
	case "tokens":
		tokensCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
