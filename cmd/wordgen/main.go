package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"wordgen/internal/language"
	"wordgen/internal/library"
	"wordgen/internal/rules"
	"wordgen/internal/settings"
	"wordgen/internal/source"
	"wordgen/internal/wordlist"
)

// command describes a CLI subcommand.
type command struct {
	name  string
	short string
	usage string
	long  string
	run   func(args []string) error
}

const (
	generateUsage = "wordgen generate [-n count] [-seed N] [-retries N] [-o words.md] <rules>\n       wordgen generate [flags] -corpus <text-file> [-depth N]"
	extractUsage  = "wordgen extract [-depth N] [-o rules.yaml | -save <name> [-force]] <text-file>"
	verifyUsage   = "wordgen verify <rules>"
	removeUsage   = "wordgen remove <name>"
	playUsage     = "wordgen play [-seed N] <rules>"
)

var commands = []command{
	{
		name:  "generate",
		short: "Generate words from a rule set",
		usage: generateUsage,
		long: `Generate words from a YAML rule set and print them on one line.

<rules> is a path to a YAML file or the name of a rule set in the library
(~/.wordgen/local/<name>.yaml, then ~/.wordgen/examples/<name>.yaml).
With -corpus the rules are extracted from a text file instead.

The seed in use is printed to stderr; pass it back with -seed to repeat a run.
With -o the words are appended to a markdown word list, skipping duplicates.
`,
		run: runGenerate,
	},
	{
		name:  "extract",
		short: "Build a rule set from a text corpus",
		usage: extractUsage,
		long: `Extract pattern weights from a text file and write them as a rule set.

Patterns of 1 to -depth characters are counted. A <text-file> of "-" reads
standard input. Without -o or -save the YAML is printed to stdout. -save
stores it in the library under <name>.
`,
		run: runExtract,
	},
	{
		name:  "verify",
		short: "Check a rule set for structural errors",
		usage: verifyUsage,
		long: `Verify the alphabet, word_length bounds and pattern characters of a
rule set and report the first problem found.
`,
		run: runVerify,
	},
	{
		name:  "list",
		short: "List rule sets in the library",
		usage: "wordgen list",
		long: `List local and bundled rule sets. Local rule sets shadow bundled ones
of the same name.
`,
		run: runList,
	},
	{
		name:  "remove",
		short: "Delete a local rule set",
		usage: removeUsage,
		long: `Delete <name> from the local rule sets. Bundled examples cannot be removed.
`,
		run: runRemove,
	},
	{
		name:  "play",
		short: "Generate words interactively",
		usage: playUsage,
		long: `Open an interactive prompt. Type a word count and press enter to
generate a batch; q, esc or ctrl+c quits.
`,
		run: runPlay,
	},
}

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "wordgen: invented words from weighted letter patterns\n\n")
	fmt.Fprintf(w, "Usage:\n  wordgen <command> [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintf(w, "\nRun 'wordgen help <command>' for details on a specific command.\n")
}

func printCommandHelp(w io.Writer, name string) {
	for _, cmd := range commands {
		if cmd.name == name {
			fmt.Fprintf(w, "Usage: %s\n\n%s", cmd.usage, cmd.long)
			return
		}
	}
	fmt.Fprintf(w, "wordgen: unknown command %q\n\nRun 'wordgen help' for usage.\n", name)
}

func dispatch(args []string) error {
	if len(args) == 0 || args[0] == "--help" || args[0] == "-h" {
		printUsage(stdout)
		return nil
	}
	if args[0] == "help" {
		if len(args) >= 2 {
			printCommandHelp(stdout, args[1])
		} else {
			printUsage(stdout)
		}
		return nil
	}
	for _, cmd := range commands {
		if cmd.name == args[0] {
			return cmd.run(args[1:])
		}
	}
	return fmt.Errorf("unknown command %q\n\nRun 'wordgen help' for usage.", args[0])
}

// newFlags returns a flag set that reports errors instead of exiting.
func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// setup loads settings from the working directory and opens the library.
func setup() (*settings.Settings, *library.Library, error) {
	s, err := settings.Load(".")
	if err != nil {
		return nil, nil, err
	}
	lib, err := library.Open(s.Home)
	if err != nil {
		return nil, nil, err
	}
	return s, lib, nil
}

// compile loads, verifies and compiles the rules of src.
func compile(src source.Source, s *settings.Settings) (*language.Language, error) {
	r, err := src.Rules()
	if err != nil {
		return nil, err
	}
	if err := rules.Verify(r, rules.WithMinAlphabet(s.MinAlphabet)); err != nil {
		return nil, fmt.Errorf("%s: %w", src.Name(), err)
	}
	return language.Compile(r), nil
}

// newRand seeds a generator, drawing a seed when none was given, and
// reports the seed on stderr.
func newRand(seed uint64, given bool) (*rand.Rand, uint64) {
	if !given {
		seed = rand.Uint64()
	}
	fmt.Fprintf(stderr, "used seed: %d\n", seed)
	return rand.New(rand.NewPCG(seed, seed)), seed
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

func runGenerate(args []string) error {
	s, lib, err := setup()
	if err != nil {
		return err
	}

	fs := newFlags("generate")
	count := fs.Int("n", s.Count, "number of words")
	seed := fs.Uint64("seed", 0, "random seed")
	retries := fs.Int("retries", s.Retries, "extra walks per word that found no candidate")
	out := fs.String("o", "", "append words to this markdown word list")
	corpusPath := fs.String("corpus", "", "extract rules from this text file")
	depth := fs.Int("depth", s.Depth, "pattern depth for -corpus")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *count < 0 {
		return fmt.Errorf("generate: -n must not be negative")
	}

	var src source.Source
	switch {
	case *corpusPath != "":
		src = &source.Corpus{Path: *corpusPath, Depth: *depth}
	case fs.NArg() == 1:
		src = &source.File{Ref: fs.Arg(0), Library: lib}
	default:
		return fmt.Errorf("usage: %s", generateUsage)
	}

	lang, err := compile(src, s)
	if err != nil {
		return err
	}
	rng, used := newRand(*seed, isSet(fs, "seed"))

	words, err := lang.Words(*count, *retries, rng)
	if errors.Is(err, language.ErrNoCandidate) {
		return fmt.Errorf("generate: %w (try -retries or a wider word_length)", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, strings.Join(words, " "))

	if *out != "" {
		added, err := wordlist.Append(*out, src.Name(), used, words)
		if err != nil {
			return err
		}
		log.Printf("added %d new words to %s", added, *out)
	}
	return nil
}

// ---------------------------------------------------------------------------
// extract
// ---------------------------------------------------------------------------

func runExtract(args []string) error {
	s, lib, err := setup()
	if err != nil {
		return err
	}

	fs := newFlags("extract")
	depth := fs.Int("depth", s.Depth, "longest pattern length")
	out := fs.String("o", "", "write rules to this file")
	save := fs.String("save", "", "store rules in the library under this name")
	force := fs.Bool("force", false, "overwrite an existing library entry")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: %s", extractUsage)
	}
	if *out != "" && *save != "" {
		return fmt.Errorf("extract: -o and -save are mutually exclusive")
	}

	var src source.Source = &source.Corpus{Path: fs.Arg(0), Depth: *depth}
	if fs.Arg(0) == "-" {
		body, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		src = &source.Text{Label: "stdin", Body: string(body), Depth: *depth}
	}
	r, err := src.Rules()
	if err != nil {
		return err
	}

	switch {
	case *save != "":
		p, err := lib.Save(*save, r, *force)
		if err != nil {
			return err
		}
		log.Printf("saved %d patterns to %s", len(r.Patterns()), p)
	case *out != "":
		data, err := rules.Marshal(r)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", *out, err)
		}
		log.Printf("wrote %d patterns to %s", len(r.Patterns()), *out)
	default:
		data, err := rules.Marshal(r)
		if err != nil {
			return err
		}
		stdout.Write(data)
	}
	return nil
}

// ---------------------------------------------------------------------------
// verify
// ---------------------------------------------------------------------------

func runVerify(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", verifyUsage)
	}
	s, lib, err := setup()
	if err != nil {
		return err
	}
	p, err := lib.Resolve(args[0])
	if err != nil {
		return err
	}
	r, err := rules.Load(p)
	if err != nil {
		return err
	}
	if err := rules.Verify(r, rules.WithMinAlphabet(s.MinAlphabet)); err != nil {
		return fmt.Errorf("%s: %w", p, err)
	}
	fmt.Fprintf(stdout, "ok: %s (%d patterns)\n", p, len(r.Patterns()))
	return nil
}

// ---------------------------------------------------------------------------
// list
// ---------------------------------------------------------------------------

func runList(args []string) error {
	_, lib, err := setup()
	if err != nil {
		return err
	}
	entries, err := lib.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(stdout, "no rule sets in %s\n", lib.Dir)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(stdout, "%-20s %-9s %s\n", e.Name, e.Origin, e.Path)
	}
	return nil
}

func runRemove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s", removeUsage)
	}
	_, lib, err := setup()
	if err != nil {
		return err
	}
	if err := lib.Remove(args[0]); err != nil {
		return err
	}
	log.Printf("removed %s", args[0])
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("wordgen: ")
	if err := dispatch(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
