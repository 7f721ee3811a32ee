package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/revelaction/udpipe-go/render"
)

// Option structs for subcommands that have flags
type ParseOptions struct {
	Model  string
	Strict bool
	Format string
	Count  int
}

type ImportOptions struct {
	DocPath string
	Labels  []string
	Strict  bool
	Title   string
}

type DocOptions struct {
	DocPath string
	Start   int
	Count   int
	Format  string
}

type SentenceOptions struct {
	DocPath string
}

type SearchOptions struct {
	DocPath string
	Labels  []string
	Format  string
	Limit   int
}

type LabelsOptions struct {
	DocPath string
	Match   string
}

type StatOptions struct {
	DocPath string
}

type ReplOptions struct {
	DocPath string
	Format  string
	Limit   int
}

type DownloadOptions struct {
	Dir string
	URL string
}

// stringSliceFlag implements flag.Value for multi-value strings
type stringSliceFlag []string

func (s *stringSliceFlag) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSliceFlag) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// enumFlag implements flag.Value for restricted strings
type enumFlag struct {
	allowed []string
	value   *string
}

func (e *enumFlag) String() string {
	if e.value == nil {
		return ""
	}
	return *e.value
}

func (e *enumFlag) Set(value string) error {
	for _, a := range e.allowed {
		if a == value {
			*e.value = value
			return nil
		}
	}
	return fmt.Errorf("allowed values are %s", strings.Join(e.allowed, ", "))
}

// optionalInt implements flag.Value for optional integer flags
type optionalInt struct {
	value *int
}

func (o *optionalInt) String() string {
	if o.value == nil {
		return ""
	}
	return strconv.Itoa(*o.value)
}

func (o *optionalInt) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	o.value = &v
	return nil
}

func parseMainArgs(args []string, ui UI) (string, []string, error) {
	fs := flag.NewFlagSet("udpipe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	setupUsage(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return "", nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return "", nil, err
	}

	if fs.NArg() == 0 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return "", nil, errors.New("no command provided")
	}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]
	return cmd, cmdArgs, nil
}

func parseParseArgs(args []string, ui UI) (ParseOptions, string, error) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ParseOptions
	fs.StringVar(&opts.Model, "model", os.Getenv("UDPIPE_MODEL"), "Path to the model file")
	fs.StringVar(&opts.Model, "m", os.Getenv("UDPIPE_MODEL"), "alias for -model")

	fs.BoolVar(&opts.Strict, "strict", false, "Fail on malformed or incomplete input")

	fs.IntVar(&opts.Count, "n", -1, "Number of sentences to process (-1 for all)")

	opts.Format = render.Defaultformat
	formatFlag := &enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}
	fs.Var(formatFlag, "format", "Output format: text, table, conllu or json")
	fs.Var(formatFlag, "f", "alias for -format")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s parse [options] [file]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Annotate text from a file or stdin, streaming one sentence at a time.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", err
	}

	if fs.NArg() > 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", errors.New("parse command accepts at most one argument")
	}

	return opts, fs.Arg(0), nil
}

func parseImportArgs(args []string, ui UI) (ImportOptions, []string, error) {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ImportOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("UDPIPE_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("UDPIPE_DOC_PATH"), "alias for -doc-path")

	labels := (*stringSliceFlag)(&opts.Labels)
	fs.Var(labels, "label", "Label to attach to the imported documents (repeatable)")
	fs.Var(labels, "l", "alias for -label")

	fs.StringVar(&opts.Title, "title", "", "Title for the imported document (defaults to the file name)")
	fs.BoolVar(&opts.Strict, "strict", false, "Fail on malformed or incomplete input")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s import [options] <file> ...\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Annotate files and store them as documents.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, nil, err
	}

	if fs.NArg() < 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, nil, errors.New("import command needs at least one file")
	}

	if opts.DocPath == "" {
		return opts, nil, errors.New("Doc path must be specified via -d or UDPIPE_DOC_PATH")
	}

	if opts.Title != "" && fs.NArg() > 1 {
		return opts, nil, errors.New("-title can only be used with a single file")
	}

	return opts, fs.Args(), nil
}

func parseDocArgs(args []string, ui UI) (DocOptions, string, error) {
	fs := flag.NewFlagSet("doc", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts DocOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("UDPIPE_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("UDPIPE_DOC_PATH"), "alias for -doc-path")

	fs.IntVar(&opts.Start, "start", 0, "Index of the first sentence to show")
	fs.IntVar(&opts.Count, "n", -1, "Number of sentences to show (-1 for all)")

	opts.Format = render.Defaultformat
	formatFlag := &enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}
	fs.Var(formatFlag, "format", "Output format: text, table, conllu or json")
	fs.Var(formatFlag, "f", "alias for -format")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s doc [options] [docId]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  List stored documents, or show the sentences of one document.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", err
	}

	if fs.NArg() > 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", errors.New("doc command accepts at most one argument")
	}

	if opts.DocPath == "" {
		return opts, "", errors.New("Doc path must be specified via -d or UDPIPE_DOC_PATH")
	}

	return opts, fs.Arg(0), nil
}

func parseSentenceArgs(args []string, ui UI) (SentenceOptions, int, int, *int, error) {
	fs := flag.NewFlagSet("sentence", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SentenceOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("UDPIPE_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("UDPIPE_DOC_PATH"), "alias for -doc-path")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s sentence [options] <docId> <sentenceId> [offset]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show the words of a specific sentence.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, 0, 0, nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, 0, 0, nil, err
	}

	if fs.NArg() < 2 || fs.NArg() > 3 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, 0, 0, nil, errors.New("sentence command needs two arguments: <docId> <sentenceId> [offset]")
	}

	if opts.DocPath == "" {
		return opts, 0, 0, nil, errors.New("Doc path must be specified via -d or UDPIPE_DOC_PATH")
	}

	docId, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return opts, 0, 0, nil, fmt.Errorf("invalid docId: %v", err)
	}

	sentId, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return opts, 0, 0, nil, fmt.Errorf("invalid sentenceId: %v", err)
	}

	var offset *int
	if fs.NArg() == 3 {
		v, err := strconv.Atoi(fs.Arg(2))
		if err != nil {
			return opts, 0, 0, nil, fmt.Errorf("invalid offset: %v", err)
		}
		offset = &v
	}

	return opts, docId, sentId, offset, nil
}

func parseSearchArgs(args []string, ui UI) (SearchOptions, []string, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts SearchOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("UDPIPE_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("UDPIPE_DOC_PATH"), "alias for -doc-path")

	labels := (*stringSliceFlag)(&opts.Labels)
	fs.Var(labels, "label", "Only search documents that match the labels (contains)")
	fs.Var(labels, "l", "alias for -label")

	fs.IntVar(&opts.Limit, "n", 100, "Maximum number of sentences to show")

	opts.Format = render.Defaultformat
	formatFlag := &enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}
	fs.Var(formatFlag, "format", "Output format: text, table, conllu or json")
	fs.Var(formatFlag, "f", "alias for -format")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s search [options] <lemma> ...\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show stored sentences containing all given lemmas.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, nil, err
	}

	if fs.NArg() < 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, nil, errors.New("search command needs at least one lemma")
	}

	if opts.DocPath == "" {
		return opts, nil, errors.New("Doc path must be specified via -d or UDPIPE_DOC_PATH")
	}

	return opts, fs.Args(), nil
}

func parseLabelsArgs(args []string, ui UI) (LabelsOptions, error) {
	fs := flag.NewFlagSet("labels", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts LabelsOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("UDPIPE_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("UDPIPE_DOC_PATH"), "alias for -doc-path")
	fs.StringVar(&opts.Match, "match", "", "Only show labels containing this string")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s labels [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  List labels of the stored documents.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if opts.DocPath == "" {
		return opts, errors.New("Doc path must be specified via -d or UDPIPE_DOC_PATH")
	}

	return opts, nil
}

func parseStatArgs(args []string, ui UI) (StatOptions, *int, error) {
	fs := flag.NewFlagSet("stat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts StatOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("UDPIPE_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("UDPIPE_DOC_PATH"), "alias for -doc-path")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s stat [options] [docId]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Show statistics for one document or the whole corpus.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, nil, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, nil, err
	}

	if fs.NArg() > 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, nil, errors.New("stat command accepts at most one argument")
	}

	if opts.DocPath == "" {
		return opts, nil, errors.New("Doc path must be specified via -d or UDPIPE_DOC_PATH")
	}

	var docId *int
	if fs.NArg() == 1 {
		v, err := strconv.Atoi(fs.Arg(0))
		if err != nil {
			return opts, nil, fmt.Errorf("invalid docId: %v", err)
		}
		docId = &v
	}

	return opts, docId, nil
}

func parseReplArgs(args []string, ui UI) (ReplOptions, error) {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts ReplOptions
	fs.StringVar(&opts.DocPath, "doc-path", os.Getenv("UDPIPE_DOC_PATH"), "Path to docs directory or SQLite file")
	fs.StringVar(&opts.DocPath, "d", os.Getenv("UDPIPE_DOC_PATH"), "alias for -doc-path")

	fs.IntVar(&opts.Limit, "n", 100, "Maximum number of sentences to show per query")

	opts.Format = render.Defaultformat
	formatFlag := &enumFlag{allowed: render.SupportedFormats(), value: &opts.Format}
	fs.Var(formatFlag, "format", "Initial output format: text, table, conllu or json")
	fs.Var(formatFlag, "f", "alias for -format")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s repl [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Enter interactive search mode.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, err
	}

	if opts.DocPath == "" {
		return opts, errors.New("Doc path must be specified via -d or UDPIPE_DOC_PATH")
	}

	return opts, nil
}

func parseDownloadArgs(args []string, ui UI) (DownloadOptions, string, error) {
	fs := flag.NewFlagSet("download", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var opts DownloadOptions
	fs.StringVar(&opts.Dir, "dir", os.Getenv("UDPIPE_MODEL_DIR"), "Directory where the model will be saved")
	fs.StringVar(&opts.URL, "url", "", "Download from a custom URL instead of the model repository")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s download [options] <language>\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Download a pre-trained model, e.g. english-ewt or spanish-ancora.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return opts, "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return opts, "", err
	}

	if opts.URL != "" {
		if fs.NArg() != 0 {
			return opts, "", errors.New("-url cannot be combined with a language argument")
		}
		return opts, "", nil
	}

	if fs.NArg() != 1 {
		fs.SetOutput(ui.Err)
		fs.Usage()
		return opts, "", errors.New("download command needs exactly one argument: <language>")
	}

	if opts.Dir == "" {
		opts.Dir = "."
	}

	return opts, fs.Arg(0), nil
}

func parseModelsArgs(args []string, ui UI) (string, error) {
	fs := flag.NewFlagSet("models", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var match string
	fs.StringVar(&match, "match", "", "Only show languages containing this string")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s models [options]\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  List the languages with a downloadable pre-trained model.\n")
		_, _ = fmt.Fprintf(fs.Output(), "\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return "", err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return "", err
	}

	return match, nil
}

func parseBashArgs(args []string, ui UI) error {
	fs := flag.NewFlagSet("bash", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: %s bash\n", os.Args[0])
		_, _ = fmt.Fprintf(fs.Output(), "\nDescription:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  Output bash completion script.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(ui.Out)
			fs.Usage()
			return err
		}
		fs.SetOutput(ui.Err)
		fprintErr(ui.Err, err)
		fs.Usage()
		return err
	}
	return nil
}

func parseCompleteArgs(args []string, ui UI) ([]string, error) {
	fs := flag.NewFlagSet("complete", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return fs.Args(), nil
}

func setupUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: %s command [command options] [arguments...]\n", os.Args[0])
		_, _ = fmt.Fprintf(output, "\nDescription:\n")
		_, _ = fmt.Fprintf(output, "  Tokenize, tag, lemmatize and parse text into annotated sentences\n")
		_, _ = fmt.Fprintf(output, "\nCommands:\n")
		_, _ = fmt.Fprintf(output, "  parse     Annotate text from a file or stdin.\n")
		_, _ = fmt.Fprintf(output, "  import    Annotate files and store them as documents.\n")
		_, _ = fmt.Fprintf(output, "  doc       List stored documents or show one document.\n")
		_, _ = fmt.Fprintf(output, "  sentence  Show the words of a specific sentence.\n")
		_, _ = fmt.Fprintf(output, "  search    Show stored sentences containing all given lemmas.\n")
		_, _ = fmt.Fprintf(output, "  labels    List labels of the stored documents.\n")
		_, _ = fmt.Fprintf(output, "  stat      Show statistics for a document or the corpus.\n")
		_, _ = fmt.Fprintf(output, "  repl      Enter interactive search mode.\n")
		_, _ = fmt.Fprintf(output, "  download  Download a pre-trained model.\n")
		_, _ = fmt.Fprintf(output, "  models    List downloadable models.\n")
		_, _ = fmt.Fprintf(output, "  bash      Output bash completion script.\n")
		_, _ = fmt.Fprintf(output, "  version   Show version information.\n")
		_, _ = fmt.Fprintf(output, "  help      Show help for a command.\n")
	}
}
