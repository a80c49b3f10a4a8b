package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/mdhtml"
	"pkt.systems/mdhtml/internal/logging"
	"pkt.systems/version"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("pkt.systems/mdhtml")
}

func main() {
	var (
		outPath         string
		rootTag         string
		fragment        bool
		keepFrontMatter bool
		blocksMode      bool
		widthFlag       int
		logLevel        string
		logFormat       string
		showVersion     bool
	)

	flags := pflag.NewFlagSet("mdhtml", pflag.ExitOnError)
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&rootTag, "root-tag", mdhtml.DefaultRootTag, "Tag of the element wrapping the document")
	flags.BoolVarP(&fragment, "fragment", "f", false, "Emit block elements without the wrapping element")
	flags.BoolVar(&keepFrontMatter, "keep-front-matter", false, "Treat a leading front matter block as Markdown")
	flags.BoolVar(&blocksMode, "blocks", false, "Print the classified block outline instead of HTML")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Outline width override (0 uses terminal width if available)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.StringVar(&logFormat, "log-format", "text", "Log format: text|json")
	flags.BoolVar(&showVersion, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: mdhtml [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nIf no input is provided, Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVersion {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-level: %v\n", err)
		os.Exit(2)
	}
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-format: %v\n", err)
		os.Exit(2)
	}
	logger := logging.New(os.Stderr, level, format)

	reader, closer, err := openInputs(flags.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdhtml: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mdhtml: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if blocksMode {
		width := resolveWidth(widthFlag, writer)
		if err := renderOutline(reader, writer, width, keepFrontMatter); err != nil {
			fmt.Fprintf(os.Stderr, "outline: %v\n", err)
			os.Exit(1)
		}
		return
	}

	err = mdhtml.Render(mdhtml.RenderRequest{
		Reader: reader,
		Writer: writer,
		Options: []mdhtml.RenderOption{
			mdhtml.WithRootTag(rootTag),
			mdhtml.WithFragment(fragment),
			mdhtml.WithKeepFrontMatter(keepFrontMatter),
			mdhtml.WithLogger(logger),
		},
	})
	if err != nil {
		logger.Error("render failed", "error", err)
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
	if isTerminal(writer) {
		fmt.Fprintln(writer)
	}
	logger.Info("rendered", "output", outputName(outPath))
}

func outputName(path string) string {
	if strings.TrimSpace(path) == "" {
		return "stdout"
	}
	return normalizePath(path)
}

func resolveWidth(width int, w io.Writer) int {
	if width > 0 {
		return width
	}
	return terminalWidth(w, defaultWidth)
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if tw, _, err := term.GetSize(fd); err == nil && tw > 0 {
				return tw
			}
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cw, err := strconv.Atoi(value); err == nil && cw > 0 {
			return cw
		}
	}
	return fallback
}

// opener yields one input on first read.
type opener func() (io.ReadCloser, error)

// inputChain reads its inputs back to back, opening each lazily and closing
// it once drained.
type inputChain struct {
	pending []opener
	cur     io.ReadCloser
	done    bool
}

func (c *inputChain) Read(p []byte) (int, error) {
	for !c.done {
		if c.cur == nil {
			if len(c.pending) == 0 {
				c.done = true
				break
			}
			rc, err := c.pending[0]()
			if err != nil {
				return 0, err
			}
			c.cur, c.pending = rc, c.pending[1:]
		}
		n, err := c.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		switch {
		case errors.Is(err, io.EOF):
			_ = c.cur.Close()
			c.cur = nil
		case err != nil:
			return 0, err
		}
	}
	return 0, io.EOF
}

func (c *inputChain) Close() error {
	c.done = true
	if c.cur == nil {
		return nil
	}
	err := c.cur.Close()
	c.cur = nil
	return err
}

// blockBreak keeps the last block of one input apart from the first block of
// the next.
func blockBreak() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("\n\n")), nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	chain := &inputChain{pending: make([]opener, 0, 2*len(args)-1)}
	for i, arg := range args {
		open, err := inputOpener(arg)
		if err != nil {
			return nil, nil, err
		}
		if i > 0 {
			chain.pending = append(chain.pending, blockBreak)
		}
		chain.pending = append(chain.pending, open)
	}
	return chain, chain, nil
}

// inputOpener resolves an argument to a file path, file:// URL or
// http(s):// URL. Nothing is opened until the input is read.
func inputOpener(arg string) (opener, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(arg)
	if err != nil || u.Scheme == "" {
		return func() (io.ReadCloser, error) { return openFile(arg) }, nil
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return func() (io.ReadCloser, error) { return openURL(arg) }, nil
	case "file":
		path := u.Path
		if path == "" {
			path = u.Host
		}
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
		return func() (io.ReadCloser, error) { return openFile(path) }, nil
	}
	return func() (io.ReadCloser, error) { return openFile(arg) }, nil
}

func openURL(raw string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", raw, err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", raw, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("open %s: status %s", raw, resp.Status)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", path, err)
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, fmt.Errorf("create output %s: %w", path, err)
	}
	return f, f, nil
}

// normalizePath expands a leading ~ and makes the path absolute when
// possible.
func normalizePath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
