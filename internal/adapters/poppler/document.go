// Package poppler opens PDF documents with the poppler command line tools:
// pdfinfo for the page count and pdftoppm for rasterization.
package poppler

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"pdfsat/internal/ports"
)

var ErrNoPageCount = errors.New("pdfinfo reported no page count")

// Opener opens PDF files
type Opener struct {
	pdfinfo  string
	pdftoppm string
	logger   *slog.Logger
}

// NewOpener locates the poppler binaries. If binDir is empty they are
// looked up on $PATH.
func NewOpener(binDir string, logger *slog.Logger) (*Opener, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	o := &Opener{logger: logger.With("component", "poppler")}

	var err error
	if o.pdfinfo, err = locate(binDir, "pdfinfo"); err != nil {
		return nil, err
	}
	if o.pdftoppm, err = locate(binDir, "pdftoppm"); err != nil {
		return nil, err
	}
	return o, nil
}

func locate(binDir, name string) (string, error) {
	if binDir != "" {
		name = filepath.Join(binDir, name)
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("poppler %s not found: %w", filepath.Base(name), err)
	}
	return path, nil
}

// Open reads the page count of a PDF
func (o *Opener) Open(ctx context.Context, path string) (ports.Document, error) {
	out, err := o.run(ctx, o.pdfinfo, path)
	if err != nil {
		return nil, err
	}
	pages, err := parsePageCount(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	o.logger.Debug("opened", "path", path, "pages", pages)
	return &Document{
		opener: o,
		path:   path,
		pages:  pages,
	}, nil
}

func (o *Opener) run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s failed: %w", filepath.Base(bin), err)
		}
		return nil, fmt.Errorf("%s failed: %w: %s", filepath.Base(bin), err, msg)
	}
	return stdout.Bytes(), nil
}

// parsePageCount extracts the "Pages:" line from pdfinfo output.
func parsePageCount(out []byte) (int, error) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(key) != "Pages" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid page count %q", strings.TrimSpace(value))
		}
		return n, nil
	}
	return 0, ErrNoPageCount
}

// Document is an opened PDF. Each Rasterize call runs its own pdftoppm
// process, so concurrent calls are safe.
type Document struct {
	opener *Opener
	path   string
	pages  int
}

func (d *Document) Name() string   { return filepath.Base(d.path) }
func (d *Document) PageCount() int { return d.pages }

// Rasterize renders a 0-based page to an image at dpi
func (d *Document) Rasterize(ctx context.Context, page int, dpi float64) (image.Image, error) {
	if page < 0 || page >= d.pages {
		return nil, fmt.Errorf("page %d out of range [0, %d)", page, d.pages)
	}
	n := strconv.Itoa(page + 1)
	out, err := d.opener.run(ctx, d.opener.pdftoppm,
		"-f", n, "-l", n,
		"-r", strconv.FormatFloat(dpi, 'f', -1, 64),
		"-png", "-singlefile",
		d.path)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decoding page %d: %w", page+1, err)
	}
	return img, nil
}

// Close is a no-op; no handle is held between calls
func (d *Document) Close() error { return nil }
