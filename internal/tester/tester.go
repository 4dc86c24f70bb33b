// Package tester runs the document upload smoke test end to end.
package tester

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"uploadtest/internal/credential"
	"uploadtest/internal/model"
	"uploadtest/internal/report"
	"uploadtest/internal/sample"
	"uploadtest/internal/uploader"
)

// Outcome summarizes a run. The process exit status does not depend on it.
type Outcome int

const (
	OutcomePassed Outcome = iota
	OutcomeFailed
	OutcomeRequestError
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomePassed:
		return "passed"
	case OutcomeFailed:
		return "failed"
	case OutcomeRequestError:
		return "request_error"
	default:
		return "error"
	}
}

// ImageFinder discovers an existing sample image.
type ImageFinder interface {
	Find() (sample.Image, bool, error)
}

// Uploader submits the application form.
type Uploader interface {
	Upload(ctx context.Context, token string, app model.Application, document io.Reader) (*uploader.Response, error)
}

// Options wires a Tester.
type Options struct {
	Tokens       credential.TokenProvider
	Finder       ImageFinder
	Synthesizer  sample.Synthesizer
	Uploader     Uploader
	Application  model.Application
	DownloadsDir string
	Out          io.Writer
	Logger       *zap.Logger
}

// Tester performs one upload run.
type Tester struct {
	tokens       credential.TokenProvider
	finder       ImageFinder
	synth        sample.Synthesizer
	upload       Uploader
	app          model.Application
	downloadsDir string
	out          report.Printer
	log          *zap.Logger
}

func New(opts Options) *Tester {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Tester{
		tokens:       opts.Tokens,
		finder:       opts.Finder,
		synth:        opts.Synthesizer,
		upload:       opts.Uploader,
		app:          opts.Application,
		downloadsDir: opts.DownloadsDir,
		out:          report.Printer{Out: out},
		log:          log,
	}
}

// Run gathers a token and an image, sends the upload and prints the result.
// Every failure is printed; a placeholder created along the way is removed
// before Run returns, whatever the outcome.
func (t *Tester) Run(ctx context.Context) Outcome {
	t.out.Line("=== Document Upload Test ===\n")

	token, err := t.tokens.Token(ctx)
	if err != nil {
		t.out.Failed(err)
		return t.finish(OutcomeError)
	}

	img, ok := t.locate(ctx)
	if !ok {
		t.out.Line("\nNo image available. Testing without document...")
	}
	if img.Created {
		defer t.cleanup(img)
	}

	return t.finish(t.submit(ctx, token, img, ok))
}

func (t *Tester) locate(ctx context.Context) (sample.Image, bool) {
	t.out.Line("\nLooking for images in %s...", t.downloadsDir)

	img, ok, err := t.finder.Find()
	if err != nil {
		t.log.Warn("cannot scan downloads directory", zap.String("dir", t.downloadsDir), zap.Error(err))
	}
	if ok {
		t.out.Line("Found image: %s (%.2f MB)", img.Name, float64(img.Size)/(1024*1024))
		return img, true
	}

	t.out.Line("No suitable image found in Downloads")
	img, ok, err = t.synth.Synthesize(ctx)
	if err != nil {
		t.log.Warn("cannot produce sample image", zap.Error(err))
		return sample.Image{}, false
	}
	if !ok {
		return sample.Image{}, false
	}
	if img.Created {
		t.out.Line("Created test image: %s", img.Path)
	} else {
		t.out.Line("Using existing image: %s", img.Name)
	}
	return img, true
}

func (t *Tester) submit(ctx context.Context, token string, img sample.Image, haveImage bool) Outcome {
	var file *os.File
	if haveImage {
		f, err := os.Open(img.Path)
		switch {
		case err == nil:
			defer f.Close()
			file = f
			t.out.Line("Using image: %s", img.Path)
		case errors.Is(err, fs.ErrNotExist):
			t.log.Debug("selected image disappeared", zap.String("path", img.Path))
		default:
			t.out.Failed(fmt.Errorf("open image: %w", err))
			return OutcomeError
		}
	}
	if file == nil {
		t.out.Line("No image file provided, testing without document upload")
	}

	t.out.Line("\nSending test request...")

	var document io.Reader
	if file != nil {
		document = file
	}
	resp, err := t.upload.Upload(ctx, token, t.app, document)
	if err != nil {
		if uploader.IsRequestError(err) {
			t.out.RequestFailed(err)
			return OutcomeRequestError
		}
		t.out.Failed(err)
		return OutcomeError
	}

	passed, err := t.out.Response(resp)
	if err != nil {
		t.out.Failed(err)
		return OutcomeError
	}
	if !passed {
		return OutcomeFailed
	}
	return OutcomePassed
}

func (t *Tester) cleanup(img sample.Image) {
	if err := os.Remove(img.Path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.log.Warn("cannot remove test image", zap.String("path", img.Path), zap.Error(err))
		}
		return
	}
	t.out.Line("\nCleaned up test image")
}

func (t *Tester) finish(o Outcome) Outcome {
	t.log.Info("upload test finished", zap.Stringer("outcome", o))
	return o
}
