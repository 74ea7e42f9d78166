// Package progress renders candidate-test progress bars on stderr. The
// search engine only sees the search.Progress interface, so tests and
// quiet runs simply pass no factory.
package progress

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/keyscout/keyscout/pkg/search"
)

// Bar is a search.ProgressFunc backed by a terminal progress bar.
func Bar(total int, label string) search.Progress {
	return &bar{inner: progressbar.NewOptions(total,
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)}
}

type bar struct {
	inner *progressbar.ProgressBar
}

func (b *bar) Add(n int) {
	_ = b.inner.Add(n)
}

func (b *bar) Finish() {
	_ = b.inner.Finish()
}
