// Package progress renders terminal progress bars for long-running
// CLI batches.
package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Manager owns the shared mpb container so multiple bars render
// together without fighting over the terminal.
type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type Bar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
		mpb.WithWaitGroup(&sync.WaitGroup{}),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

func (m *Manager) NewBar(total int, description string) *Bar {
	if !m.enabled || m.container == nil {
		return &Bar{enabled: false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	bar := m.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " done ",
			),
		),
	)

	return &Bar{
		bar:     bar,
		enabled: true,
	}
}

// Wait blocks until all bars reach their totals.
func (m *Manager) Wait() {
	if m.enabled && m.container != nil {
		m.container.Wait()
	}
}

func (b *Bar) Increment() {
	if b.enabled && b.bar != nil {
		b.bar.Increment()
	}
}

func (b *Bar) Complete() {
	if b.enabled && b.bar != nil {
		b.bar.SetTotal(b.bar.Current(), true)
	}
}
