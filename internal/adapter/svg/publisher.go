package svg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/couchcryptid/landmask-etl/internal/domain"
)

// Publisher renders each land map, writes it to path (when set) and keeps the
// latest document for Latest.
type Publisher struct {
	path   string
	style  Style
	logger *slog.Logger

	mu     sync.RWMutex
	latest []byte
}

func NewPublisher(path string, style Style, logger *slog.Logger) *Publisher {
	return &Publisher{path: path, style: style, logger: logger}
}

func (p *Publisher) Name() string { return "svg" }

func (p *Publisher) Publish(_ context.Context, lm domain.LandMap) error {
	doc, err := RenderBytes(lm.Mask, p.style)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if p.path != "" {
		if err := writeFileAtomic(p.path, doc); err != nil {
			return err
		}
		p.logger.Info("land map written", "path", p.path, "bytes", len(doc))
	}

	p.mu.Lock()
	p.latest = doc
	p.mu.Unlock()
	return nil
}

// Latest returns the most recently rendered document.
func (p *Publisher) Latest() ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.latest != nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".landmask-*.svg")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
