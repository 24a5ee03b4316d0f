package featuretable

import (
	"github.com/charmbracelet/log"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/graphics"
	"github.com/dnrgps/dnrgps/pkg/host"
)

// ProgressInterval is the number of rows between progress reports.
const ProgressInterval = 10

// ProgressFunc receives the number of rows processed so far and the total
// fixed before iteration began.
type ProgressFunc func(processed, total int)

// Codec converts between the host and tables.
type Codec struct {
	Session *host.Session
	// Engine draws injected geometries.
	Engine *graphics.Engine
	Logger *log.Logger
	// Progress is optional.
	Progress ProgressFunc
}

// New creates a codec for s that draws through eng. If logger is nil,
// log.Default() is used.
func New(s *host.Session, eng *graphics.Engine, logger *log.Logger) *Codec {
	if logger == nil {
		logger = log.Default()
	}
	return &Codec{
		Session: s,
		Engine:  eng,
		Logger:  logger.WithPrefix("featuretable"),
	}
}

func (c *Codec) focusMap() (host.Map, error) {
	m := c.Session.FocusMap()
	if m == nil {
		return nil, errors.New(errors.ErrCodeNotAttached, "no focus map")
	}
	return m, nil
}

// progress counts processed rows and reports every ProgressInterval rows.
type progress struct {
	fn    ProgressFunc
	total int
	done  int
}

func (c *Codec) newProgress(total int) *progress {
	return &progress{fn: c.Progress, total: total}
}

func (p *progress) step() {
	p.done++
	if p.fn != nil && p.done%ProgressInterval == 0 {
		p.fn(p.done, p.total)
	}
}

// finish reports completion unless the last step already did.
func (p *progress) finish() {
	if p.fn != nil && (p.done == 0 || p.done%ProgressInterval != 0) {
		p.fn(p.done, p.total)
	}
}
