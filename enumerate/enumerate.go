// Package enumerate builds lower cones by exhaustive search.
//
// The lower cone of a uniform chirotope M is every chirotope obtained from M
// by zeroing a subset of its bases. LowerCone walks all 2^B subset masks in
// increasing numeric order, masks M with each, and emits the candidates the
// axiom checker accepts. The walk is single threaded and deterministic.
package enumerate

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/chirotope"
	"github.com/wippyai/chirotope/axiom"
	"github.com/wippyai/chirotope/basis"
	"github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/om"
)

const (
	// MaxBases is the largest basis count whose subsets fit one 64-bit mask.
	MaxBases = 64

	// DefaultProgressInterval is the number of masks between progress reports.
	DefaultProgressInterval = 1 << 16

	// masks between context polls
	pollInterval = 1 << 12

	// masks above this bit count are split into a high and a low word
	halfBits = 32
)

// Progress is a snapshot of a running enumeration.
type Progress struct {
	Bases    int
	Mask     uint64 // last mask checked
	Checked  uint64
	Accepted uint64
}

// Fraction returns the share of the 2^B masks already checked.
func (p Progress) Fraction() float64 {
	return float64(p.Checked) / math.Exp2(float64(p.Bases))
}

// Stats summarizes a finished enumeration.
type Stats struct {
	Checked  uint64
	Accepted uint64
	Duration time.Duration
}

// Recorder receives counts while an enumeration runs. metrics.Recorder
// implements it.
type Recorder interface {
	ObserveBatch(checked, accepted uint64)
	ObserveRun(d time.Duration, err error)
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithProgress registers fn to be called every progress interval.
func WithProgress(fn func(Progress)) Option {
	return func(e *Enumerator) { e.progress = fn }
}

// WithProgressInterval sets the number of masks between progress reports.
func WithProgressInterval(n uint64) Option {
	return func(e *Enumerator) {
		if n > 0 {
			e.interval = n
		}
	}
}

// WithMetrics reports counts to r.
func WithMetrics(r Recorder) Option {
	return func(e *Enumerator) { e.metrics = r }
}

// WithLogger overrides the package logger for this enumerator.
func WithLogger(l *zap.Logger) Option {
	return func(e *Enumerator) { e.log = l }
}

// Enumerator computes lower cones on one basis table. It is not safe for
// concurrent use.
type Enumerator struct {
	tab      *basis.Table
	checker  *axiom.Checker
	progress func(Progress)
	interval uint64
	metrics  Recorder
	log      *zap.Logger
}

// New returns an enumerator for tab. It fails when tab has more than
// MaxBases bases.
func New(tab *basis.Table, opts ...Option) (*Enumerator, error) {
	if tab.Count() > MaxBases {
		return nil, errors.Capacity("basis count", tab.Count(), MaxBases)
	}
	e := &Enumerator{
		tab:      tab,
		checker:  axiom.NewChecker(tab),
		interval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = Logger()
	}
	return e, nil
}

// LowerCone emits every chirotope below the uniform chirotope m to sink, in
// increasing mask order, and returns the number of masks checked and
// accepted. The context is polled between blocks of masks.
func (e *Enumerator) LowerCone(ctx context.Context, m om.Chirotope, sink chirotope.Sink) (Stats, error) {
	b := e.tab.Count()
	if m.Len() != b {
		return Stats{}, errors.New(errors.PhaseEnumerate, errors.KindInvalidInput).
			Value(m.Len()).
			Detail("chirotope has %d signs, table has %d bases", m.Len(), b).
			Build()
	}
	if !m.IsUniform() {
		return Stats{}, errors.InvalidInput(errors.PhaseEnumerate, "lower cone requires a uniform chirotope")
	}

	log := e.log.With(zap.Int("rank", e.tab.Rank()), zap.Int("elements", e.tab.Elements()), zap.Int("bases", b))
	log.Info("lower cone started", zap.String("chirotope", m.String()))

	start := time.Now()
	r := run{e: e, ctx: ctx, sink: sink, plus: m.Plus().Word(0), minus: m.Minus().Word(0)}
	err := r.walk(b)
	stats := Stats{Checked: r.checked, Accepted: r.accepted, Duration: time.Since(start)}

	if e.metrics != nil {
		e.metrics.ObserveBatch(r.checked-r.reportedChecked, r.accepted-r.reportedAccepted)
		e.metrics.ObserveRun(stats.Duration, err)
	}
	if err != nil {
		log.Warn("lower cone stopped",
			zap.Uint64("checked", stats.Checked),
			zap.Uint64("accepted", stats.Accepted),
			zap.Error(err))
		return stats, err
	}
	log.Info("lower cone finished",
		zap.Uint64("checked", stats.Checked),
		zap.Uint64("accepted", stats.Accepted),
		zap.Duration("duration", stats.Duration))
	return stats, nil
}

// run holds the state of one LowerCone call.
type run struct {
	e           *Enumerator
	ctx         context.Context
	sink        chirotope.Sink
	plus, minus uint64

	checked, accepted                 uint64
	reportedChecked, reportedAccepted uint64
}

// walk scans all masks of b bits. For b > 32 the high word is the outer loop
// and the low word the inner one, so counters stay native width and the
// order is still strictly increasing.
func (r *run) walk(b int) error {
	hiBits := 0
	if b > halfBits {
		hiBits = b - halfBits
	}
	loEnd := uint64(1) << (b - hiBits)
	hiEnd := uint64(1) << hiBits

	for hi := uint64(0); hi < hiEnd; hi++ {
		for lo := uint64(0); lo < loEnd; lo++ {
			if err := r.step(b, hi<<halfBits|lo); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *run) step(b int, mask uint64) error {
	if r.checked%pollInterval == 0 {
		select {
		case <-r.ctx.Done():
			return errors.Wrap(errors.PhaseEnumerate, errors.KindCanceled, r.ctx.Err(), "lower cone interrupted")
		default:
		}
	}

	c := om.FromWord(b, r.plus&mask, r.minus&mask)
	r.checked++
	if r.e.checker.IsChirotope(c) {
		r.accepted++
		if err := r.sink.Emit(c); err != nil {
			return errors.Wrap(errors.PhaseWrite, errors.KindIO, err, "emit lower cone member")
		}
	}

	if r.checked%r.e.interval == 0 {
		r.report(b, mask)
	}
	return nil
}

func (r *run) report(b int, mask uint64) {
	p := Progress{Bases: b, Mask: mask, Checked: r.checked, Accepted: r.accepted}
	r.e.log.Debug("lower cone progress",
		zap.Uint64("mask", mask),
		zap.Uint64("checked", r.checked),
		zap.Uint64("accepted", r.accepted))
	if r.e.metrics != nil {
		r.e.metrics.ObserveBatch(r.checked-r.reportedChecked, r.accepted-r.reportedAccepted)
		r.reportedChecked, r.reportedAccepted = r.checked, r.accepted
	}
	if r.e.progress != nil {
		r.e.progress(p)
	}
}
