package upload

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Veraticus/statement-reader/internal/common"
	"github.com/Veraticus/statement-reader/internal/model"
)

// State is the upload lifecycle phase.
type State int

// Upload states.
const (
	StateIdle State = iota
	StateFileSelected
	StateLoading
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFileSelected:
		return "file_selected"
	case StateLoading:
		return "loading"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Uploader turns a document into transactions.
type Uploader interface {
	Upload(ctx context.Context, doc Document) ([]model.Transaction, error)
}

// Outcome is the result of one upload attempt.
type Outcome struct {
	Err          error
	Transactions []model.Transaction
	Generation   uint64
}

// Task is a submitted upload. Run performs the request and may be called on
// any goroutine; its Outcome must be handed back to Controller.Complete.
type Task struct {
	ctx        context.Context
	uploader   Uploader
	doc        Document
	Generation uint64
}

// Run performs the upload.
func (t *Task) Run() Outcome {
	txns, err := t.uploader.Upload(t.ctx, t.doc)
	return Outcome{
		Generation:   t.Generation,
		Transactions: txns,
		Err:          err,
	}
}

// Snapshot is a read-only copy of the controller state for rendering.
type Snapshot struct {
	Document     *Document
	Transactions []model.Transaction
	Error        string
	State        State
}

// Controller owns the staged file and the single in-flight upload.
//
// Every submission gets a new generation. Reset and Select cancel the
// in-flight request and bump the generation, so an outcome that arrives late
// is discarded instead of repopulating cleared state.
//
// A Controller is not safe for concurrent use; drive it from one goroutine.
type Controller struct {
	uploader     Uploader
	logger       *slog.Logger
	cancel       context.CancelFunc
	document     *Document
	transactions []model.Transaction
	errMsg       string
	generation   uint64
	state        State
}

// NewController creates an idle controller.
func NewController(uploader Uploader, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		uploader: uploader,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current phase.
func (c *Controller) State() State {
	return c.state
}

// Document returns the staged file, if any.
func (c *Controller) Document() (Document, bool) {
	if c.document == nil {
		return Document{}, false
	}
	return *c.document, true
}

// Transactions returns the last successful result.
func (c *Controller) Transactions() []model.Transaction {
	return c.transactions
}

// Err returns the message shown in the Error state.
func (c *Controller) Err() string {
	return c.errMsg
}

// Generation returns the current submission generation.
func (c *Controller) Generation() uint64 {
	return c.generation
}

// CanSubmit reports whether Submit would start an upload.
func (c *Controller) CanSubmit() bool {
	return c.document != nil && c.state != StateLoading
}

// Snapshot copies the current state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		State:        c.state,
		Transactions: slices.Clone(c.transactions),
		Error:        c.errMsg,
	}
	if c.document != nil {
		doc := *c.document
		s.Document = &doc
	}
	return s
}

// Select stages doc, clearing any previous result or error. Selecting while
// an upload is in flight abandons that upload.
func (c *Controller) Select(doc Document) {
	c.abandon()
	c.document = &doc
	c.transactions = nil
	c.errMsg = ""
	c.state = StateFileSelected
	c.logger.Debug("Statement selected", "file", doc.Name, "size", doc.Size)
}

// Submit moves to Loading and returns the task to run. It returns false when
// no file is staged or an upload is already in flight.
func (c *Controller) Submit(ctx context.Context) (*Task, bool) {
	if !c.CanSubmit() {
		return nil, false
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	c.errMsg = ""
	c.transactions = nil
	c.state = StateLoading

	return &Task{
		ctx:        ctx,
		uploader:   c.uploader,
		doc:        *c.document,
		Generation: c.generation,
	}, true
}

// Complete applies an outcome. Outcomes from superseded generations, or that
// arrive when nothing is loading, are ignored and false is returned.
func (c *Controller) Complete(o Outcome) bool {
	if c.state != StateLoading || o.Generation != c.generation {
		c.logger.Debug("Ignoring stale upload outcome",
			"generation", o.Generation,
			"current", c.generation)
		return false
	}

	c.release()
	if o.Err != nil {
		c.transactions = nil
		c.errMsg = common.UserMessage(o.Err)
		c.state = StateError
		return true
	}

	c.transactions = o.Transactions
	if c.transactions == nil {
		c.transactions = []model.Transaction{}
	}
	c.errMsg = ""
	c.state = StateResult
	return true
}

// Reset clears everything and returns to Idle.
func (c *Controller) Reset() {
	c.abandon()
	c.document = nil
	c.transactions = nil
	c.errMsg = ""
	c.state = StateIdle
}

// Run submits and waits for the upload synchronously. The returned error is
// the underlying failure; the controller holds the display message.
func (c *Controller) Run(ctx context.Context) error {
	if c.state == StateLoading {
		return common.ErrUploadInFlight
	}
	task, ok := c.Submit(ctx)
	if !ok {
		return common.ErrNoFile
	}

	outcome := task.Run()
	c.Complete(outcome)
	return outcome.Err
}

// abandon cancels any in-flight upload and makes its outcome stale.
func (c *Controller) abandon() {
	if c.state == StateLoading {
		c.generation++
		c.logger.Debug("Abandoning in-flight upload")
	}
	c.release()
}

func (c *Controller) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
