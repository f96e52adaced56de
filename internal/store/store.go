package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/gravitrone/khabri/internal/api"
)

// User-facing failures. The cause is logged, never shown.
var (
	ErrFetch  = errors.New("failed to connect to the server")
	ErrSave   = errors.New("failed to save student")
	ErrDelete = errors.New("failed to delete student")

	// ErrBusy is returned by Run when the store refused to start an operation.
	ErrBusy = errors.New("another request is in flight")
)

// Service is the collection endpoint as the store uses it.
type Service interface {
	ListRecords(ctx context.Context) ([]api.Record, error)
	CreateRecord(ctx context.Context, input api.RecordInput) error
	UpdateRecord(ctx context.Context, id api.RecordID, input api.RecordInput) error
	DeleteRecord(ctx context.Context, id api.RecordID) error
}

var _ Service = (*api.Client)(nil)

// Op identifies which operation produced a Result.
type Op int

const (
	OpNone Op = iota
	OpRefresh
	OpCreate
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpRefresh:
		return "refresh"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "none"
}

// Result is the completion of an Effect.
type Result struct {
	Op      Op
	Records []api.Record
	Err     error
}

// Effect performs the network half of an operation.
type Effect func(ctx context.Context) Result

// Store is the client-side state of the student list.
type Store struct {
	service Service
	logger  *zap.Logger

	records   []api.Record
	buffer    EditBuffer
	target    EditTarget
	busy      bool
	pending   Op
	lastError error
}

// New creates an empty store in create mode. Callers start it with Refresh.
func New(service Service, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		service: service,
		logger:  logger,
		records: []api.Record{},
		target:  Creating(),
	}
}

// --- Accessors ---

// Records returns a copy of the last fetched snapshot, in server order.
func (s *Store) Records() []api.Record {
	return append([]api.Record{}, s.records...)
}

// Find looks a record up in the last snapshot by id.
func (s *Store) Find(id api.RecordID) (api.Record, bool) {
	for _, rec := range s.records {
		if rec.ID.SameAs(id) {
			return rec, true
		}
	}
	return api.Record{}, false
}

func (s *Store) Buffer() EditBuffer     { return s.buffer }
func (s *Store) Target() EditTarget     { return s.target }
func (s *Store) Busy() bool             { return s.busy }
func (s *Store) Pending() Op            { return s.pending }
func (s *Store) LastError() error       { return s.lastError }
func (s *Store) SetTitle(title string)  { s.buffer.Title = title }
func (s *Store) SetContent(body string) { s.buffer.Content = body }

// DismissError hides the current error once the user has seen it.
func (s *Store) DismissError() {
	s.lastError = nil
}

// --- Edit Mode ---

// BeginEdit loads rec into the buffer and targets it for the next submit.
func (s *Store) BeginEdit(rec api.Record) {
	s.buffer = EditBuffer{Title: rec.Title, Content: rec.Content}
	s.target = Editing(rec.ID)
}

// CancelEdit clears the buffer and returns to create mode.
func (s *Store) CancelEdit() {
	s.buffer = EditBuffer{}
	s.target = Creating()
}

// --- Operations ---

// Refresh starts a fetch of the whole collection.
func (s *Store) Refresh() Effect {
	if !s.begin(OpRefresh) {
		return nil
	}
	svc := s.service
	return func(ctx context.Context) Result {
		records, err := svc.ListRecords(ctx)
		return Result{Op: OpRefresh, Records: records, Err: err}
	}
}

// Submit saves buf as a new record, or over the targeted one when editing.
func (s *Store) Submit(buf EditBuffer, target EditTarget) Effect {
	svc := s.service
	input := buf.Input()
	if id, ok := target.ID(); ok {
		if !s.begin(OpUpdate) {
			return nil
		}
		return func(ctx context.Context) Result {
			return Result{Op: OpUpdate, Err: svc.UpdateRecord(ctx, id, input)}
		}
	}
	if !s.begin(OpCreate) {
		return nil
	}
	return func(ctx context.Context) Result {
		return Result{Op: OpCreate, Err: svc.CreateRecord(ctx, input)}
	}
}

// SubmitBuffer submits the store's own buffer against its own target.
func (s *Store) SubmitBuffer() Effect {
	return s.Submit(s.buffer, s.target)
}

// Remove deletes id unconditionally. Callers confirm with the user first.
func (s *Store) Remove(id api.RecordID) Effect {
	if !s.begin(OpDelete) {
		return nil
	}
	svc := s.service
	return func(ctx context.Context) Result {
		return Result{Op: OpDelete, Err: svc.DeleteRecord(ctx, id)}
	}
}

// Apply records the completion of the pending effect and returns the
// follow-up effect, if any.
func (s *Store) Apply(res Result) Effect {
	if !s.busy || res.Op != s.pending {
		s.logger.Warn("ignoring result without matching request",
			zap.Stringer("op", res.Op),
			zap.Stringer("pending", s.pending),
		)
		return nil
	}
	s.busy = false
	s.pending = OpNone

	switch res.Op {
	case OpRefresh:
		if res.Err != nil {
			s.fail(ErrFetch, res)
			return nil
		}
		s.records = append([]api.Record{}, res.Records...)
		s.logger.Debug("records refreshed", zap.Int("count", len(s.records)))
		return nil
	case OpCreate, OpUpdate:
		if res.Err != nil {
			s.fail(ErrSave, res)
			return nil
		}
		s.CancelEdit()
		return s.Refresh()
	case OpDelete:
		if res.Err != nil {
			s.fail(ErrDelete, res)
			return nil
		}
		return s.Refresh()
	}
	return nil
}

// Run executes eff and every follow-up on the calling goroutine. It returns
// ErrBusy when eff is nil and LastError otherwise.
func (s *Store) Run(ctx context.Context, eff Effect) error {
	if eff == nil {
		return ErrBusy
	}
	for eff != nil {
		eff = s.Apply(eff(ctx))
	}
	return s.lastError
}

func (s *Store) begin(op Op) bool {
	if s.busy {
		s.logger.Debug("request already in flight",
			zap.Stringer("op", op),
			zap.Stringer("pending", s.pending),
		)
		return false
	}
	s.busy = true
	s.pending = op
	s.lastError = nil
	return true
}

func (s *Store) fail(userErr error, res Result) {
	s.lastError = userErr
	s.logger.Warn("store operation failed",
		zap.Stringer("op", res.Op),
		zap.Error(res.Err),
	)
}
