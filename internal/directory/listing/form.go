package listing

import "context"

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Form collects the fields of a single record. It never assigns ids; the
// parent controller does that when the form reports completion.
type Form[R any] struct {
	draft    R
	mode     Mode
	validate func(R) error
	err      error
	closed   bool

	onSave   func(ctx context.Context, draft R) (R, error)
	onCancel func()
}

func (f *Form[R]) Mode() Mode { return f.mode }

// Draft returns the current field values.
func (f *Form[R]) Draft() R { return f.draft }

// Update applies fn to the draft in place.
func (f *Form[R]) Update(fn func(*R)) { fn(&f.draft) }

// Err returns the last form-local validation error, if any.
func (f *Form[R]) Err() error { return f.err }

// Closed reports whether the form was saved or cancelled.
func (f *Form[R]) Closed() bool { return f.closed }

// Save runs the form-local validation and, when it passes, hands the draft to
// the parent. A failed validation keeps the form open and never reaches the
// parent.
func (f *Form[R]) Save(ctx context.Context) (R, error) {
	var zero R
	if f.closed {
		return zero, ErrFormClosed
	}
	if f.validate != nil {
		if err := f.validate(f.draft); err != nil {
			f.err = err
			return zero, err
		}
	}
	f.err = nil

	saved, err := f.onSave(ctx, f.draft)
	if err != nil {
		return zero, err
	}
	f.closed = true
	return saved, nil
}

// Cancel discards the draft and tells the parent to close the form.
func (f *Form[R]) Cancel() {
	f.closed = true
	if f.onCancel != nil {
		f.onCancel()
	}
}
