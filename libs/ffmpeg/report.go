package ffmpeg

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var rule = strings.Repeat("=", 60)

// Status is the outcome of fixing one file.
type Status int

const (
	Correct Status = iota
	Modified
	WouldModify
	Failed
)

func (s Status) String() string {
	switch s {
	case Correct:
		return "correct"
	case Modified:
		return "modified"
	case WouldModify:
		return "would modify"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// FileResult records what happened to a single .pc file.
type FileResult struct {
	Name        string
	Status      Status
	OldPrefixes []string
	Err         error
}

// Report is the outcome of a Fix run.
type Report struct {
	DryRun bool
	Files  []FileResult
}

func (r *Report) count(s Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Modified is the number of files that were, or in a dry run would be, rewritten.
func (r *Report) Modified() int {
	return r.count(Modified) + r.count(WouldModify)
}

// Correct is the number of files that already had the right prefix.
func (r *Report) Correct() int { return r.count(Correct) }

// Failed is the number of files that could not be processed.
func (r *Report) Failed() int { return r.count(Failed) }

// Err combines the per-file errors, or returns nil if there were none.
func (r *Report) Err() error {
	var err error
	for _, f := range r.Files {
		if f.Err != nil {
			err = multierr.Append(err, errors.Wrap(f.Err, f.Name))
		}
	}
	return err
}

// WriteSummary prints the modified and already-correct counts.
func (r *Report) WriteSummary(w io.Writer) {
	_, _ = fmt.Fprintln(w, rule)
	if r.DryRun {
		_, _ = fmt.Fprintf(w, "[dry run] Would modify %d file(s)\n", r.Modified())
	} else {
		_, _ = fmt.Fprintf(w, "Successfully modified %d file(s)\n", r.Modified())
	}
	_, _ = fmt.Fprintf(w, "%d file(s) already correct\n", r.Correct())
	if n := r.Failed(); n > 0 {
		_, _ = fmt.Fprintf(w, "%d file(s) failed\n", n)
	}
}

// VerifyResult is the verification outcome for one .pc file.
type VerifyResult struct {
	Name    string
	Prefix  string
	Found   bool
	Match   bool
	Version string
	Err     error
}

// Verification is the outcome of a Verify run.
type Verification struct {
	Files []VerifyResult
	Err   error
}

// OK reports whether every checked file has the expected prefix.
func (v *Verification) OK() bool {
	if v.Err != nil {
		return false
	}
	for _, f := range v.Files {
		if f.Err != nil || !f.Match {
			return false
		}
	}
	return true
}
