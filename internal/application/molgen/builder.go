package molgen

import (
	"fmt"

	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

// Builder applies functional-group edits to a base structure.
type Builder struct {
	logger logging.Logger
}

// NewBuilder returns a Builder. A nil logger discards output.
func NewBuilder(logger logging.Logger) *Builder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Builder{logger: logger}
}

// Build parses base and applies edits in order. Each edit merges the parsed
// fragment into the current molecule, bonds atom Index of the pre-merge
// molecule to the fragment's first atom and sanitizes. The first failing
// step aborts the whole build; no partial molecule is returned.
func (b *Builder) Build(base string, edits []FunctionalGroupSpec) (*molecule.Molecule, error) {
	if base == "" {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidSMILES, "invalid base structure").
			WithDetail("empty input")
	}
	current, err := molecule.ParseSMILES(base)
	if err != nil {
		return nil, errors.New(errors.ErrCodeMoleculeInvalidSMILES, "invalid base structure").
			WithDetail(err.Error()).
			WithCause(err)
	}

	for step, edit := range edits {
		next, err := b.apply(current, edit)
		if err != nil {
			b.logger.Debug("functional group rejected",
				logging.Int("step", step),
				logging.String("fragment", edit.Fragment),
				logging.Int("index", edit.Index),
				logging.Err(err))
			return nil, err
		}
		current = next
	}
	return current, nil
}

func (b *Builder) apply(current *molecule.Molecule, edit FunctionalGroupSpec) (*molecule.Molecule, error) {
	frag, err := molecule.ParseSMILES(edit.Fragment)
	if err != nil {
		return nil, errors.New(errors.ErrCodeFunctionalGroupInvalid, "invalid functional group descriptor").
			WithDetail(fmt.Sprintf("%q: %v", edit.Fragment, err)).
			WithCause(err)
	}

	attachFailed := func(cause error) error {
		return errors.Newf(errors.ErrCodeFunctionalGroupAttach,
			"failed to add functional group %s at index %d", edit.Fragment, edit.Index).
			WithDetail(cause.Error()).
			WithCause(cause)
	}

	n := current.NumAtoms()
	if edit.Index < 0 || edit.Index >= n {
		return nil, attachFailed(fmt.Errorf("atom index %d out of range for %d atoms", edit.Index, n))
	}
	merged := molecule.Combine(current, frag)
	if err := merged.AddBond(edit.Index, n, molecule.BondSingle); err != nil {
		return nil, attachFailed(err)
	}
	if err := molecule.Sanitize(merged); err != nil {
		return nil, attachFailed(err)
	}
	return merged, nil
}

//Personal.AI order the ending
