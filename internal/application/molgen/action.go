package molgen

import (
	"context"

	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
)

// Action is the "Generate Molecule" button: collect, generate, show.
type Action struct {
	svc       Service
	presenter *Presenter
	logger    logging.Logger
}

// NewAction binds the generation service to the presenter that owns the
// display regions.
func NewAction(svc Service, presenter *Presenter, logger logging.Logger) *Action {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Action{svc: svc, presenter: presenter, logger: logger}
}

// Run handles one button press. On any error the display is left as it was
// and the error is returned for the caller to report.
func (a *Action) Run(ctx context.Context, form FormInput) (*GenerateResult, error) {
	req, err := CollectForm(form)
	if err != nil {
		a.logger.Info("form rejected", logging.Err(err))
		return nil, err
	}
	res, err := a.svc.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	a.presenter.Show(res.Presentation())
	return res, nil
}

//Personal.AI order the ending
