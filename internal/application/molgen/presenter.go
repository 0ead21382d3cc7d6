package molgen

import (
	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/pkg/errors"
)

// Presenter formats results and pushes them to the display regions it was
// built with. Either region may be nil when there is no display.
type Presenter struct {
	text     TextRegion
	image    ImageRegion
	renderer Renderer
}

// NewPresenter wires the two display regions and the depiction renderer.
func NewPresenter(text TextRegion, image ImageRegion, renderer Renderer) *Presenter {
	return &Presenter{text: text, image: image, renderer: renderer}
}

// Compose formats the report and renders the depiction without touching the
// display.
func (p *Presenter) Compose(m *molecule.Molecule, d molecule.Descriptors) (*Presentation, error) {
	if p.renderer == nil {
		return nil, errors.New(errors.ErrCodeMoleculeRenderFailed, "no renderer configured")
	}
	smiles := molecule.CanonicalSMILES(m)
	img, err := p.renderer.Render(m)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeRenderFailed, "failed to render molecule")
	}
	return &Presentation{
		SMILES: smiles,
		Report: FormatReport(smiles, d),
		Image:  img,
	}, nil
}

// Present composes the presentation and shows it. Both regions are updated
// together, or neither when composing fails.
func (p *Presenter) Present(m *molecule.Molecule, d molecule.Descriptors) (*Presentation, error) {
	pres, err := p.Compose(m, d)
	if err != nil {
		return nil, err
	}
	p.Show(pres)
	return pres, nil
}

// Show writes pres to the display regions.
func (p *Presenter) Show(pres *Presentation) {
	if pres == nil {
		return
	}
	if p.text != nil {
		p.text.SetText(pres.Report)
	}
	if p.image != nil {
		p.image.SetImage(pres.Image)
	}
}

//Personal.AI order the ending
