// Package molgen is the application layer of MolGen: it collects form input,
// builds the edited molecule, computes descriptors, composes the report and
// depiction, and fans the result out to the optional infrastructure.
package molgen

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/turtacn/molgen/internal/domain/molecule"
)

// FunctionalGroupSpec asks for Fragment to be attached by a single bond to
// atom Index of the molecule built so far.
type FunctionalGroupSpec struct {
	Fragment string `json:"fragment"`
	Index    int    `json:"index"`
}

// String renders the edit in its input form, "fragment:index".
func (s FunctionalGroupSpec) String() string {
	return s.Fragment + ":" + strconv.Itoa(s.Index)
}

// DesiredProperties are free-text targets typed into the form. They are
// carried along with the request and never read by generation.
type DesiredProperties struct {
	LogP  string `json:"logp,omitempty"`
	Sigma string `json:"sigma,omitempty"`
	Pi    string `json:"pi,omitempty"`
	HBA   string `json:"hba,omitempty"`
	HBD   string `json:"hbd,omitempty"`
}

// FormInput is the raw text of the generation form.
type FormInput struct {
	BaseSMILES       string
	FunctionalGroups string
	Desired          DesiredProperties
}

// GenerateRequest is a collected, parsed form.
type GenerateRequest struct {
	BaseSMILES string                `json:"base_smiles"`
	Groups     []FunctionalGroupSpec `json:"functional_groups"`
	Desired    DesiredProperties     `json:"desired"`
}

// GroupsString joins the edits back into "frag:idx,frag:idx" form.
func (r *GenerateRequest) GroupsString() string {
	parts := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		parts[i] = g.String()
	}
	return strings.Join(parts, ",")
}

// CacheKey identifies the request's build output. Desired properties do not
// take part since they never influence the result.
func (r *GenerateRequest) CacheKey() string {
	h := sha256.New()
	h.Write([]byte(r.BaseSMILES))
	h.Write([]byte{'\n'})
	h.Write([]byte(r.GroupsString()))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateResult is the outcome of one successful generation.
type GenerateResult struct {
	ID          string                `json:"id"`
	BaseSMILES  string                `json:"base_smiles"`
	Groups      []FunctionalGroupSpec `json:"functional_groups"`
	SMILES      string                `json:"smiles"`
	Descriptors molecule.Descriptors  `json:"descriptors"`
	Report      string                `json:"report"`
	Image       []byte                `json:"image,omitempty"`
	ImageKey    string                `json:"image_key,omitempty"`
	Cached      bool                  `json:"cached"`
	CreatedAt   time.Time             `json:"created_at"`
}

// Presentation returns what the display regions show for r.
func (r *GenerateResult) Presentation() *Presentation {
	return &Presentation{SMILES: r.SMILES, Report: r.Report, Image: r.Image}
}

// GenerationRecord is one row of generation history.
type GenerationRecord struct {
	ID               string               `json:"id"`
	BaseSMILES       string               `json:"base_smiles"`
	FunctionalGroups string               `json:"functional_groups"`
	SMILES           string               `json:"smiles"`
	Descriptors      molecule.Descriptors `json:"descriptors"`
	ImageKey         string               `json:"image_key,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
}

// GeneratedEvent is published after every successful, non-cached generation.
type GeneratedEvent struct {
	ID          string               `json:"id"`
	BaseSMILES  string               `json:"base_smiles"`
	SMILES      string               `json:"smiles"`
	Descriptors molecule.Descriptors `json:"descriptors"`
	ImageKey    string               `json:"image_key,omitempty"`
	OccurredAt  time.Time            `json:"occurred_at"`
}

// EventTypeGenerated is the event type carried in message headers.
const EventTypeGenerated = "molecule.generated"

// Presentation is the formatted report plus the PNG depiction.
type Presentation struct {
	SMILES string
	Report string
	Image  []byte
}

//Personal.AI order the ending
