// Package molecule defines the request and response bodies of the MolGen
// molecule endpoints. No chemistry lives here.
package molecule

import (
	"strings"
	"time"

	"github.com/turtacn/molgen/pkg/types/common"
)

// Descriptors are the four reported molecular properties.
type Descriptors struct {
	// MolWt is the average molecular weight in g/mol.
	MolWt float64 `json:"mol_wt"`
	// LogP is the Wildman-Crippen octanol/water partition coefficient.
	LogP float64 `json:"log_p"`
	HBD  int     `json:"hbd"`
	HBA  int     `json:"hba"`
}

// FunctionalGroup is one parsed "fragment:index" edit.
type FunctionalGroup struct {
	Fragment string `json:"fragment"`
	Index    int    `json:"index"`
}

// DesiredProperties are free-text targets. The server accepts and ignores
// them.
type DesiredProperties struct {
	LogP  string `json:"logp,omitempty"`
	Sigma string `json:"sigma,omitempty"`
	Pi    string `json:"pi,omitempty"`
	HBA   string `json:"hba,omitempty"`
	HBD   string `json:"hbd,omitempty"`
}

// GenerateRequest mirrors the generation form. FunctionalGroups uses the
// same comma separated "fragment:index" syntax as the form field.
type GenerateRequest struct {
	BaseSMILES       string            `json:"base_smiles"`
	FunctionalGroups string            `json:"functional_groups"`
	Desired          DesiredProperties `json:"desired,omitempty"`
}

// Normalize trims surrounding whitespace from the free-text fields.
func (r *GenerateRequest) Normalize() {
	r.BaseSMILES = strings.TrimSpace(r.BaseSMILES)
	r.FunctionalGroups = strings.TrimSpace(r.FunctionalGroups)
}

// GenerateResponse is the outcome of a successful generation. Image holds
// the PNG depiction and is base64 encoded on the wire.
type GenerateResponse struct {
	ID               string            `json:"id"`
	BaseSMILES       string            `json:"base_smiles"`
	FunctionalGroups []FunctionalGroup `json:"functional_groups"`
	SMILES           string            `json:"smiles"`
	Descriptors      Descriptors       `json:"descriptors"`
	Report           string            `json:"report"`
	Image            []byte            `json:"image,omitempty"`
	ImageKey         string            `json:"image_key,omitempty"`
	Cached           bool              `json:"cached"`
	CreatedAt        time.Time         `json:"created_at"`
}

// ParseGroupsRequest asks the server to validate a functional group string
// without building anything.
type ParseGroupsRequest struct {
	FunctionalGroups string `json:"functional_groups"`
}

// ParseGroupsResponse lists the edits in application order.
type ParseGroupsResponse struct {
	Groups []FunctionalGroup `json:"groups"`
}

// GenerationRecord is one entry of generation history.
type GenerationRecord struct {
	ID               string      `json:"id"`
	BaseSMILES       string      `json:"base_smiles"`
	FunctionalGroups string      `json:"functional_groups"`
	SMILES           string      `json:"smiles"`
	Descriptors      Descriptors `json:"descriptors"`
	ImageKey         string      `json:"image_key,omitempty"`
	// ImageURL is a presigned download link, set when object storage is
	// configured.
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResponse lists recent generations, newest first.
type HistoryResponse = common.ListResponse[GenerationRecord]

//Personal.AI order the ending
