package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/turtacn/molgen/internal/application/molgen"
	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/types/common"
	moltypes "github.com/turtacn/molgen/pkg/types/molecule"
)

// ImageLinker turns a stored image location into a download URL.
type ImageLinker interface {
	PresignedURL(ctx context.Context, location string, expiry time.Duration) (string, error)
}

// MoleculeHandler serves the generation endpoints.
type MoleculeHandler struct {
	svc    molgen.Service
	links  ImageLinker
	logger logging.Logger
}

// NewMoleculeHandler creates the handler. links may be nil, in which case
// history entries carry no image URL.
func NewMoleculeHandler(svc molgen.Service, links ImageLinker, logger logging.Logger) *MoleculeHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MoleculeHandler{svc: svc, links: links, logger: logger.Named("molecule_handler")}
}

// RegisterRoutes mounts the molecule routes on rg.
func (h *MoleculeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/molecules/generate", h.Generate)
	rg.POST("/molecules/render", h.Render)
	rg.POST("/functional-groups/parse", h.ParseGroups)
	rg.GET("/generations", h.History)
}

// Generate handles POST /api/v1/molecules/generate. ?image=false drops the
// inline PNG from the response.
func (h *MoleculeHandler) Generate(c *gin.Context) {
	res, ok := h.generate(c)
	if !ok {
		return
	}
	resp := toGenerateResponse(res)
	if c.Query("image") == "false" {
		resp.Image = nil
	}
	c.JSON(http.StatusOK, resp)
}

// Render handles POST /api/v1/molecules/render and answers with the PNG
// depiction only.
func (h *MoleculeHandler) Render(c *gin.Context) {
	res, ok := h.generate(c)
	if !ok {
		return
	}
	c.Header("X-Molgen-Smiles", res.SMILES)
	c.Data(http.StatusOK, "image/png", res.Image)
}

// ParseGroups handles POST /api/v1/functional-groups/parse.
func (h *MoleculeHandler) ParseGroups(c *gin.Context) {
	var req moltypes.ParseGroupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	specs, err := molgen.ParseFunctionalGroups(req.FunctionalGroups)
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, moltypes.ParseGroupsResponse{Groups: toGroups(specs)})
}

// History handles GET /api/v1/generations?limit=N.
func (h *MoleculeHandler) History(c *gin.Context) {
	ctx := c.Request.Context()
	records, err := h.svc.History(ctx, queryInt(c, "limit", 0))
	if err != nil {
		writeAppError(c, h.logger, err)
		return
	}

	items := lo.Map(records, func(r *molgen.GenerationRecord, _ int) moltypes.GenerationRecord {
		item := moltypes.GenerationRecord{
			ID:               r.ID,
			BaseSMILES:       r.BaseSMILES,
			FunctionalGroups: r.FunctionalGroups,
			SMILES:           r.SMILES,
			Descriptors:      toDescriptors(r.Descriptors),
			ImageKey:         r.ImageKey,
			CreatedAt:        r.CreatedAt,
		}
		if h.links != nil && r.ImageKey != "" {
			u, err := h.links.PresignedURL(ctx, r.ImageKey, 0)
			if err != nil {
				h.logger.Warn("failed to presign image", logging.String("id", r.ID), logging.Err(err))
			} else {
				item.ImageURL = u
			}
		}
		return item
	})
	c.JSON(http.StatusOK, common.NewListResponse(items))
}

func (h *MoleculeHandler) generate(c *gin.Context) (*molgen.GenerateResult, bool) {
	var body moltypes.GenerateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return nil, false
	}
	req, err := molgen.CollectForm(molgen.FormInput{
		BaseSMILES:       body.BaseSMILES,
		FunctionalGroups: body.FunctionalGroups,
		Desired: molgen.DesiredProperties{
			LogP:  body.Desired.LogP,
			Sigma: body.Desired.Sigma,
			Pi:    body.Desired.Pi,
			HBA:   body.Desired.HBA,
			HBD:   body.Desired.HBD,
		},
	})
	if err != nil {
		writeAppError(c, h.logger, err)
		return nil, false
	}
	res, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		writeAppError(c, h.logger, err)
		return nil, false
	}
	return res, true
}

func toGenerateResponse(res *molgen.GenerateResult) moltypes.GenerateResponse {
	return moltypes.GenerateResponse{
		ID:               res.ID,
		BaseSMILES:       res.BaseSMILES,
		FunctionalGroups: toGroups(res.Groups),
		SMILES:           res.SMILES,
		Descriptors:      toDescriptors(res.Descriptors),
		Report:           res.Report,
		Image:            res.Image,
		ImageKey:         res.ImageKey,
		Cached:           res.Cached,
		CreatedAt:        res.CreatedAt,
	}
}

func toGroups(specs []molgen.FunctionalGroupSpec) []moltypes.FunctionalGroup {
	return lo.Map(specs, func(s molgen.FunctionalGroupSpec, _ int) moltypes.FunctionalGroup {
		return moltypes.FunctionalGroup{Fragment: s.Fragment, Index: s.Index}
	})
}

func toDescriptors(d molecule.Descriptors) moltypes.Descriptors {
	return moltypes.Descriptors{MolWt: d.MolWt, LogP: d.LogP, HBD: d.HBD, HBA: d.HBA}
}

//Personal.AI order the ending
