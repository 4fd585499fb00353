package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/render"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/store"
	"github.com/Abraxas-365/mailcraft/pkg/email/theme"
	"github.com/Abraxas-365/mailcraft/pkg/email/validate"
	"github.com/Abraxas-365/mailcraft/pkg/fsx"
	"github.com/Abraxas-365/mailcraft/pkg/logx"
)

type generateRequest struct {
	DraftID string                `json:"draft_id,omitempty"`
	Brand   *brand.BrandContext   `json:"brand,omitempty"`
	Intent  *brand.CampaignIntent `json:"intent,omitempty"`
	Plan    *brand.Plan           `json:"plan,omitempty"`
}

type generateResponse struct {
	ID       string          `json:"id"`
	RunID    string          `json:"run_id"`
	Attempts int             `json:"attempts"`
	Spec     *spec.EmailSpec `json:"spec"`
	Warnings []spec.Issue    `json:"warnings,omitempty"`
	HTML     string          `json:"html"`
	Exports  []string        `json:"exports,omitempty"`
}

// handleGenerate runs the full pipeline: generation loop, theme enhancement,
// render, persistence and artifact export.
func (c *Container) handleGenerate(ctx *fiber.Ctx) error {
	var req generateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	b, intent, plan, err := c.resolveInput(ctx, req)
	if err != nil {
		return err
	}

	result, err := c.Generator.Generate(ctx.Context(), b, intent, plan)
	if err != nil {
		return err
	}

	theme.Enhance(result.Spec, b.Colors)

	rendered, err := render.RenderHTML(result.Spec, c.Compiler)
	if err != nil {
		return err
	}

	rec := store.Record{
		ID:        uuid.NewString(),
		RunID:     result.RunID,
		BrandName: b.Name,
		Subject:   result.Spec.Meta.Subject,
		Spec:      result.Spec,
		Warnings:  result.Warnings,
		Attempts:  result.Attempts,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.Emails.Save(ctx.Context(), rec); err != nil {
		return err
	}

	exports := c.exportArtifacts(ctx, rec.ID, result.Spec, rendered)

	warnings := append(append([]spec.Issue{}, result.Warnings...), rendered.Warnings...)
	warnings = append(warnings, rendered.CompilerWarnings...)
	return ctx.Status(fiber.StatusCreated).JSON(generateResponse{
		ID:       rec.ID,
		RunID:    result.RunID,
		Attempts: result.Attempts,
		Spec:     result.Spec,
		Warnings: warnings,
		HTML:     rendered.HTML,
		Exports:  exports,
	})
}

// resolveInput takes the inline brand/intent/plan or loads them from a
// cached draft.
func (c *Container) resolveInput(ctx *fiber.Ctx, req generateRequest) (brand.BrandContext, brand.CampaignIntent, brand.Plan, error) {
	if req.DraftID != "" {
		draft, err := c.Drafts.Get(ctx.Context(), req.DraftID)
		if err != nil {
			return brand.BrandContext{}, brand.CampaignIntent{}, brand.Plan{}, err
		}
		return draft.Brand, draft.Intent, draft.Plan, nil
	}
	if req.Brand == nil || req.Intent == nil || req.Plan == nil {
		return brand.BrandContext{}, brand.CampaignIntent{}, brand.Plan{},
			fiber.NewError(fiber.StatusBadRequest, "either draft_id or brand+intent+plan is required")
	}
	return *req.Brand, *req.Intent, *req.Plan, nil
}

func (c *Container) exportArtifacts(ctx *fiber.Ctx, id string, doc *spec.EmailSpec, res render.Result) []string {
	artifacts, err := fsx.Bundle(doc, res)
	if err != nil {
		logx.WithError(err).Warn("failed to bundle export artifacts")
		return nil
	}
	locations, err := c.Exporter.Export(ctx.Context(), id, artifacts)
	if err != nil {
		logx.WithError(err).Warn("failed to export artifacts")
		return nil
	}
	return locations
}

type renderRequest struct {
	Spec        *spec.EmailSpec `json:"spec"`
	BrandColors *brand.Palette  `json:"brand_colors,omitempty"`
}

type renderResponse struct {
	Markup           string       `json:"markup"`
	HTML             string       `json:"html"`
	Warnings         []spec.Issue `json:"warnings,omitempty"`
	CompilerWarnings []spec.Issue `json:"compiler_warnings,omitempty"`
}

// handleRender validates and renders a caller-supplied document, the
// hand-edit path of the wizard.
func (c *Container) handleRender(ctx *fiber.Ctx) error {
	var req renderRequest
	if err := ctx.BodyParser(&req); err != nil || req.Spec == nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body, spec is required")
	}

	issues := spec.ValidateSchema(req.Spec)
	if !spec.HasErrors(issues) {
		issues = append(issues, validate.Validate(req.Spec, validate.Context{})...)
	}
	if spec.HasErrors(issues) {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "document failed validation",
			"code":   "LLM_OUTPUT_INVALID",
			"issues": issues,
		})
	}

	if req.BrandColors != nil {
		theme.Enhance(req.Spec, *req.BrandColors)
	}

	rendered, err := render.RenderHTML(req.Spec, c.Compiler)
	if err != nil {
		return err
	}
	warnings := append(spec.Warnings(issues), rendered.Warnings...)
	return ctx.JSON(renderResponse{
		Markup:           rendered.Markup,
		HTML:             rendered.HTML,
		Warnings:         warnings,
		CompilerWarnings: rendered.CompilerWarnings,
	})
}

// handleGetEmail returns a stored document with its metadata.
func (c *Container) handleGetEmail(ctx *fiber.Ctx) error {
	rec, err := c.Emails.FindByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(rec)
}

// handleListEmails lists recent documents for one brand.
func (c *Container) handleListEmails(ctx *fiber.Ctx) error {
	brandName := ctx.Query("brand")
	if brandName == "" {
		return fiber.NewError(fiber.StatusBadRequest, "brand query parameter is required")
	}
	recs, err := c.Emails.ListByBrand(ctx.Context(), brandName, ctx.QueryInt("limit", 20))
	if err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"emails": recs})
}

type sendRequest struct {
	To []string `json:"to"`
}

// handleSendPreview re-renders a stored document and test-sends it.
func (c *Container) handleSendPreview(ctx *fiber.Ctx) error {
	var req sendRequest
	if err := ctx.BodyParser(&req); err != nil || len(req.To) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one recipient is required")
	}

	rec, err := c.Emails.FindByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	rendered, err := render.RenderHTML(rec.Spec, c.Compiler)
	if err != nil {
		return err
	}
	if err := c.Notifier.SendPreview(ctx.Context(), rec.Subject, rendered.HTML, req.To); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"sent": true, "to": req.To})
}

type draftRequest struct {
	Brand  brand.BrandContext   `json:"brand"`
	Intent brand.CampaignIntent `json:"intent"`
	Plan   brand.Plan           `json:"plan"`
}

// handlePutDraft caches wizard state between steps.
func (c *Container) handlePutDraft(ctx *fiber.Ctx) error {
	var req draftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	id := ctx.Params("id")
	if id == "" {
		id = uuid.NewString()
	}
	draft := store.Draft{ID: id, Brand: req.Brand, Intent: req.Intent, Plan: req.Plan}
	if err := c.Drafts.Put(ctx.Context(), draft, c.Config.Redis.DraftTTL); err != nil {
		return err
	}
	return ctx.JSON(fiber.Map{"id": id})
}

func (c *Container) handleGetDraft(ctx *fiber.Ctx) error {
	draft, err := c.Drafts.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(draft)
}

func (c *Container) handleDropDraft(ctx *fiber.Ctx) error {
	if err := c.Drafts.Drop(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
