package fsx_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailcraft/pkg/email/render"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/fsx"
)

func TestBundleProducesStandardSet(t *testing.T) {
	doc := &spec.EmailSpec{
		Meta: spec.Meta{Subject: "Fresh drops", Preheader: "New arrivals you will like"},
	}
	res := render.Result{
		Markup: `<email width="600"/>`,
		HTML:   "<!DOCTYPE html><html></html>",
	}

	artifacts, err := fsx.Bundle(doc, res)
	if err != nil {
		t.Fatalf("bundle failed: %v", err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("expected 3 artifacts, got %d", len(artifacts))
	}

	byName := make(map[string]fsx.Artifact, len(artifacts))
	for _, a := range artifacts {
		byName[a.Name] = a
	}
	if !strings.Contains(string(byName["email.json"].Data), "Fresh drops") {
		t.Fatal("document subject missing from the JSON artifact")
	}
	if string(byName["email.mail"].Data) != res.Markup {
		t.Fatal("markup artifact must carry the rendered tree verbatim")
	}
	if !strings.HasPrefix(string(byName["email.html"].Data), "<!DOCTYPE html>") {
		t.Fatal("html artifact must carry the compiled document")
	}
	if ct := byName["email.json"].ContentType; ct != "application/json" {
		t.Fatalf("unexpected content type for the JSON artifact: %s", ct)
	}
}
