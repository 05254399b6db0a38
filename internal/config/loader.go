package config

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/strand/internal/ctxlog"
)

// Load parses and decodes a scenario file, evaluating expressions against
// the host facts, and validates the result.
func Load(ctx context.Context, path string) (*Scenario, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading scenario file.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parsing %s: %w", path, diags)
	}

	var scenario Scenario
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &scenario); diags.HasErrors() {
		return nil, fmt.Errorf("config: decoding %s: %w", path, diags)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("Scenario loaded.", "workloads", len(scenario.Workloads))
	return &scenario, nil
}

// evalContext exposes the host facts scenario expressions may reference.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cpus": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}
}
