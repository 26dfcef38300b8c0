package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zoobzio/pixz"
)

// operationUsage describes the parameters of the standard operations.
var operationUsage = map[string]string{
	"identity": "no parameters",
	"negate":   "no parameters",
	"brighten": "factor, e.g. brighten:1.2",
	"contrast": "factor around mid-range, e.g. contrast:1.5",
	"gamma":    "gamma, e.g. gamma:2.2",
	"levels":   "black and white points in [0,1], e.g. levels:0.1,0.9",
	"box-blur": "integer radius up to 64, e.g. box-blur:2",
	"sharpen":  "no parameters",
}

func operationNames() []string {
	return pixz.DefaultBuilder.Names()
}

func pixzFeatures() string {
	return pixz.Features()
}

// parseStep splits "name:p1,p2" into an operation name and its parameters.
func parseStep(step string) (string, []float64, error) {
	name, args, found := strings.Cut(strings.TrimSpace(step), ":")
	if name == "" {
		return "", nil, fmt.Errorf("empty operation in %q", step)
	}
	if !found || strings.TrimSpace(args) == "" {
		return name, nil, nil
	}
	fields := strings.Split(args, ",")
	params := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("operation %s: bad parameter %q: %w", name, f, err)
		}
		params = append(params, v)
	}
	return name, params, nil
}

// buildSteps resolves every step against the default builder.
func buildSteps(steps []string) ([]pixz.Operation, error) {
	ops := make([]pixz.Operation, 0, len(steps))
	for _, step := range steps {
		name, params, err := parseStep(step)
		if err != nil {
			return nil, err
		}
		op, err := pixz.BuildOperation(name, params...)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// parseSize parses "WxH". An empty string means no resize.
func parseSize(s string) (width, height int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	w, h, found := strings.Cut(strings.ToLower(s), "x")
	if !found {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if width, err = strconv.Atoi(w); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if height, err = strconv.Atoi(h); err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q: must be positive", s)
	}
	return width, height, nil
}
