// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"time"

	"ocr-datecheck/internal/config"
	"ocr-datecheck/internal/diagnose"
)

// EngineOptions overrides configuration defaults when building an engine
type EngineOptions struct {
	// Profile names the validator profile; empty uses the configured default
	Profile string

	// Validated and Diagnose override the configured defaults when non-nil
	Validated *bool
	Diagnose  *bool

	// Now overrides the evaluation clock of the validator and classifier
	Now func() time.Time
}

// BuildEngine constructs an engine from configuration. Pass nil for cfg to use
// the built-in defaults.
func BuildEngine(cfg *config.Config, opts EngineOptions) (*Engine, error) {
	if cfg == nil {
		var err error
		if cfg, err = config.LoadConfig(""); err != nil {
			return nil, err
		}
	}

	validator, err := cfg.Validator(opts.Profile)
	if err != nil {
		return nil, err
	}
	if opts.Now != nil {
		validator = validator.WithClock(opts.Now)
	}

	validated := cfg.Defaults.ValidatedExtraction
	if opts.Validated != nil {
		validated = *opts.Validated
	}
	diagnoseEnabled := cfg.Defaults.Diagnose
	if opts.Diagnose != nil {
		diagnoseEnabled = *opts.Diagnose
	}

	settings := Settings{
		Validator:           validator,
		ValidatedExtraction: validated,
		Samples:             cfg.Samples,
	}
	if diagnoseEnabled {
		classifierOpts := []diagnose.Option{diagnose.WithVocabulary(cfg.Vocabulary())}
		if opts.Now != nil {
			classifierOpts = append(classifierOpts, diagnose.WithClock(opts.Now))
		}
		settings.Classifier = diagnose.NewClassifier(cfg.Diagnosis.Settings, classifierOpts...)
	}

	return NewEngine(settings), nil
}
