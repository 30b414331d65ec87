// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

// Observable interface for all components that need observability
type Observable interface {
	// GetComponentName returns the component identifier
	GetComponentName() string
}

// Timer is the timing surface shared by the standard and debug observers
type Timer interface {
	StartTiming(component, operation, subject string) func(success bool, metadata map[string]interface{})
}
