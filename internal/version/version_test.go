// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	info := Info()
	assert.True(t, strings.HasPrefix(info, "datecheck "+Version))
	assert.Contains(t, info, Platform)
	assert.Equal(t, Version, Short())

	full := Full()
	assert.Equal(t, GitCommit, full["commit"])
	assert.Len(t, full, 5)
}
