// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorBaseScore(t *testing.T) {
	tests := []struct {
		name   string
		vector string
		want   float64
	}{
		{
			name:   "v2 without prefix",
			vector: "AV:N/AC:L/Au:N/C:P/I:P/A:P",
			want:   7.5,
		},
		{
			name:   "v2 no impact",
			vector: "AV:L/AC:H/Au:N/C:N/I:N/A:N",
			want:   0.0,
		},
		{
			name:   "v3.1",
			vector: "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			want:   9.8,
		},
		{
			name:   "v3.0",
			vector: "CVSS:3.0/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H",
			want:   9.8,
		},
		{
			name:   "v4.0",
			vector: "CVSS:4.0/AV:N/AC:L/AT:N/PR:N/UI:N/VC:H/VI:H/VA:H/SC:N/SI:N/SA:N",
			want:   9.3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vectorBaseScore(tt.vector)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.05)
		})
	}
}

func TestVectorBaseScore_Invalid(t *testing.T) {
	for _, vector := range []string{"", "garbage", "CVSS:3.1/not-a-vector"} {
		t.Run(vector, func(t *testing.T) {
			_, err := vectorBaseScore(vector)
			assert.Error(t, err)
		})
	}
}
