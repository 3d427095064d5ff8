// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePort(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  *Port
	}{
		{
			name:  "tcp port",
			token: "443/tcp",
			want:  &Port{Number: 443, Protocol: "tcp"},
		},
		{
			name:  "general maps to port zero",
			token: "general/tcp",
			want:  &Port{Number: 0, Protocol: "tcp"},
		},
		{
			name:  "surrounding whitespace",
			token: " 80/tcp ",
			want:  &Port{Number: 80, Protocol: "tcp"},
		},
		{
			name:  "empty protocol",
			token: "8080/",
			want:  &Port{Number: 8080, Protocol: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePort(tt.token, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePort_Malformed(t *testing.T) {
	for _, token := range []string{"", "80", "abc/tcp", "-1/tcp", "general"} {
		t.Run(token, func(t *testing.T) {
			got, err := ParsePort(token, "")
			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestParsePort_CarriesResult(t *testing.T) {
	got, err := ParsePort("22/tcp", "weak key exchange algorithms")
	require.NoError(t, err)
	assert.Equal(t, "weak key exchange algorithms", got.Result)
}

func TestAddHost_AppendOnly(t *testing.T) {
	v := &Vulnerability{OID: "1.3.6.1.4.1.25623.1.0.1"}
	v.AddHost(Host{IP: "10.0.0.1", Hostname: "-"}, &Port{Number: 80, Protocol: "tcp"})
	v.AddHost(Host{IP: "10.0.0.1", Hostname: "-"}, &Port{Number: 443, Protocol: "tcp"})
	v.AddHost(Host{IP: "10.0.0.2", Hostname: "web"}, nil)

	// Same host on two ports stays two occurrences; a nil port is kept.
	require.Len(t, v.Hosts, 3)
	assert.Equal(t, 80, v.Hosts[0].Port.Number)
	assert.Equal(t, 443, v.Hosts[1].Port.Number)
	assert.Nil(t, v.Hosts[2].Port)
}

func TestHasScore(t *testing.T) {
	assert.True(t, (&Vulnerability{Score: 0.0}).HasScore())
	assert.True(t, (&Vulnerability{Score: 9.8}).HasScore())
	assert.False(t, (&Vulnerability{Score: NoScore}).HasScore())
}
