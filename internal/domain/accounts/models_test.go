package accounts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProxy(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantURL  string
		wantUser string
		wantErr  bool
	}{
		{name: "Full URL", line: "socks5://bob:pw@10.0.0.1:1080", wantURL: "socks5://bob:pw@10.0.0.1:1080", wantUser: "bob"},
		{name: "Credentials first", line: "bob:pw@10.0.0.1:8080", wantURL: "http://bob:pw@10.0.0.1:8080", wantUser: "bob"},
		{name: "Host first", line: "10.0.0.1:8080:bob:pw", wantURL: "http://bob:pw@10.0.0.1:8080", wantUser: "bob"},
		{name: "Host only", line: "10.0.0.1:8080", wantURL: "http://10.0.0.1:8080"},
		{name: "Trims whitespace", line: "  10.0.0.1:8080 \t", wantURL: "http://10.0.0.1:8080"},
		{name: "Three parts", line: "10.0.0.1:8080:bob", wantErr: true},
		{name: "Unknown scheme", line: "ftp://10.0.0.1:21", wantErr: true},
		{name: "Missing port", line: "http://10.0.0.1", wantErr: true},
		{name: "Empty", line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProxy(tt.line)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseProxy() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidProxy))
				return
			}
			assert.Equal(t, tt.wantURL, got.String())
			assert.Equal(t, tt.wantUser, got.User.Username())
		})
	}
}

func TestLoad(t *testing.T) {
	accounts, err := Load(
		[]string{"0xaaa", "bbb", "ccc"},
		[]string{"10.0.0.1:8080", "10.0.0.2:8080"},
	)
	require.NoError(t, err)
	require.Len(t, accounts, 3)

	assert.Equal(t, "aaa", accounts[0].PrivateKey)
	assert.Equal(t, "#3", accounts[2].String())
	assert.Equal(t, "10.0.0.1:8080", accounts[0].Proxy.Host)
	assert.Equal(t, "10.0.0.2:8080", accounts[1].Proxy.Host)
	assert.Equal(t, "10.0.0.1:8080", accounts[2].Proxy.Host)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(nil, nil)
	assert.ErrorIs(t, err, ErrNoKeys)

	_, err = Load([]string{"aaa"}, []string{"bad"})
	assert.ErrorIs(t, err, ErrInvalidProxy)

	accounts, err := Load([]string{"aaa"}, nil)
	require.NoError(t, err)
	assert.Nil(t, accounts[0].Proxy)
}
