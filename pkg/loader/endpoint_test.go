package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint Endpoint
		want     string
	}{
		{
			name:     "default endpoint",
			endpoint: DefaultEndpoint(),
			want:     "https://webapi.amap.com/maps?callback=initAMap&v=1.4.15",
		},
		{
			name:     "with key",
			endpoint: Endpoint{BaseURL: DefaultBaseURL, Version: DefaultVersion, Key: "abc123", Callback: DefaultCallback},
			want:     "https://webapi.amap.com/maps?callback=initAMap&key=abc123&v=1.4.15",
		},
		{
			name:     "no query fields",
			endpoint: Endpoint{BaseURL: "https://cdn.example.com/sdk.js"},
			want:     "https://cdn.example.com/sdk.js",
		},
		{
			name:     "keeps existing query",
			endpoint: Endpoint{BaseURL: "https://cdn.example.com/sdk.js?plugin=geo", Version: "2"},
			want:     "https://cdn.example.com/sdk.js?plugin=geo&v=2",
		},
		{
			name:     "escapes values",
			endpoint: Endpoint{BaseURL: "https://cdn.example.com/sdk.js", Key: "a&b c"},
			want:     "https://cdn.example.com/sdk.js?key=a%26b+c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.endpoint.URL())
		})
	}
}

func TestEndpointValidate(t *testing.T) {
	assert.NoError(t, DefaultEndpoint().Validate())
	assert.Error(t, Endpoint{}.Validate())
	assert.Error(t, Endpoint{BaseURL: "//webapi.amap.com/maps"}.Validate())
}

func TestEndpointReadyCheck(t *testing.T) {
	check := DefaultEndpoint().ReadyCheck()
	require.NotNil(t, check)

	ok := NewResource(DefaultBaseURL, []byte("window.initAMap && window.initAMap()"), "", SourceFetch, epoch)
	assert.NoError(t, check(ok))

	bad := NewResource(DefaultBaseURL, []byte("window.other()"), "", SourceFetch, epoch)
	err := check(bad)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCallbackMissing)

	assert.Nil(t, Endpoint{BaseURL: DefaultBaseURL}.ReadyCheck())
}
