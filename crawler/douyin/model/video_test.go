package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		hasAddr bool
	}{
		{
			name:    "first entry",
			raw:     `{"desc":"d","video":{"download_addr":{"url_list":["https://a/1.mp4","https://a/2.mp4"]}}}`,
			want:    "https://a/1.mp4",
			hasAddr: true,
		},
		{
			name:    "empty list",
			raw:     `{"video":{"download_addr":{"url_list":[]}}}`,
			want:    "",
			hasAddr: true,
		},
		{
			name: "no download_addr",
			raw:  `{"video":{}}`,
			want: "",
		},
		{
			name: "no video",
			raw:  `{"desc":"only text","extra":{"ignored":true}}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v VideoData
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.want, v.VideoURL())
			assert.Equal(t, tt.hasAddr, v.HasVideo())
		})
	}
}

func TestNilVideoData(t *testing.T) {
	var v *VideoData
	assert.False(t, v.HasVideo())
	assert.Equal(t, "", v.VideoURL())
}
