package pipeline_test

import (
	"reflect"
	"testing"

	"github.com/alnah/go-mdexec/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestParseFenceInfo - Fence info line splitting
// ---------------------------------------------------------------------------

func TestParseFenceInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		info         string
		wantLanguage string
		wantOptions  map[string]string
	}{
		{
			name:         "language only",
			info:         "python",
			wantLanguage: "python",
			wantOptions:  map[string]string{},
		},
		{
			name:         "empty info",
			info:         "",
			wantLanguage: "",
			wantOptions:  nil,
		},
		{
			name:         "quoted options",
			info:         `python exec="true" source="above"`,
			wantLanguage: "python",
			wantOptions:  map[string]string{"exec": "true", "source": "above"},
		},
		{
			name:         "bare word becomes boolean flag",
			info:         "python exec",
			wantLanguage: "python",
			wantOptions:  map[string]string{"exec": "true"},
		},
		{
			name:         "explicit empty value preserved",
			info:         `python title=""`,
			wantLanguage: "python",
			wantOptions:  map[string]string{"title": ""},
		},
		{
			name:         "value with spaces",
			info:         `console tabs="Run it|Output"`,
			wantLanguage: "console",
			wantOptions:  map[string]string{"tabs": "Run it|Output"},
		},
		{
			name:         "hyphenated and underscored keys",
			info:         `python exec="true" session_id="s1" show-lines="false"`,
			wantLanguage: "python",
			wantOptions: map[string]string{
				"exec":       "true",
				"session_id": "s1",
				"show-lines": "false",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			language, options := pipeline.ParseFenceInfo(tt.info)
			if language != tt.wantLanguage {
				t.Errorf("language = %q, want %q", language, tt.wantLanguage)
			}
			if !reflect.DeepEqual(options, tt.wantOptions) {
				t.Errorf("options = %v, want %v", options, tt.wantOptions)
			}
		})
	}
}
