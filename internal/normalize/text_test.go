package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "The course was great!", "The course was great!"},
		{"whitespace", "  too   many\tspaces \n here ", "too many spaces here"},
		{"export prefix", "Comment 12: Loved the labs", "Loved the labs"},
		{"export prefix lower case", "comment 3:  ok", "ok"},
		{"prefix only", "Comment 7:", ""},
		{"compatibility forms", "ｆｕｌｌ ｗｉｄｔｈ", "full width"},
		{"control characters", "bad\x00text\x07", "badtext"},
		{"comment word inside text", "My comment: fine", "My comment: fine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FreeText(tt.in))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "computer science", Key("  Computer\tSCIENCE "))
	assert.Equal(t, "", Key("   "))
}
