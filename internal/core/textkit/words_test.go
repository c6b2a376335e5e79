package textkit

import (
	"reflect"
	"testing"
)

func TestWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "stop words and punctuation dropped",
			in:   "I love THIS!!",
			out:  []string{"love"},
		},
		{
			name: "boilerplate dropped",
			in:   "liked a message from Sam",
			out:  []string{"sam"},
		},
		{
			name: "numbers and single chars dropped",
			in:   "call me at 5 x 12345",
			out:  nil,
		},
		{
			name: "emoji stripped as symbols",
			in:   "pizza 🍕 tonight",
			out:  []string{"pizza", "tonight"},
		},
		{
			name: "empty",
			in:   "",
			out:  nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Words(tc.in)
			if !reflect.DeepEqual(got, tc.out) {
				t.Fatalf("Words(%q) = %#v, want %#v", tc.in, got, tc.out)
			}
		})
	}
}
