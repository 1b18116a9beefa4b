// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbrazil/redator/pkg/slug"
)

/*
TestFrom verifies accent stripping and sanitization for typical titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello World", "hello-world"},
		{"accents", "Como Fazer Café", "como-fazer-cafe"},
		{"punctuation", "Top 10: Dicas & Truques!", "top-10-dicas-truques"},
		{"multi_space", "a   b", "a-b"},
		{"trim_hyphens", "--edge--", "edge"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
