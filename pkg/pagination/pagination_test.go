// Copyright (c) 2026 Redator. All rights reserved.
// Author: admin@cbrazil.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cbrazil/redator/pkg/pagination"
)

/*
TestFromRequest_Clamping verifies defaults and limit clamping.
*/
func TestFromRequest_Clamping(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"negative_page", "?page=-1", 1, 20},
		{"excessive_limit", "?limit=5000", 1, 20},
		{"garbage", "?page=abc&limit=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/articles"+tt.query, nil)
			params := pagination.FromRequest(r)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantLimit, params.Limit)
		})
	}
}

/*
TestOffset verifies the SQL offset derivation.
*/
func TestOffset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, pagination.Params{Page: 3, Limit: 20}.Offset())
}

/*
TestNewMeta verifies total page calculation.
*/
func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 41)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 41, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}
