// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "userID", UserIDCtxKey.String())
	assert.Equal(t, "testKey", contextKey("testKey").String())
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{"set with WithUserID", WithUserID(context.Background(), 42), 42, true},
		{"missing", context.Background(), 0, false},
		{"wrong type", context.WithValue(context.Background(), UserIDCtxKey, "42"), 0, false},
		{"different key", context.WithValue(context.Background(), contextKey("otherKey"), int64(99)), 0, false},
		{"zero value", WithUserID(context.Background(), 0), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
