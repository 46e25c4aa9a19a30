package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func actionRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeActionUnwrapsInput(t *testing.T) {
	var in struct {
		ID string `json:"id"`
	}
	err := decodeAction(actionRequest(`{"input":{"id":"9"}}`), &in)
	require.NoError(t, err)
	assert.Equal(t, "9", in.ID)
}

func TestDecodeActionMissingInputKey(t *testing.T) {
	var in struct {
		ID string `json:"id"`
	}
	err := decodeAction(actionRequest(`{"action":{"name":"deleteStore"}}`), &in)
	require.NoError(t, err)
	assert.Empty(t, in.ID)
}

func TestDecodeActionNullInput(t *testing.T) {
	var in struct {
		ID string `json:"id"`
	}
	err := decodeAction(actionRequest(`{"input":null}`), &in)
	require.NoError(t, err)
	assert.Empty(t, in.ID)
}

func TestDecodeActionEmptyBody(t *testing.T) {
	var in struct {
		ID string `json:"id"`
	}
	err := decodeAction(actionRequest(``), &in)
	require.NoError(t, err)
	assert.Empty(t, in.ID)
}

func TestDecodeActionKeepsPreseededDefaults(t *testing.T) {
	params := pageParams{Page: defaultPage, Limit: defaultLimit}
	err := decodeAction(actionRequest(`{"input":{"search":"pizza"}}`), &params)
	require.NoError(t, err)
	assert.Equal(t, defaultPage, params.Page)
	assert.Equal(t, defaultLimit, params.Limit)
	assert.Equal(t, "pizza", params.Search)
}

func TestDecodeActionBadJSON(t *testing.T) {
	var in struct{}
	err := decodeAction(actionRequest(`{"input":`), &in)
	assert.Error(t, err)
}
