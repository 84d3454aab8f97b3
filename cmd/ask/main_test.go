package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/flood-aid-actions/internal/actions"
	"github.com/couchcryptid/flood-aid-actions/internal/dataset"
	"github.com/couchcryptid/flood-aid-actions/internal/domain"
	"github.com/couchcryptid/flood-aid-actions/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	v, err := parseFlag("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = parseFlag(" Yes ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	v, err = parseFlag("no")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.False(t, *v)

	_, err = parseFlag("maybe")
	require.Error(t, err)
}

func TestRun_PrintsMessagesSeparatedByBlankLine(t *testing.T) {
	registry := actions.New(dataset.NewLoader(dataset.Paths{}),
		slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())

	var out bytes.Buffer
	err := run(context.Background(), &out, registry, actions.Request{Action: actions.Fallback})
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackMessage()+"\n", out.String())
}

func TestRun_UnknownActionListsKnownNames(t *testing.T) {
	registry := actions.New(dataset.NewLoader(dataset.Paths{}),
		slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())

	var out bytes.Buffer
	err := run(context.Background(), &out, registry, actions.Request{Action: "action_nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, actions.ErrUnknownAction))
	assert.Contains(t, err.Error(), string(actions.FindNearbyFacilities))
	assert.Empty(t, out.String())
}
