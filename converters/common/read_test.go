package common

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	data, err := ReadAll(context.Background(), strings.NewReader("a,b\n1,2\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}

func TestReadAllWithIdleTimeout(t *testing.T) {
	data, err := ReadAll(context.Background(), strings.NewReader("x"), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestReadAllStalled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	_, err := ReadAll(context.Background(), pr, 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrReadTimeout))
}

func TestReadAllCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := ReadAll(ctx, pr, 0)
	assert.ErrorIs(t, err, context.Canceled)
}
