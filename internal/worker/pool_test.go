package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiver_WritesQueuedDocuments(t *testing.T) {
	dir := t.TempDir()
	a := NewArchiver(dir, 8)
	a.Start(context.Background(), 2)

	a.Archive("invoice_s1.pdf", []byte("%PDF-1.3 one"))
	a.Archive("salary_SAL-1.pdf", []byte("%PDF-1.3 two"))
	a.Close()

	data, err := os.ReadFile(filepath.Join(dir, "invoice_s1.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 one", string(data))
	_, err = os.Stat(filepath.Join(dir, "salary_SAL-1.pdf"))
	assert.NoError(t, err)
	assert.Empty(t, a.DeadLetters())
}

func TestArchiver_RetriesThenSucceeds(t *testing.T) {
	a := NewArchiver("unused", 1)
	a.backoff = func(int) time.Duration { return time.Millisecond }
	var calls atomic.Int32
	a.save = func(dir, name string, _ []byte) (string, error) {
		if calls.Add(1) < MaxAttempts {
			return "", errors.New("disk busy")
		}
		return filepath.Join(dir, name), nil
	}
	a.Start(context.Background(), 1)

	a.Archive("invoice_s2.pdf", nil)
	a.Close()

	assert.Equal(t, int32(MaxAttempts), calls.Load())
	assert.Empty(t, a.DeadLetters())
}

func TestArchiver_DeadLetterAfterMaxAttempts(t *testing.T) {
	a := NewArchiver("unused", 1)
	a.backoff = func(int) time.Duration { return time.Millisecond }
	a.save = func(string, string, []byte) (string, error) {
		return "", errors.New("read-only file system")
	}
	a.Start(context.Background(), 1)

	a.Archive("invoice_s3.pdf", nil)
	a.Close()

	dead := a.DeadLetters()
	require.Len(t, dead, 1)
	assert.Equal(t, "invoice_s3.pdf", dead[0].Name)
	assert.Equal(t, MaxAttempts, dead[0].Attempts)
	assert.Equal(t, "read-only file system", dead[0].Reason)
}

func TestArchiver_IgnoresJobsAfterClose(t *testing.T) {
	a := NewArchiver(t.TempDir(), 1)
	a.Start(context.Background(), 1)
	a.Close()

	assert.NotPanics(t, func() { a.Archive("late.pdf", nil) })
	a.Close()
}

func TestRetryBackoff(t *testing.T) {
	assert.Equal(t, time.Second, retryBackoff(1))
	assert.Equal(t, 2*time.Second, retryBackoff(2))
	assert.Equal(t, 4*time.Second, retryBackoff(3))
}
