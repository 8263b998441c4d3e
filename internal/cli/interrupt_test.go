//go:build unix

package cli

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchInterrupts_RecordsSignal(t *testing.T) {
	in := WatchInterrupts(context.Background(), syscall.SIGUSR1)
	defer in.Stop()

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGUSR1))

	select {
	case <-in.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by the signal")
	}
	assert.Eventually(t, func() bool { return in.Signal() == syscall.SIGUSR1 }, time.Second, 10*time.Millisecond)
}

func TestWatchInterrupts_StopWithoutSignal(t *testing.T) {
	in := WatchInterrupts(context.Background())
	in.Stop()

	<-in.Done()
	assert.ErrorIs(t, in.Err(), context.Canceled)
	assert.Nil(t, in.Signal())
}
