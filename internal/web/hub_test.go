package web_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/VipinKumar1310/autotrade/internal/web"
)

func TestHub_StopTerminatesRun(t *testing.T) {
	h := web.NewHub(zap.NewNop())

	stopped := make(chan struct{})
	go func() {
		h.Run()
		close(stopped)
	}()

	h.Stop()
	h.Stop() // idempotent

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		assert.Fail(t, "hub Run did not return after Stop")
	}
}
