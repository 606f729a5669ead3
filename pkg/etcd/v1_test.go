package etcd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clientv3 "go.etcd.io/etcd/client/v3"
)

func TestConsumeWatchReturnsWhenStreamCloses(t *testing.T) {
	v := &V1{WatchPathCallbacks: make(map[string][]func() error)}

	watchChan := make(chan clientv3.WatchResponse, 1)
	watchChan <- clientv3.WatchResponse{}
	close(watchChan)

	done := make(chan struct{})
	go func() {
		v.consumeWatch(watchChan, "/config/transferflow")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("consumeWatch did not return after the watch stream closed")
	}
}

func TestCallbacksForKey(t *testing.T) {
	v := &V1{WatchPathCallbacks: make(map[string][]func() error)}

	var rootCalls, pipelineCalls int
	require.NoError(t, v.RegisterWatchPathCallback("", func() error {
		rootCalls++
		return nil
	}))
	require.NoError(t, v.RegisterWatchPathCallback("/pipeline-config", func() error {
		pipelineCalls++
		return nil
	}))

	prefix := "/config/transferflow"

	for _, callback := range v.callbacksForKey(prefix, prefix+"/pipeline-config/cat-dog-v1") {
		require.NoError(t, callback())
	}
	assert.Equal(t, 1, rootCalls)
	assert.Equal(t, 1, pipelineCalls)

	for _, callback := range v.callbacksForKey(prefix, prefix+"/service-config") {
		require.NoError(t, callback())
	}
	assert.Equal(t, 2, rootCalls)
	assert.Equal(t, 1, pipelineCalls)

	assert.Empty(t, v.callbacksForKey(prefix, "/config/other-app/pipeline-config"))
}

func TestRegisterWatchPathCallbackRejectsNil(t *testing.T) {
	v := &V1{WatchPathCallbacks: make(map[string][]func() error)}
	assert.Error(t, v.RegisterWatchPathCallback("/pipeline-config", nil))
}
