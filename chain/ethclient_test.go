package chain

import (
	"context"
	"errors"
	"math/big"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"
)

// nodeSub mimics a go-ethereum client subscription: one error value, and
// the channel is closed on Unsubscribe.
type nodeSub struct {
	errc         chan error
	unsubscribed int32
}

func newNodeSub() *nodeSub { return &nodeSub{errc: make(chan error, 1)} }

func (s *nodeSub) Err() <-chan error { return s.errc }

func (s *nodeSub) Unsubscribe() {
	if atomic.CompareAndSwapInt32(&s.unsubscribed, 0, 1) {
		close(s.errc)
	}
}

func header(n int64) *types.Header { return &types.Header{Number: big.NewInt(n)} }

func recvBlock(t *testing.T, ch <-chan idx.Block) idx.Block {
	t.Helper()
	select {
	case b := <-ch:
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("no block forwarded")
		return 0
	}
}

func recvErr(t *testing.T, errc <-chan error) (error, bool) {
	t.Helper()
	select {
	case err, ok := <-errc:
		return err, ok
	case <-time.After(2 * time.Second):
		t.Fatal("subscription error channel stayed silent")
		return nil, false
	}
}

func TestForwardHeads(t *testing.T) {
	require := require.New(t)
	node := newNodeSub()
	headers := make(chan *types.Header, 4)
	blocks := make(chan idx.Block, 4)

	sub := forwardHeads(context.Background(), node, headers, blocks)
	defer sub.Unsubscribe()

	headers <- header(7)
	headers <- header(8)
	require.Equal(idx.Block(7), recvBlock(t, blocks))
	require.Equal(idx.Block(8), recvBlock(t, blocks))
}

func TestForwardHeads_nodeErrorReachesCaller(t *testing.T) {
	require := require.New(t)
	node := newNodeSub()
	sub := forwardHeads(context.Background(), node, make(chan *types.Header), make(chan idx.Block))
	defer sub.Unsubscribe()

	dropped := errors.New("websocket: close 1006")
	node.errc <- dropped

	err, ok := recvErr(t, sub.Err())
	require.True(ok)
	require.ErrorIs(err, dropped)
	require.ErrorIs(err, ErrChainCall)

	_, ok = recvErr(t, sub.Err())
	require.False(ok, "closed after the error")
}

func TestForwardHeads_unsubscribe(t *testing.T) {
	require := require.New(t)
	node := newNodeSub()
	sub := forwardHeads(context.Background(), node, make(chan *types.Header), make(chan idx.Block))

	sub.Unsubscribe()
	sub.Unsubscribe()
	require.Equal(int32(1), atomic.LoadInt32(&node.unsubscribed))

	err, ok := recvErr(t, sub.Err())
	require.False(ok)
	require.NoError(err)
}

func TestForwardHeads_contextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sub := forwardHeads(ctx, newNodeSub(), make(chan *types.Header), make(chan idx.Block))
	defer sub.Unsubscribe()

	cancel()
	_, ok := recvErr(t, sub.Err())
	require.False(t, ok)
}
