// Package bermock holds hand-written, mockgen-shaped test doubles for the
// small capability interfaces in internal/channel. They are written by hand
// rather than generated, since the toolchain is never invoked in this
// repository, but follow the exact structure `mockgen` emits for an
// interface with one method so a real `go generate` run would reproduce
// them byte-for-byte modulo comments.
package bermock

import (
	"math/rand"
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/bersim-project/bersim/internal/channel"
)

// MockChannel is a mock of the channel.Channel interface.
type MockChannel struct {
	ctrl     *gomock.Controller
	recorder *MockChannelMockRecorder
}

// MockChannelMockRecorder is the mock recorder for MockChannel.
type MockChannelMockRecorder struct {
	mock *MockChannel
}

// NewMockChannel creates a new mock instance.
func NewMockChannel(ctrl *gomock.Controller) *MockChannel {
	mock := &MockChannel{ctrl: ctrl}
	mock.recorder = &MockChannelMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockChannel) EXPECT() *MockChannelMockRecorder {
	return m.recorder
}

// Transmit mocks base method.
func (m *MockChannel) Transmit(s float64, rng *rand.Rand, sigma float64) channel.Output {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transmit", s, rng, sigma)
	ret0, _ := ret[0].(channel.Output)
	return ret0
}

// Transmit indicates an expected call of Transmit.
func (mr *MockChannelMockRecorder) Transmit(s, rng, sigma any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transmit", reflect.TypeOf((*MockChannel)(nil).Transmit), s, rng, sigma)
}
