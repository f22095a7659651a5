package tiercache

import (
	. "github.com/onsi/ginkgo"
	"github.com/stretchr/testify/mock"

	"github.com/skipor/tiercache/policy"
)

type MockCallback struct {
	mock.Mock
}

func (m *MockCallback) Drop(e policy.Entry) {
	By("Drop " + e.Key)
	m.Called(e)
}
