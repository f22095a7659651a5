// Package testutil contains helpers shared between package test suites.
package testutil

import (
	"fmt"

	. "github.com/onsi/ginkgo"
)

func Byf(format string, args ...interface{}) {
	By(fmt.Sprintf(format, args...))
	fmt.Fprintln(GinkgoWriter)
}
