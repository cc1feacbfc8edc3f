// Package integration contains end-to-end integration tests for the visa
// slot tracker. They run against a live server and are skipped when none
// is reachable.
package integration

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Visa Slot Tracker Integration Suite")
}
