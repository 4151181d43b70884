package nrbf_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestNrbf(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "nrbf-go suite")
}
