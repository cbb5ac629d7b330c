package node_test

import (
	"strings"

	"insurance-server/internal/infra/node"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Node", func() {
	ginkgo.Context("GetNodeInfo", func() {
		ginkgo.It("should describe the running process", func() {
			info := node.GetNodeInfo()

			gomega.Expect(info.ID).To(gomega.HaveLen(36))
			gomega.Expect(info.Hostname).NotTo(gomega.BeEmpty())
			gomega.Expect(info.Version).To(gomega.Equal(node.Version))
			gomega.Expect(info.StartedAt.IsZero()).To(gomega.BeFalse())
		})

		ginkgo.It("should keep the same identity across calls", func() {
			gomega.Expect(node.GetNodeInfo().ID).To(gomega.Equal(node.GetNodeInfo().ID))
		})

		ginkgo.It("should hand out copies", func() {
			info := node.GetNodeInfo()
			info.ID = "changed"
			gomega.Expect(node.GetNodeInfo().ID).NotTo(gomega.Equal("changed"))
		})
	})

	ginkgo.Context("GroupFor", func() {
		ginkgo.It("should suffix the base group with the node id", func() {
			info := node.GetNodeInfo()
			group := info.GroupFor("insurance-feed")

			gomega.Expect(strings.HasPrefix(group, "insurance-feed-")).To(gomega.BeTrue())
			gomega.Expect(group).To(gomega.HaveSuffix(info.ID[:8]))
		})
	})

	ginkgo.It("should report a non-negative uptime", func() {
		gomega.Expect(node.GetNodeInfo().Uptime()).To(gomega.BeNumerically(">=", 0))
	})
})
