package infrastructure_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/require"

	"todolists/internal/infrastructure"
	"todolists/pkg/config"
	"todolists/pkg/test"
)

func TestNewContainer_Durable(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Database = test.MemoryDatabaseConfig()

	fatal := &test.FatalRecorder{}
	c, err := infrastructure.NewContainer(ctx, cfg, config.NewNopLogger(), infrastructure.Options{FatalHandler: fatal.Handle})
	require.NoError(t, err)
	defer c.Close(ctx)

	Expect(c.DB).NotTo(BeNil())
	Expect(c.Sessions).To(BeNil())
	Expect(c.Service.CreateList(ctx, "Groceries")).To(Succeed())
	Expect(c.Service.Lists(ctx)).To(HaveLen(1))

	families, err := c.Telemetry.PrometheusRegistry.Gather()
	Expect(err).NotTo(HaveOccurred())

	var names []string
	for _, family := range families {
		names = append(names, family.GetName())
	}

	Expect(names).To(ContainElement("todolists_statements_total"))
	Expect(fatal.Errors).To(BeEmpty())
}

func TestNewContainer_Ephemeral(t *testing.T) {
	RegisterTestingT(t)

	ctx := context.Background()
	cfg := config.GetDefaultConfig()
	cfg.Backend = config.BackendEphemeral

	c, err := infrastructure.NewContainer(ctx, cfg, config.NewNopLogger(), infrastructure.Options{SessionID: "visitor"})
	require.NoError(t, err)
	defer c.Close(ctx)

	Expect(c.DB).To(BeNil())
	Expect(c.Service.CreateList(ctx, "Groceries")).To(Succeed())
	Expect(c.Service.Lists(ctx)).To(HaveLen(1))
}

func TestNewContainer_EphemeralRequiresSession(t *testing.T) {
	RegisterTestingT(t)

	cfg := config.GetDefaultConfig()
	cfg.Backend = config.BackendEphemeral

	_, err := infrastructure.NewContainer(context.Background(), cfg, config.NewNopLogger(), infrastructure.Options{})

	Expect(err).To(HaveOccurred())
}

func TestNewContainer_UnknownBackend(t *testing.T) {
	RegisterTestingT(t)

	cfg := config.GetDefaultConfig()
	cfg.Backend = "paper"

	_, err := infrastructure.NewContainer(context.Background(), cfg, config.NewNopLogger(), infrastructure.Options{})

	Expect(err).To(MatchError(ContainSubstring("unknown backend")))
}
