package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("missing ports returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingStatsService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports, _, _, _ := newTestPorts()
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	ports, stats, hospitals, locale := newTestPorts()
	assert.NoError(t, ports.Validate())

	assert.ErrorIs(t, (&Ports{Stats: stats}).Validate(), ErrMissingHospitalsService)
	assert.ErrorIs(t, (&Ports{Stats: stats, Hospitals: hospitals}).Validate(), ErrMissingLocaleService)
	assert.ErrorIs(t, (&Ports{Hospitals: hospitals, Locale: locale}).Validate(), ErrMissingStatsService)
}

func TestPorts_Dataset(t *testing.T) {
	ports, stats, hospitals, _ := newTestPorts()

	ds, err := ports.dataset("")
	require.NoError(t, err)
	assert.Same(t, stats, ds)

	ds, err = ports.dataset("hospitals")
	require.NoError(t, err)
	assert.Same(t, hospitals, ds)

	_, err = ports.dataset("vaccines")
	assert.Error(t, err)
}

func TestServer_Serve_InMemorySession(t *testing.T) {
	ports, _, _, _ := newTestPorts()
	server, err := NewServer(ports)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, serverTransport) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	info := session.InitializeResult()
	require.NotNil(t, info)
	assert.Equal(t, Name, info.ServerInfo.Name)
	assert.Contains(t, info.Instructions, "Slovenia")

	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"get_value_on", "get_last_value", "get_series",
		"hospital_name", "format_number", "get_separator",
	}, names)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "get_separator",
		Arguments: map[string]any{"locale": "sl-SI", "kind": "group"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.JSONEq(t, `{"separator": "."}`, text.Text)

	require.NoError(t, session.Close())
	cancel()
	<-done
}
