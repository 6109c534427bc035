package rest_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"lintang/begraphes/pkg/datastructure"
	"lintang/begraphes/pkg/engine/routingalgorithm"
	"lintang/begraphes/pkg/server/rest"
	"lintang/begraphes/pkg/server/rest/service"
	"lintang/begraphes/pkg/snap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A(0,0) -> B(0,0.01) -> C(0,0.02) -> D(0.01,0.02), plus the longer A->C and B->D.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	g := datastructure.NewGraph()
	a := g.AddNode(0, 0, 1)
	b := g.AddNode(0, 0.01, 2)
	c := g.AddNode(0, 0.02, 3)
	d := g.AddNode(0.01, 0.02, 4)
	for _, arc := range []datastructure.Arc{
		{From: a, To: b, Length: 1, MaxSpeed: 36, RoadClass: "residential", Access: datastructure.AccessAll},
		{From: b, To: c, Length: 1, MaxSpeed: 36, RoadClass: "residential", Access: datastructure.AccessAll},
		{From: c, To: d, Length: 1, MaxSpeed: 36, RoadClass: "residential", Access: datastructure.AccessAll},
		{From: a, To: c, Length: 5, MaxSpeed: 36, RoadClass: "primary", Access: datastructure.AccessAll},
		{From: b, To: d, Length: 4, MaxSpeed: 36, RoadClass: "footway", Access: datastructure.AccessFoot},
	} {
		_, err := g.AddArc(arc)
		require.NoError(t, err)
	}

	rt, err := routingalgorithm.NewRouteAlgorithm(g)
	require.NoError(t, err)
	svc := service.NewNavigationService(rt, snap.NewRoadSnapper(g, 8))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(rest.NewRouter(svc, prometheus.NewRegistry(), log, "/swagger/doc.json"))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path string, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestShortestPathNodes(t *testing.T) {
	srv := newTestServer(t)

	t.Run("found", func(t *testing.T) {
		resp, body := post(t, srv, "/api/navigations/shortest-path-nodes", `{"origin":0,"destination":3}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var res rest.ShortestPathResponse
		require.NoError(t, json.Unmarshal(body, &res))
		assert.True(t, res.Found)
		assert.Equal(t, []int32{0, 1, 2, 3}, res.Nodes)
		assert.Equal(t, 3.0, res.Cost)
		assert.Equal(t, "dijkstra", res.Alg)
		assert.NotEmpty(t, res.Path)
		assert.Len(t, res.Route, 4)
	})

	t.Run("filter and algorithm", func(t *testing.T) {
		resp, body := post(t, srv, "/api/navigations/shortest-path-nodes",
			`{"origin":1,"destination":3,"filter":"car","algorithm":"astar"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var res rest.ShortestPathResponse
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, []int32{1, 2, 3}, res.Nodes)
		assert.Equal(t, "astar", res.Alg)

		// B -> C heads east, C -> D turns north
		require.Len(t, res.Instructions, 3)
		assert.Equal(t, "Head East", res.Instructions[0].Instruction)
		assert.Equal(t, "Turn left", res.Instructions[1].Instruction)
		assert.Equal(t, "You have arrived at your destination", res.Instructions[2].Instruction)
		assert.Equal(t, 1.0, res.Instructions[1].Distance)
	})

	t.Run("unreachable is found=false", func(t *testing.T) {
		resp, body := post(t, srv, "/api/navigations/shortest-path-nodes", `{"origin":3,"destination":0}`)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var res rest.ShortestPathResponse
		require.NoError(t, json.Unmarshal(body, &res))
		assert.False(t, res.Found)
		assert.Empty(t, res.Nodes)
		assert.Empty(t, res.Instructions)
	})

	t.Run("unknown node is a bad request", func(t *testing.T) {
		resp, _ := post(t, srv, "/api/navigations/shortest-path-nodes", `{"origin":0,"destination":99}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing destination", func(t *testing.T) {
		resp, _ := post(t, srv, "/api/navigations/shortest-path-nodes", `{"origin":0}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("validation errors are translated", func(t *testing.T) {
		resp, body := post(t, srv, "/api/navigations/shortest-path-nodes", `{"origin":0,"destination":3,"mode":"fuel"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp rest.ErrResponse
		require.NoError(t, json.Unmarshal(body, &errResp))
		assert.NotEmpty(t, errResp.ErrValidation)
	})
}

func TestShortestPathCoordinates(t *testing.T) {
	srv := newTestServer(t)

	resp, body := post(t, srv, "/api/navigations/shortest-path",
		`{"src_lat":-0.0001,"src_lon":-0.0001,"dst_lat":0.0101,"dst_lon":0.0201,"mode":"time"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var res rest.ShortestPathResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.True(t, res.Found)
	assert.Equal(t, []int32{0, 1, 2, 3}, res.Nodes)
	// 3 m at 10 m/s
	assert.InDelta(t, 0.3, res.ETA, 1e-9)

	resp, _ = post(t, srv, "/api/navigations/shortest-path", `{"src_lat":91,"src_lon":0,"dst_lat":0,"dst_lon":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv, "/api/navigations/shortest-path-nodes", `{"origin":0,"destination":3}`)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "begraphes_shortestpath_query_count")
	assert.Contains(t, string(body), "begraphes_shortestpath_settled_nodes")
}
